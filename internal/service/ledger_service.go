package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// gatewayTimeLayout is used by authorizedDateTime and requestDateTime in SOAP replies.
const gatewayTimeLayout = "2006-01-02T15:04:05Z"

// LedgerServiceImpl implements ports.LedgerService: the authorize and capture
// chain recorded against a per-order payment source.
type LedgerServiceImpl struct {
	tokens     ports.PaymentTokenRepository
	txns       ports.TransactionRepository
	sources    ports.SourceRepository
	orders     ports.OrderRepository
	events     ports.PaymentEventRepository
	replies    ports.ReplyRepository
	gateway    ports.GatewayClient
	checkout   ports.CheckoutStateService
	transactor ports.DBTransactor
	cfg        *config.Holder
	log        zerolog.Logger
}

// LedgerDeps groups the collaborators of the ledger.
type LedgerDeps struct {
	Tokens     ports.PaymentTokenRepository
	Txns       ports.TransactionRepository
	Sources    ports.SourceRepository
	Orders     ports.OrderRepository
	Events     ports.PaymentEventRepository
	Replies    ports.ReplyRepository
	Gateway    ports.GatewayClient
	Checkout   ports.CheckoutStateService
	Transactor ports.DBTransactor
	Config     *config.Holder
	Logger     zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(d LedgerDeps) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		tokens:     d.Tokens,
		txns:       d.Txns,
		sources:    d.Sources,
		orders:     d.Orders,
		events:     d.Events,
		replies:    d.Replies,
		gateway:    d.Gateway,
		checkout:   d.Checkout,
		transactor: d.Transactor,
		cfg:        d.Config,
		log:        d.Logger,
	}
}

func (s *LedgerServiceImpl) sourceType() string {
	return s.cfg.Current().Cybersource.SourceType
}

// RecordPaymentToken stores a vaulted card reference, reusing an existing row
// with the same token string.
func (s *LedgerServiceImpl) RecordPaymentToken(ctx context.Context, tx pgx.Tx, log *domain.ReplyRecord, token, cardNumber, cardType string) (*domain.PaymentToken, error) {
	pt, err := s.tokens.GetOrCreate(ctx, tx, &domain.PaymentToken{
		ID:               uuid.New(),
		LogID:            log.ID,
		Token:            token,
		MaskedCardNumber: cardNumber,
		CardType:         cardType,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record payment token: %w", err))
	}
	return pt, nil
}

// AuthorizePayment authorizes amount against a vaulted token over SOAP and
// records the outcome. data travels with the request as merchant-defined fields.
func (s *LedgerServiceImpl) AuthorizePayment(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, token string, amount decimal.Decimal, data domain.MerchantData) (*domain.PaymentState, error) {
	call := ports.GatewayCall{
		Order:                order,
		MethodKey:            session.MethodKey,
		ClientIP:             session.ClientIP,
		FingerprintSessionID: session.FingerprintSessionID,
		MerchantData:         data,
	}
	reply, err := s.gateway.Authorize(ctx, call, token, amount)
	if err != nil {
		s.log.Error().Err(err).Str("order", order.Number).Msg("soap authorize failed")
		reply = nil
	}

	rec, err := s.logSOAPReply(ctx, tx, order, reply)
	if err != nil {
		return nil, err
	}

	res := ports.AuthResult{
		Order:        order,
		Log:          rec,
		Session:      session,
		TokenString:  token,
		Reference:    reply.RequestID(),
		RequestToken: reply.RequestToken(),
		Decision:     reply.Classify(),
		Amount:       amount,
		ProcessedAt:  time.Now().UTC(),
	}
	if !res.Decision.IsSuccessful() {
		return s.RecordDeclinedAuth(ctx, tx, res)
	}

	if ts, err := time.Parse(gatewayTimeLayout, reply.Get("ccAuthReply.authorizedDateTime")); err == nil {
		res.ProcessedAt = ts
	}
	// The gateway echoes the authorized amount; it equals the request on success.
	if authed, err := decimal.NewFromString(reply.Get("ccAuthReply.amount")); err == nil {
		res.Amount = authed
	}
	return s.RecordSuccessfulAuth(ctx, tx, res)
}

// RecordSuccessfulAuth writes an accepted or under-review authorization and
// allocates its amount on the order's source.
func (s *LedgerServiceImpl) RecordSuccessfulAuth(ctx context.Context, tx pgx.Tx, res ports.AuthResult) (*domain.PaymentState, error) {
	source, err := s.source(ctx, tx, res)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GetByToken(ctx, tx, res.TokenString)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment token: %w", err))
	}
	if token == nil {
		s.log.Warn().Str("order", res.Order.Number).Str("reference", res.Reference).Msg("authorized token is unknown, declining")
		return domain.Declined(res.Amount, &source.ID), nil
	}

	txn := s.authorization(source, res, &token.ID)
	if err := s.createTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	allocated, err := s.sources.IncrementAllocated(ctx, tx, source.ID, res.Amount)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("increment allocated: %w", err))
	}

	if err := s.recordEvent(ctx, tx, res.Order, domain.PaymentEventAuthorise, res.Amount, res.Reference); err != nil {
		return nil, err
	}

	if res.Decision == domain.DecisionReview {
		note := &domain.OrderNote{
			ID:       uuid.New(),
			OrderID:  res.Order.ID,
			NoteType: domain.NoteTypeSystem,
			Message: fmt.Sprintf("Transaction %s is currently under review. Use Decision Manager to either accept or reject the transaction.",
				res.Reference),
		}
		if err := s.orders.AddNote(ctx, tx, note); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("add review note: %w", err))
		}
	}

	state := domain.Complete(allocated, source.ID)
	if res.Session.SessionID != "" {
		if err := s.checkout.MarkComplete(ctx, tx, res.Order, res.Session, state); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("mark complete: %w", err))
		}
	}

	s.log.Info().
		Str("order", res.Order.Number).
		Str("transaction_id", res.Reference).
		Str("decision", string(res.Decision)).
		Str("amount", res.Amount.StringFixed(2)).
		Msg("authorization recorded")
	return state, nil
}

// RecordDeclinedAuth writes a declined or errored authorization and marks the
// checkout payment method declined.
func (s *LedgerServiceImpl) RecordDeclinedAuth(ctx context.Context, tx pgx.Tx, res ports.AuthResult) (*domain.PaymentState, error) {
	source, err := s.source(ctx, tx, res)
	if err != nil {
		return nil, err
	}

	var tokenID *uuid.UUID
	if res.TokenString != "" {
		token, err := s.tokens.GetByToken(ctx, tx, res.TokenString)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get payment token: %w", err))
		}
		if token != nil {
			tokenID = &token.ID
		}
	}

	if err := s.createTransaction(ctx, tx, s.authorization(source, res, tokenID)); err != nil {
		return nil, err
	}

	if res.Session.SessionID != "" {
		if err := s.checkout.MarkDeclined(ctx, tx, res.Order, res.Session, res.Amount); err != nil {
			if !errors.Is(err, domain.ErrInvalidOrderStatus) {
				return nil, apperror.InternalError(fmt.Errorf("mark declined: %w", err))
			}
			ev := s.log.Error().Err(err).
				Str("order", res.Order.Number).
				Str("status", string(res.Order.Status))
			if res.Log != nil {
				ev = ev.Str("reply_id", res.Log.ID.String())
			}
			ev.Msg("failed to set order to payment declined")
		}
	}

	s.log.Info().
		Str("order", res.Order.Number).
		Str("transaction_id", res.Reference).
		Str("decision", string(res.Decision)).
		Msg("declined authorization recorded")
	return domain.Declined(res.Amount, &source.ID), nil
}

// Capture debits amount against an accepted authorization. The authorization
// row stays locked until the debit is recorded, so concurrent captures
// cannot exceed the authorized amount.
func (s *LedgerServiceImpl) Capture(ctx context.Context, authTxnID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	if !domain.IsPayableAmount(amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	auth, err := s.txns.GetByIDForUpdate(ctx, dbTx, authTxnID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock authorization: %w", err))
	}
	if auth == nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	captured, err := s.txns.SumCaptured(ctx, dbTx, auth.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum captured: %w", err))
	}
	sourceType := s.sourceType()
	if err := auth.CanBeCaptured(sourceType, captured); err != nil {
		return nil, apperror.ErrCaptureNotAllowed(err)
	}
	if amount.GreaterThan(auth.RemainingToCapture(sourceType, captured)) {
		return nil, apperror.ErrCaptureExceedsRemaining()
	}

	token, err := s.tokens.GetByID(ctx, *auth.TokenID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrPaymentTokenMissing()
	}

	order, err := s.orders.GetByID(ctx, auth.OrderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}

	reply, err := s.gateway.Capture(ctx, ports.GatewayCall{Order: order}, token.Token, amount, auth.Reference)
	if err != nil {
		s.log.Error().Err(err).Str("order", order.Number).Str("authorization", auth.Reference).Msg("soap capture failed")
		reply = nil
	}

	rec, err := s.logSOAPReply(ctx, dbTx, order, reply)
	if err != nil {
		return nil, err
	}

	processed := time.Now().UTC()
	if ts, err := time.Parse(gatewayTimeLayout, reply.Get("ccCaptureReply.requestDateTime")); err == nil {
		processed = ts
	}
	decision := reply.Classify()
	debit := &domain.Transaction{
		ID:              uuid.New(),
		SourceID:        auth.SourceID,
		SourceType:      auth.SourceType,
		OrderID:         auth.OrderID,
		TxnType:         domain.TxnTypeDebit,
		Amount:          amount,
		Status:          decision,
		Reference:       reply.RequestID(),
		RequestToken:    reply.RequestToken(),
		ProcessedAt:     processed,
		TokenID:         auth.TokenID,
		AuthorizationID: &auth.ID,
		LogID:           &rec.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.txns.Create(ctx, dbTx, debit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create debit: %w", err))
	}

	if decision.IsSuccessful() {
		if _, err := s.sources.IncrementDebited(ctx, dbTx, auth.SourceID, amount); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("increment debited: %w", err))
		}
		if err := s.recordEvent(ctx, dbTx, order, domain.PaymentEventDebit, amount, debit.Reference); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	metrics.RecordCapture(string(decision))

	s.log.Info().
		Str("order", order.Number).
		Str("authorization", auth.ID.String()).
		Str("decision", string(decision)).
		Str("amount", amount.StringFixed(2)).
		Msg("capture recorded")
	return debit, nil
}

// ListOrderTransactions returns the ledger of an order.
func (s *LedgerServiceImpl) ListOrderTransactions(ctx context.Context, orderNumber string) ([]domain.Transaction, error) {
	order, err := s.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound(orderNumber)
	}
	txns, err := s.txns.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// TokenDetails returns a token with the display fields derived from the
// reply that created it.
func (s *LedgerServiceImpl) TokenDetails(ctx context.Context, tokenID uuid.UUID) (*ports.TokenView, error) {
	token, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrNotFound("payment token")
	}
	log, err := s.replies.GetByID(ctx, token.LogID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get token reply: %w", err))
	}
	return &ports.TokenView{Token: token, Details: token.Details(log)}, nil
}

func (s *LedgerServiceImpl) source(ctx context.Context, tx pgx.Tx, res ports.AuthResult) (*domain.Source, error) {
	src, err := s.sources.GetOrCreate(ctx, tx, &domain.Source{
		ID:         uuid.New(),
		OrderID:    res.Order.ID,
		SourceType: s.sourceType(),
		Reference:  res.Reference,
		Currency:   res.Order.Currency,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get source: %w", err))
	}
	return src, nil
}

func (s *LedgerServiceImpl) authorization(source *domain.Source, res ports.AuthResult, tokenID *uuid.UUID) *domain.Transaction {
	txn := &domain.Transaction{
		ID:           uuid.New(),
		SourceID:     source.ID,
		SourceType:   source.SourceType,
		OrderID:      source.OrderID,
		TxnType:      domain.TxnTypeAuthorise,
		Amount:       res.Amount,
		Status:       res.Decision,
		Reference:    res.Reference,
		RequestToken: res.RequestToken,
		ProcessedAt:  res.ProcessedAt,
		TokenID:      tokenID,
		CreatedAt:    time.Now().UTC(),
	}
	if res.Log != nil {
		txn.LogID = &res.Log.ID
	}
	return txn
}

// createTransaction passes domain.ErrDuplicateDelivery through unwrapped so the
// caller can answer the replay as a success.
func (s *LedgerServiceImpl) createTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	if err := s.txns.Create(ctx, tx, txn); err != nil {
		if errors.Is(err, domain.ErrDuplicateDelivery) {
			s.log.Info().Str("reference", txn.Reference).Msg("authorization already recorded")
			return domain.ErrDuplicateDelivery
		}
		return apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	return nil
}

func (s *LedgerServiceImpl) recordEvent(ctx context.Context, tx pgx.Tx, order *domain.Order, typ domain.PaymentEventType, amount decimal.Decimal, reference string) error {
	ev := domain.NewPaymentEvent(order, typ, amount, reference)
	ev.ID = uuid.New()
	ev.CreatedAt = time.Now().UTC()
	if err := s.events.Create(ctx, tx, ev); err != nil {
		return apperror.InternalError(fmt.Errorf("create %s event: %w", typ, err))
	}
	return nil
}

// logSOAPReply appends a SOAP reply to the reply log. reply may be nil.
func (s *LedgerServiceImpl) logSOAPReply(ctx context.Context, tx pgx.Tx, order *domain.Order, reply *domain.GatewayReply) (*domain.ReplyRecord, error) {
	rec := domain.NewSOAPReplyRecord(order, reply, "")
	if err := saveReply(ctx, s.replies, tx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// saveReply stamps and persists a reply record and counts it.
func saveReply(ctx context.Context, repo ports.ReplyRepository, tx pgx.Tx, rec *domain.ReplyRecord) error {
	now := time.Now().UTC()
	rec.ID = uuid.New()
	rec.DateCreated = now
	rec.DateModified = now
	if err := repo.Create(ctx, tx, rec); err != nil {
		return apperror.InternalError(fmt.Errorf("log reply: %w", err))
	}
	metrics.RecordReply(string(rec.ReplyType), rec.ReqTransactionType, string(rec.Classify()))
	return nil
}
