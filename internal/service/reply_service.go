package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultMethodKey is the checkout payment method code used when a reply
// does not echo one.
const DefaultMethodKey = "cybersource"

const replyOutcomeTTL = 24 * time.Hour

// ReplyServiceImpl implements ports.ReplyService.
type ReplyServiceImpl struct {
	resolver   ports.ProfileResolver
	signer     ports.SignatureService
	encSvc     ports.EncryptionService
	orders     ports.OrderRepository
	replies    ports.ReplyRepository
	claims     ports.ReplyClaimRepository
	ledger     ports.LedgerService
	checkout   ports.CheckoutStateService
	gateway    ports.GatewayClient
	cache      ports.IdempotencyCache
	audit      ports.AuditService
	transactor ports.DBTransactor
	cfg        *config.Holder
	log        zerolog.Logger
}

// ReplyDeps groups the collaborators of the reply orchestrator.
type ReplyDeps struct {
	Resolver   ports.ProfileResolver
	Signer     ports.SignatureService
	Encryption ports.EncryptionService
	Orders     ports.OrderRepository
	Replies    ports.ReplyRepository
	Claims     ports.ReplyClaimRepository
	Ledger     ports.LedgerService
	Checkout   ports.CheckoutStateService
	Gateway    ports.GatewayClient
	Cache      ports.IdempotencyCache // optional
	Audit      ports.AuditService     // optional
	Transactor ports.DBTransactor
	Config     *config.Holder
	Logger     zerolog.Logger
}

// NewReplyService creates a new ReplyServiceImpl.
func NewReplyService(d ReplyDeps) *ReplyServiceImpl {
	return &ReplyServiceImpl{
		resolver:   d.Resolver,
		signer:     d.Signer,
		encSvc:     d.Encryption,
		orders:     d.Orders,
		replies:    d.Replies,
		claims:     d.Claims,
		ledger:     d.Ledger,
		checkout:   d.Checkout,
		gateway:    d.Gateway,
		cache:      d.Cache,
		audit:      d.Audit,
		transactor: d.Transactor,
		cfg:        d.Config,
		log:        d.Logger,
	}
}

// HandleFormReply verifies a Secure Acceptance form post and applies it to
// the order. The outcome tells the handler where to send the browser.
func (s *ReplyServiceImpl) HandleFormReply(ctx context.Context, reply ports.FormReply) (*domain.ReplyOutcome, error) {
	payload := reply.Payload
	if err := s.verify(ctx, reply.Host, payload); err != nil {
		return nil, err
	}

	replayKey := ""
	if id := payload["transaction_id"]; id != "" {
		replayKey = domain.BuildReplyKey(id)
		if out := s.cachedOutcome(ctx, replayKey); out != nil {
			s.log.Info().
				Str("transaction_id", id).
				Str("order", out.OrderNumber).
				Msg("reply replay answered from cache")
			return out, nil
		}
	}

	session, err := s.session(reply)
	if err != nil {
		return nil, err
	}

	number := payload["req_reference_number"]
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound(number)
	}

	rec := domain.NewFormReplyRecord(payload)
	rec.OrderID = &order.ID
	rec.UserID = reply.UserID
	if err := saveReply(ctx, s.replies, nil, rec); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txnType := payload["req_transaction_type"]
	out := &domain.ReplyOutcome{OrderNumber: order.Number, Decision: rec.Classify()}

	// The claim blocks while a concurrent delivery of the same transaction
	// is in flight, so at most one of them reaches the ledger.
	claimed, err := s.claim(ctx, dbTx, order, payload["transaction_id"])
	if err != nil {
		return nil, err
	}
	if !claimed {
		status, err := s.claims.Status(ctx, payload["transaction_id"])
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("reply claim status: %w", err))
		}
		out.Duplicate = true
		out.RedirectURL = s.duplicateRedirect(status, out.Decision)
		return s.finish(ctx, reply, rec, replayKey, out), nil
	}

	var state *domain.PaymentState
	switch txnType {
	case domain.TxnTypeCreateToken:
		state, err = s.recordToken(ctx, dbTx, order, session, rec)
	case domain.TxnTypeAuthorization, domain.TxnTypeAuthCreateToken:
		state, err = s.recordAuthorization(ctx, dbTx, order, session, rec)
	default:
		return nil, apperror.ErrUnrecognizedTransactionType(txnType)
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateDelivery):
		// Already applied by an earlier delivery; nothing in this tx is kept.
		out.Duplicate = true
		out.RedirectURL = s.duplicateRedirect("", out.Decision)
	case err != nil:
		return nil, err
	default:
		if err := s.settle(ctx, dbTx, payload["transaction_id"], state); err != nil {
			return nil, err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		out.RedirectURL = s.redirectFor(state)
	}
	return s.finish(ctx, reply, rec, replayKey, out), nil
}

func (s *ReplyServiceImpl) finish(ctx context.Context, reply ports.FormReply, rec *domain.ReplyRecord, replayKey string, out *domain.ReplyOutcome) *domain.ReplyOutcome {
	if replayKey != "" {
		s.cacheOutcome(ctx, replayKey, out)
	}
	s.auditReply(ctx, reply, rec, out)

	s.log.Info().
		Str("order", out.OrderNumber).
		Str("transaction_type", rec.ReqTransactionType).
		Str("transaction_id", rec.TransactionID).
		Str("decision", string(out.Decision)).
		Bool("duplicate", out.Duplicate).
		Msg("secure acceptance reply processed")
	return out
}

// claim reserves the gateway transaction id for this delivery. Replies
// without a transaction id cannot be matched and are always processed.
func (s *ReplyServiceImpl) claim(ctx context.Context, tx pgx.Tx, order *domain.Order, transactionID string) (bool, error) {
	if transactionID == "" {
		return true, nil
	}
	claimed, err := s.claims.Claim(ctx, tx, transactionID, order.ID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("claim reply: %w", err))
	}
	return claimed, nil
}

func (s *ReplyServiceImpl) settle(ctx context.Context, tx pgx.Tx, transactionID string, state *domain.PaymentState) error {
	if transactionID == "" {
		return nil
	}
	var status domain.PaymentStatus
	if state != nil {
		status = state.Status
	}
	if err := s.claims.Settle(ctx, tx, transactionID, status); err != nil {
		return apperror.InternalError(fmt.Errorf("settle reply claim: %w", err))
	}
	return nil
}

// duplicateRedirect sends a redelivered reply where the first delivery went.
// Without a recorded status the reply's own decision decides.
func (s *ReplyServiceImpl) duplicateRedirect(status domain.PaymentStatus, decision domain.Decision) string {
	if status != "" {
		return s.redirectFor(&domain.PaymentState{Status: status})
	}
	if decision.IsSuccessful() {
		return s.cfg.Current().Cybersource.RedirectSuccess
	}
	return s.cfg.Current().Cybersource.RedirectFail
}

// recordToken handles a create_payment_token reply: store the new token and
// authorize it over SOAP.
func (s *ReplyServiceImpl) recordToken(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, rec *domain.ReplyRecord) (*domain.PaymentState, error) {
	amount := payloadAmount(rec.Data, "req_amount")

	if rec.Classify() != domain.DecisionAccept {
		if err := s.markDeclined(ctx, tx, order, session, amount, rec); err != nil {
			return nil, err
		}
		return domain.Declined(amount, nil), nil
	}

	token, err := s.ledger.RecordPaymentToken(ctx, tx, rec, rec.Data["payment_token"], rec.Data["req_card_number"], rec.Data["req_card_type"])
	if err != nil {
		return nil, err
	}
	data := domain.MerchantDataFromReply(rec.Data, MethodKeySlot)
	return s.ledger.AuthorizePayment(ctx, tx, order, session, token.Token, amount, data)
}

// recordAuthorization handles a reply to a form-posted authorization. When the
// same post also created the token, the token is stored first.
func (s *ReplyServiceImpl) recordAuthorization(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, rec *domain.ReplyRecord) (*domain.PaymentState, error) {
	data := rec.Data
	decision := rec.Classify()

	tokenString := data["req_payment_token"]
	if created := data["payment_token"]; created != "" {
		if decision.IsSuccessful() {
			if _, err := s.ledger.RecordPaymentToken(ctx, tx, rec, created, data["req_card_number"], data["req_card_type"]); err != nil {
				return nil, err
			}
		}
		if tokenString == "" {
			tokenString = created
		}
	}

	res := ports.AuthResult{
		Order:        order,
		Log:          rec,
		Session:      session,
		TokenString:  tokenString,
		Reference:    data["transaction_id"],
		RequestToken: data["request_token"],
		Decision:     decision,
		Amount:       payloadAmount(data, "req_amount"),
		ProcessedAt:  rec.SignedDateTime(),
	}
	if !decision.IsSuccessful() {
		return s.ledger.RecordDeclinedAuth(ctx, tx, res)
	}
	if _, ok := data["auth_amount"]; ok {
		res.Amount = payloadAmount(data, "auth_amount")
	}
	return s.ledger.RecordSuccessfulAuth(ctx, tx, res)
}

func (s *ReplyServiceImpl) markDeclined(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, amount decimal.Decimal, rec *domain.ReplyRecord) error {
	if session.SessionID == "" {
		return nil
	}
	err := s.checkout.MarkDeclined(ctx, tx, order, session, amount)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrInvalidOrderStatus) {
		return apperror.InternalError(fmt.Errorf("mark declined: %w", err))
	}
	s.log.Error().Err(err).
		Str("order", order.Number).
		Str("status", string(order.Status)).
		Str("reply_id", rec.ID.String()).
		Msg("failed to set order to payment declined")
	return nil
}

// HandleSOAPToken vaults an encrypted card over SOAP and records the token
// with the card details the gateway reports for it. A declined token request
// returns nil, nil.
func (s *ReplyServiceImpl) HandleSOAPToken(ctx context.Context, orderNumber string, session ports.CheckoutSession, encryptedPayment string) (*domain.PaymentToken, error) {
	if encryptedPayment == "" {
		return nil, apperror.Validation("encrypted payment data is required")
	}
	order, err := s.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}
	if session.MethodKey == "" {
		session.MethodKey = DefaultMethodKey
	}
	call := ports.GatewayCall{
		Order:                order,
		MethodKey:            session.MethodKey,
		ClientIP:             session.ClientIP,
		FingerprintSessionID: session.FingerprintSessionID,
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	reply, err := s.gateway.CreateToken(ctx, call, encryptedPayment)
	if err != nil {
		s.log.Error().Err(err).Str("order", order.Number).Msg("soap create token failed")
		reply = nil
	}
	rec := domain.NewSOAPReplyRecord(order, reply, "")
	if err := saveReply(ctx, s.replies, dbTx, rec); err != nil {
		return nil, err
	}

	token, err := s.vaultToken(ctx, dbTx, call, reply, rec)
	if err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	if token != nil {
		s.log.Info().Str("order", order.Number).Str("card_type", token.CardType).Msg("payment token created")
	}
	return token, nil
}

func (s *ReplyServiceImpl) vaultToken(ctx context.Context, tx pgx.Tx, call ports.GatewayCall, reply *domain.GatewayReply, rec *domain.ReplyRecord) (*domain.PaymentToken, error) {
	if reply.Classify() != domain.DecisionAccept {
		s.log.Warn().Str("order", call.Order.Number).Str("decision", reply.Decision()).Msg("payment token not created")
		return nil, nil
	}
	tokenString := reply.Get("paySubscriptionCreateReply.subscriptionID")

	details, err := s.gateway.LookupToken(ctx, call, tokenString)
	if err != nil || details == nil {
		s.log.Error().Err(err).Str("order", call.Order.Number).Msg("soap token lookup failed")
		return nil, nil
	}

	token, err := s.ledger.RecordPaymentToken(ctx, tx, rec,
		tokenString,
		details.Get("paySubscriptionRetrieveReply.cardAccountNumber"),
		details.Get("paySubscriptionRetrieveReply.cardType"),
	)
	if err != nil {
		return nil, err
	}

	expiry := fmt.Sprintf("%s-%s",
		details.Get("paySubscriptionRetrieveReply.cardExpirationMonth"),
		details.Get("paySubscriptionRetrieveReply.cardExpirationYear"))
	if err := s.replies.UpdateCardExpiry(ctx, tx, rec.ID, expiry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update card expiry: %w", err))
	}
	rec.ReqCardExpiryDate = expiry
	return token, nil
}

func (s *ReplyServiceImpl) verify(ctx context.Context, host string, payload map[string]string) error {
	profile, err := s.resolver.GetProfile(ctx, host)
	if err != nil {
		return err
	}
	ok, err := s.signer.Verify(profile.SecretKey, payload)
	if errors.Is(err, ErrMissingSignedFields) {
		metrics.RecordSignatureFailure()
		return apperror.ErrMissingSignedFields()
	}
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify signature: %w", err))
	}
	if !ok {
		metrics.RecordSignatureFailure()
		s.log.Warn().
			Str("host", host).
			Str("reference_number", payload["req_reference_number"]).
			Msg("reply signature mismatch")
		return apperror.ErrInvalidSignature()
	}
	return nil
}

// session rebuilds the checkout session from the echoed request fields. The
// encrypted session id is what ties the reply to the browser that started it.
func (s *ReplyServiceImpl) session(reply ports.FormReply) (ports.CheckoutSession, error) {
	session := reply.Session
	session.MethodKey = reply.Payload["req_"+FieldMethodKey]
	if session.MethodKey == "" {
		session.MethodKey = DefaultMethodKey
	}
	enc := reply.Payload["req_"+FieldSessionID]
	if enc == "" {
		session.SessionID = ""
		return session, nil
	}
	id, err := s.encSvc.Decrypt(enc)
	if err != nil {
		s.log.Warn().Err(err).Str("reference_number", reply.Payload["req_reference_number"]).Msg("session id could not be decrypted")
		return session, apperror.ErrOrderMismatch()
	}
	session.SessionID = id
	return session, nil
}

func (s *ReplyServiceImpl) redirectFor(state *domain.PaymentState) string {
	cs := s.cfg.Current().Cybersource
	if state == nil || state.Status == domain.PaymentStatusDeclined {
		return cs.RedirectFail
	}
	return cs.RedirectSuccess
}

func (s *ReplyServiceImpl) cachedOutcome(ctx context.Context, key string) *domain.ReplyOutcome {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("reply cache read failed")
		return nil
	}
	if raw == nil {
		return nil
	}
	var out domain.ReplyOutcome
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("reply cache entry unreadable")
		return nil
	}
	out.Duplicate = true
	return &out
}

func (s *ReplyServiceImpl) cacheOutcome(ctx context.Context, key string, out *domain.ReplyOutcome) {
	if s.cache == nil {
		return
	}
	stored := *out
	stored.Duplicate = false
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, replyOutcomeTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("reply cache write failed")
	}
}

func (s *ReplyServiceImpl) auditReply(ctx context.Context, reply ports.FormReply, rec *domain.ReplyRecord, out *domain.ReplyOutcome) {
	if s.audit == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"transaction_type": rec.ReqTransactionType,
		"transaction_id":   rec.TransactionID,
		"decision":         out.Decision,
		"duplicate":        out.Duplicate,
	})
	entry := &domain.AuditLog{
		Action:       domain.AuditActionReply,
		ResourceType: "order",
		ResourceID:   out.OrderNumber,
		Details:      string(details),
		IPAddress:    reply.Session.ClientIP,
	}
	if reply.UserID != nil {
		entry.Actor = *reply.UserID
	}
	s.audit.Log(ctx, entry)
}

// payloadAmount parses a decimal reply field; absent or malformed is zero.
func payloadAmount(data map[string]string, key string) decimal.Decimal {
	amount, err := decimal.NewFromString(data[key])
	if err != nil {
		return decimal.Zero
	}
	return amount
}
