package service

import (
	"context"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CheckoutStateServiceImpl keeps the per-session payment method state and the
// order status in step.
type CheckoutStateServiceImpl struct {
	states ports.PaymentStateStore
	orders ports.OrderRepository
	log    zerolog.Logger
}

// NewCheckoutStateService creates a new CheckoutStateServiceImpl.
func NewCheckoutStateService(states ports.PaymentStateStore, orders ports.OrderRepository, log zerolog.Logger) *CheckoutStateServiceImpl {
	return &CheckoutStateServiceImpl{states: states, orders: orders, log: log}
}

// MarkDeclined records a Declined state, then moves the order to payment
// declined when the order pipeline allows it.
func (s *CheckoutStateServiceImpl) MarkDeclined(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, amount decimal.Decimal) error {
	if err := s.states.Set(ctx, session.SessionID, session.MethodKey, domain.Declined(amount, nil)); err != nil {
		return fmt.Errorf("set payment state: %w", err)
	}
	return s.moveOrder(ctx, tx, order, domain.OrderStatusPaymentDeclined)
}

// MarkComplete records state and moves the order to authorized.
func (s *CheckoutStateServiceImpl) MarkComplete(ctx context.Context, tx pgx.Tx, order *domain.Order, session ports.CheckoutSession, state *domain.PaymentState) error {
	if err := s.states.Set(ctx, session.SessionID, session.MethodKey, state); err != nil {
		return fmt.Errorf("set payment state: %w", err)
	}
	if err := s.moveOrder(ctx, tx, order, domain.OrderStatusAuthorized); err != nil {
		// A later step already owns the order (shipped, canceled); the payment still stands.
		s.log.Warn().Err(err).Str("order", order.Number).Msg("order status left unchanged")
	}
	return nil
}

func (s *CheckoutStateServiceImpl) moveOrder(ctx context.Context, tx pgx.Tx, order *domain.Order, to domain.OrderStatus) error {
	if order.Status == to {
		return nil
	}
	if err := domain.CheckTransition(order.Status, to); err != nil {
		return err
	}
	if err := s.orders.UpdateStatus(ctx, tx, order.ID, to); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	order.Status = to
	return nil
}

// CheckoutServiceImpl starts Secure Acceptance payments for orders.
type CheckoutServiceImpl struct {
	orders  ports.OrderRepository
	states  ports.PaymentStateStore
	builder *RequestBuilder
	log     zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(orders ports.OrderRepository, states ports.PaymentStateStore, builder *RequestBuilder, log zerolog.Logger) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{orders: orders, states: states, builder: builder, log: log}
}

// StartSecureAcceptance builds the signed form for the browser and records
// the form-post-required state for the session. With a payment token the form
// authorizes directly; otherwise it creates a token first.
func (s *CheckoutServiceImpl) StartSecureAcceptance(ctx context.Context, req ports.CheckoutRequest) (*domain.PaymentState, error) {
	order, err := s.orders.GetByNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound(req.OrderNumber)
	}

	amount := order.TotalInclTax
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !domain.IsPayableAmount(amount) || amount.GreaterThan(order.TotalInclTax) {
		return nil, apperror.ErrInvalidAmount()
	}
	merchantData, err := domain.ParseMerchantData(req.MerchantData, MethodKeySlot)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	kind := KindCreateToken
	if req.PaymentToken != "" {
		kind = KindAuthorize
	}
	signed, err := s.builder.Build(ctx, kind, OrderRequest{
		Host:         req.Host,
		Order:        order,
		Session:      req.Session,
		Amount:       amount,
		PaymentToken: req.PaymentToken,
		MerchantData: merchantData,
	})
	if err != nil {
		return nil, err
	}

	state := domain.FormPostRequired(amount, signed.URL, signed.FormFields())
	if err := s.states.Set(ctx, req.Session.SessionID, req.Session.MethodKey, state); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set payment state: %w", err))
	}

	s.log.Info().
		Str("order", order.Number).
		Str("method", req.Session.MethodKey).
		Str("transaction_type", kind.String()).
		Msg("secure acceptance form issued")
	return state, nil
}
