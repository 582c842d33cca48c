package service

import (
	"context"
	"errors"
	"testing"

	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCheckoutState_MarkDeclined(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mocks.NewMockPaymentStateStore(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	svc := NewCheckoutStateService(states, orders, newTestLogger())
	ctx := context.Background()
	tx := &mockTx{}
	order := testOrder()
	session := testSession()

	states.EXPECT().Set(ctx, "sess-1", "cybersource", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, st *domain.PaymentState) error {
			assert.Equal(t, domain.PaymentStatusDeclined, st.Status)
			return nil
		})
	orders.EXPECT().UpdateStatus(ctx, tx, order.ID, domain.OrderStatusPaymentDeclined).Return(nil)

	require.NoError(t, svc.MarkDeclined(ctx, tx, order, session, decimal.NewFromInt(10)))
	assert.Equal(t, domain.OrderStatusPaymentDeclined, order.Status)
}

func TestCheckoutState_MarkDeclined_InvalidTransitionStillRecordsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mocks.NewMockPaymentStateStore(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	svc := NewCheckoutStateService(states, orders, newTestLogger())
	order := testOrder()
	order.Status = domain.OrderStatusShipped

	states.EXPECT().Set(gomock.Any(), "sess-1", "cybersource", gomock.Any()).Return(nil)

	err := svc.MarkDeclined(context.Background(), &mockTx{}, order, testSession(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
}

func TestCheckoutState_MarkComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mocks.NewMockPaymentStateStore(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	svc := NewCheckoutStateService(states, orders, newTestLogger())
	ctx := context.Background()
	tx := &mockTx{}
	order := testOrder()
	state := domain.Complete(decimal.NewFromInt(10), uuid.New())

	states.EXPECT().Set(ctx, "sess-1", "cybersource", state).Return(nil)
	orders.EXPECT().UpdateStatus(ctx, tx, order.ID, domain.OrderStatusAuthorized).Return(nil)

	require.NoError(t, svc.MarkComplete(ctx, tx, order, testSession(), state))
	assert.Equal(t, domain.OrderStatusAuthorized, order.Status)

	// Already authorized: nothing to update.
	states.EXPECT().Set(ctx, "sess-1", "cybersource", state).Return(nil)
	require.NoError(t, svc.MarkComplete(ctx, tx, order, testSession(), state))
}

func TestCheckoutState_MarkComplete_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mocks.NewMockPaymentStateStore(ctrl)
	svc := NewCheckoutStateService(states, mocks.NewMockOrderRepository(ctrl), newTestLogger())

	states.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	err := svc.MarkComplete(context.Background(), &mockTx{}, testOrder(), testSession(), &domain.PaymentState{})
	assert.Error(t, err)
}

type checkoutFixture struct {
	svc    *CheckoutServiceImpl
	orders *mocks.MockOrderRepository
	states *mocks.MockPaymentStateStore
	bf     *builderFixture
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	ctrl := gomock.NewController(t)
	f := &checkoutFixture{
		orders: mocks.NewMockOrderRepository(ctrl),
		states: mocks.NewMockPaymentStateStore(ctrl),
		bf:     newBuilderFixture(t),
	}
	f.svc = NewCheckoutService(f.orders, f.states, f.bf.b, newTestLogger())
	return f
}

func TestCheckoutService_StartSecureAcceptance(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	order := testOrder()

	f.orders.EXPECT().GetByNumber(ctx, "100001").Return(order, nil)
	f.bf.expectProfile()
	f.bf.nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.bf.enc.EXPECT().Encrypt("sess-1").Return("enc", nil)
	f.states.EXPECT().Set(ctx, "sess-1", "cybersource", gomock.Any()).Return(nil)

	state, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{
		OrderNumber: "100001", Host: "shop.example.com", Session: testSession(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFormPostRequired, state.Status)
	assert.Equal(t, "10.00", state.Amount.StringFixed(2))
	assert.Equal(t, "https://testsecureacceptance.cybersource.com/silent/pay", state.URL)

	byKey := map[string]domain.FormField{}
	for _, ff := range state.Fields {
		byKey[ff.Key] = ff
	}
	assert.Equal(t, "create_payment_token", byKey["transaction_type"].Value)
	assert.True(t, byKey["card_number"].Editable)
	assert.NotEmpty(t, byKey["signature"].Value)
}

func TestCheckoutService_StartSecureAcceptance_AuthorizeWithToken(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	amount := decimal.RequireFromString("4.50")

	f.orders.EXPECT().GetByNumber(ctx, "100001").Return(testOrder(), nil)
	f.bf.expectProfile()
	f.bf.nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.bf.enc.EXPECT().Encrypt(gomock.Any()).Return("enc", nil)
	f.states.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	state, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{
		OrderNumber: "100001", Host: "shop.example.com", Session: testSession(),
		Amount: &amount, PaymentToken: "TOKEN",
	})
	require.NoError(t, err)
	assert.Equal(t, "4.50", state.Amount.StringFixed(2))
	for _, ff := range state.Fields {
		if ff.Key == "transaction_type" {
			assert.Equal(t, "authorization", ff.Value)
		}
	}
}

func TestCheckoutService_StartSecureAcceptance_Errors(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByNumber(ctx, "missing").Return(nil, nil)
	_, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{OrderNumber: "missing"})
	assertAppError(t, err, "PAY_004")

	tooMuch := decimal.RequireFromString("10.01")
	f.orders.EXPECT().GetByNumber(ctx, "100001").Return(testOrder(), nil)
	_, err = f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{OrderNumber: "100001", Amount: &tooMuch})
	assertAppError(t, err, "PAY_002")
}

func TestCheckoutService_StartSecureAcceptance_FractionalCent(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	amount := decimal.RequireFromString("0.004")

	f.orders.EXPECT().GetByNumber(ctx, "100001").Return(testOrder(), nil)
	_, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{OrderNumber: "100001", Amount: &amount})
	assertAppError(t, err, "PAY_002")
}

func TestCheckoutService_StartSecureAcceptance_MerchantData(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.orders.EXPECT().GetByNumber(ctx, "100001").Return(testOrder(), nil)
	f.bf.expectProfile()
	f.bf.nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.bf.enc.EXPECT().Encrypt(gomock.Any()).Return("enc", nil)
	f.states.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	state, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{
		OrderNumber: "100001", Host: "shop.example.com", Session: testSession(),
		MerchantData: map[string]string{"merchant_defined_data5": "<b>gift</b>"},
	})
	require.NoError(t, err)

	byKey := map[string]domain.FormField{}
	for _, ff := range state.Fields {
		byKey[ff.Key] = ff
	}
	assert.Equal(t, "<b>gift</b>", byKey["merchant_defined_data5"].Value)
	assert.False(t, byKey["merchant_defined_data5"].Editable)
	assert.Equal(t, "10.00", byKey["amount"].Value)
}

func TestCheckoutService_StartSecureAcceptance_RefusesSignedFieldOverrides(t *testing.T) {
	for _, key := range []string{"amount", "reference_number", "access_key", "transaction_type", FieldMethodKey} {
		t.Run(key, func(t *testing.T) {
			f := newCheckoutFixture(t)
			ctx := context.Background()

			f.orders.EXPECT().GetByNumber(ctx, "100001").Return(testOrder(), nil)
			_, err := f.svc.StartSecureAcceptance(ctx, ports.CheckoutRequest{
				OrderNumber: "100001", Host: "shop.example.com", Session: testSession(),
				MerchantData: map[string]string{key: "0.01"},
			})
			assertAppError(t, err, "PAY_002")
		})
	}
}
