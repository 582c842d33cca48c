package postgres

import (
	"context"
	"testing"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentEventRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentEventRepo(mock)
	order := &domain.Order{ID: uuid.New(), Lines: []domain.OrderLine{
		{ID: uuid.New(), Quantity: 1},
		{ID: uuid.New(), Quantity: 3},
	}}
	ev := domain.NewPaymentEvent(order, domain.PaymentEventAuthorise, decimal.RequireFromString("10.00"), "ref-1")
	ev.ID = uuid.New()
	ev.CreatedAt = time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_events").
		WithArgs(ev.ID, order.ID, domain.PaymentEventAuthorise, ev.Amount, "ref-1", ev.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, l := range order.Lines {
		mock.ExpectExec("INSERT INTO payment_event_quantities").
			WithArgs(ev.ID, l.ID, l.Quantity).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), dbTx, ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_CreateUpdateList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	d := &domain.NotificationDelivery{
		ID: uuid.New(), TransactionID: uuid.New(), TargetURL: "https://downstream.example.com/dm",
		Payload: `{"event_type":"DECISION_UPDATE"}`, Attempt: 0, Status: domain.DeliveryStatusPending,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO notification_deliveries").
		WithArgs(d.ID, d.TransactionID, d.TargetURL, d.Payload, d.HTTPStatus, 0, "PENDING",
			d.NextRetryAt, d.LastError, d.CreatedAt, d.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Create(context.Background(), d))

	status := 200
	d.HTTPStatus, d.Attempt, d.Status = &status, 1, domain.DeliveryStatusDelivered
	mock.ExpectExec("UPDATE notification_deliveries").
		WithArgs(&status, 1, "DELIVERED", d.NextRetryAt, d.LastError, pgxmock.AnyArg(), d.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Update(context.Background(), d))

	mock.ExpectQuery("FROM notification_deliveries").
		WithArgs(d.TransactionID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_id", "target_url", "payload",
			"http_status", "attempt", "status", "next_retry_at", "last_error", "created_at", "updated_at"}).
			AddRow(d.ID, d.TransactionID, d.TargetURL, d.Payload, &status, 1, "DELIVERED",
				(*time.Time)(nil), (*string)(nil), d.CreatedAt, d.UpdatedAt))

	list, err := repo.GetByTransactionID(context.Background(), d.TransactionID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.DeliveryStatusDelivered, list[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	entry := &domain.AuditLog{
		ID: uuid.New(), Actor: "admin", Action: domain.AuditActionCapture,
		ResourceType: "transaction", ResourceID: uuid.NewString(), IPAddress: "203.0.113.9",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, "admin", "CAPTURE", "transaction", entry.ResourceID, "", "203.0.113.9", entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}
