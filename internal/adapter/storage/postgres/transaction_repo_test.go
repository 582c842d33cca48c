package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction() *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	tokenID := uuid.New()
	logID := uuid.New()
	return &domain.Transaction{
		ID:           uuid.New(),
		SourceID:     uuid.New(),
		SourceType:   "Cybersource Secure Acceptance",
		OrderID:      uuid.New(),
		TxnType:      domain.TxnTypeAuthorise,
		Amount:       decimal.RequireFromString("10.00"),
		Status:       domain.DecisionAccept,
		Reference:    "5299905563596290804102",
		RequestToken: "Ahj/7wSTA",
		ProcessedAt:  now,
		TokenID:      &tokenID,
		LogID:        &logID,
		CreatedAt:    now,
	}
}

func txColumns() []string {
	return []string{"id", "source_id", "source_type", "order_id", "txn_type", "amount", "status",
		"reference", "request_token", "processed_datetime", "token_id", "authorization_id", "log_id", "date_created"}
}

func txRow(t *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(txColumns()).AddRow(
		t.ID, t.SourceID, t.SourceType, t.OrderID, t.TxnType, t.Amount, t.Status,
		t.Reference, t.RequestToken, t.ProcessedAt, t.TokenID, t.AuthorizationID, t.LogID, t.CreatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payment_transactions .+ ON CONFLICT \\(reference\\) WHERE txn_type = 'Authorise'").
		WithArgs(
			txn.ID, txn.SourceID, txn.TxnType, txn.Amount, txn.Status, txn.Reference,
			txn.RequestToken, txn.ProcessedAt, txn.TokenID, txn.AuthorizationID, txn.LogID, txn.CreatedAt,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(txn.ID))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, newTestTransaction())
	assert.ErrorIs(t, err, domain.ErrDuplicateDelivery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payment_transactions").
		WillReturnError(errors.New("check constraint only_captures_have_auths"))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, newTestTransaction())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateDelivery)
	assert.Contains(t, err.Error(), "insert transaction")
}

func TestTransactionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectQuery("SELECT .+ FROM payment_transactions t JOIN payment_sources s .+ WHERE t.id").
		WithArgs(txn.ID).
		WillReturnRows(txRow(txn))

	result, err := repo.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.Equal(t, txn.OrderID, result.OrderID)
	assert.Equal(t, txn.SourceType, result.SourceType)
	assert.True(t, txn.Amount.Equal(result.Amount))
	assert.Equal(t, txn.TokenID, result.TokenID)
	assert.Nil(t, result.AuthorizationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_transactions").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(txColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectBegin()
	mock.ExpectQuery("WHERE t.id = \\$1 FOR UPDATE OF t").
		WithArgs(txn.ID).
		WillReturnRows(txRow(txn))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), dbTx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.Reference, result.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByOrderAndReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectQuery("WHERE s.order_id = \\$1 AND t.reference = \\$2").
		WithArgs(txn.OrderID, txn.Reference).
		WillReturnRows(txRow(txn))

	result, err := repo.GetByOrderAndReference(context.Background(), nil, txn.OrderID, txn.Reference)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SumCaptured(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	authID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payment_transactions").
		WithArgs(authID).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("7.50")))

	total, err := repo.SumCaptured(context.Background(), nil, authID)
	require.NoError(t, err)
	assert.Equal(t, "7.50", total.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_transactions SET status").
		WithArgs(domain.Decision("REJECT"), txID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), dbTx, txID, domain.Decision("REJECT"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_transactions SET status").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), dbTx, uuid.New(), domain.DecisionAccept)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transaction not found")
}

func TestTransactionRepo_ListByOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	auth := newTestTransaction()
	debit := newTestTransaction()
	debit.TxnType = domain.TxnTypeDebit
	debit.OrderID = auth.OrderID
	debit.AuthorizationID = &auth.ID

	rows := pgxmock.NewRows(txColumns())
	for _, x := range []*domain.Transaction{auth, debit} {
		rows.AddRow(
			x.ID, x.SourceID, x.SourceType, x.OrderID, x.TxnType, x.Amount, x.Status,
			x.Reference, x.RequestToken, x.ProcessedAt, x.TokenID, x.AuthorizationID, x.LogID, x.CreatedAt,
		)
	}
	mock.ExpectQuery("WHERE s.order_id = \\$1 ORDER BY t.date_created").
		WithArgs(auth.OrderID).
		WillReturnRows(rows)

	txns, err := repo.ListByOrder(context.Background(), auth.OrderID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TxnTypeDebit, txns[1].TxnType)
	require.NotNil(t, txns[1].AuthorizationID)
	assert.Equal(t, auth.ID, *txns[1].AuthorizationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
