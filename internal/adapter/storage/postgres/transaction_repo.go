package postgres

import (
	"context"
	"errors"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Source type and order id are joined from payment_sources.
const txnSelect = `SELECT t.id, t.source_id, s.source_type, s.order_id, t.txn_type, t.amount, t.status,
	t.reference, t.request_token, t.processed_datetime, t.token_id, t.authorization_id, t.log_id, t.date_created
	FROM payment_transactions t JOIN payment_sources s ON s.id = t.source_id`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a ledger entry. An Authorise row whose reference is already
// recorded is skipped by the partial unique index and reported as
// domain.ErrDuplicateDelivery.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO payment_transactions (id, source_id, txn_type, amount, status, reference,
		request_token, processed_datetime, token_id, authorization_id, log_id, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (reference) WHERE txn_type = 'Authorise' AND reference <> '' DO NOTHING
		RETURNING id`

	var id uuid.UUID
	err := on(r.pool, tx).QueryRow(ctx, query,
		t.ID, t.SourceID, t.TxnType, t.Amount, t.Status, t.Reference,
		t.RequestToken, t.ProcessedAt, t.TokenID, t.AuthorizationID, t.LogID, t.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDuplicateDelivery
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, txnSelect+` WHERE t.id = $1`, id))
}

// GetByIDForUpdate locks the transaction row until tx ends.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	return scanTransaction(on(r.pool, tx).QueryRow(ctx, txnSelect+` WHERE t.id = $1 FOR UPDATE OF t`, id))
}

// GetByOrderAndReference finds the entry a gateway request id refers to.
func (r *TransactionRepo) GetByOrderAndReference(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, reference string) (*domain.Transaction, error) {
	return scanTransaction(on(r.pool, tx).QueryRow(ctx,
		txnSelect+` WHERE s.order_id = $1 AND t.reference = $2 ORDER BY t.date_created LIMIT 1`,
		orderID, reference))
}

// SumCaptured totals accepted debits linked to authID.
func (r *TransactionRepo) SumCaptured(ctx context.Context, tx pgx.Tx, authID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := on(r.pool, tx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payment_transactions
		WHERE authorization_id = $1 AND txn_type = 'Debit' AND status = 'ACCEPT'`, authID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum captured: %w", err)
	}
	return total, nil
}

// UpdateStatus updates a transaction's status within a database transaction.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.Decision) error {
	tag, err := on(r.pool, tx).Exec(ctx, `UPDATE payment_transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// ListByOrder returns every ledger entry of an order, oldest first.
func (r *TransactionRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, txnSelect+` WHERE s.order_id = $1 ORDER BY t.date_created`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.SourceID, &t.SourceType, &t.OrderID, &t.TxnType, &t.Amount, &t.Status,
		&t.Reference, &t.RequestToken, &t.ProcessedAt, &t.TokenID, &t.AuthorizationID, &t.LogID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
