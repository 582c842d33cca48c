package postgres

import (
	"context"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SourceRepo implements ports.SourceRepository.
type SourceRepo struct {
	pool Pool
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(pool Pool) *SourceRepo {
	return &SourceRepo{pool: pool}
}

// GetOrCreate returns the source for (order, source type), inserting s when
// the order has none yet. Existing rows keep their reference and amounts.
func (r *SourceRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, s *domain.Source) (*domain.Source, error) {
	q := on(r.pool, tx)
	if _, err := q.Exec(ctx,
		`INSERT INTO payment_sources (id, order_id, source_type, reference, currency)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (order_id, source_type) DO NOTHING`,
		s.ID, s.OrderID, s.SourceType, s.Reference, s.Currency,
	); err != nil {
		return nil, fmt.Errorf("insert source: %w", err)
	}

	out := &domain.Source{}
	err := q.QueryRow(ctx,
		`SELECT id, order_id, source_type, reference, currency, amount_allocated, amount_debited, amount_refunded
		FROM payment_sources WHERE order_id = $1 AND source_type = $2`,
		s.OrderID, s.SourceType,
	).Scan(
		&out.ID, &out.OrderID, &out.SourceType, &out.Reference, &out.Currency,
		&out.AmountAllocated, &out.AmountDebited, &out.AmountRefunded,
	)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return out, nil
}

// IncrementAllocated adds amount in place and returns the new total.
func (r *SourceRepo) IncrementAllocated(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return r.increment(ctx, tx, "amount_allocated", id, amount)
}

// IncrementDebited adds amount in place and returns the new total.
func (r *SourceRepo) IncrementDebited(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return r.increment(ctx, tx, "amount_debited", id, amount)
}

// column is one of the fixed names above, never user input.
func (r *SourceRepo) increment(ctx context.Context, tx pgx.Tx, column string, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := fmt.Sprintf(`UPDATE payment_sources SET %[1]s = %[1]s + $1 WHERE id = $2 RETURNING %[1]s`, column)
	if err := on(r.pool, tx).QueryRow(ctx, query, amount, id).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("increment %s: %w", column, err)
	}
	return total, nil
}
