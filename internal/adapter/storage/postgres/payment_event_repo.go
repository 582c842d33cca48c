package postgres

import (
	"context"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PaymentEventRepo implements ports.PaymentEventRepository.
type PaymentEventRepo struct {
	pool Pool
}

// NewPaymentEventRepo creates a new PaymentEventRepo.
func NewPaymentEventRepo(pool Pool) *PaymentEventRepo {
	return &PaymentEventRepo{pool: pool}
}

// Create inserts the event and one quantity row per covered line.
func (r *PaymentEventRepo) Create(ctx context.Context, tx pgx.Tx, ev *domain.PaymentEvent) error {
	q := on(r.pool, tx)
	if _, err := q.Exec(ctx,
		`INSERT INTO payment_events (id, order_id, event_type, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.OrderID, ev.EventType, ev.Amount, ev.Reference, ev.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert payment event: %w", err)
	}
	for _, l := range ev.Lines {
		if _, err := q.Exec(ctx,
			`INSERT INTO payment_event_quantities (event_id, line_id, quantity) VALUES ($1, $2, $3)`,
			ev.ID, l.LineID, l.Quantity,
		); err != nil {
			return fmt.Errorf("insert payment event quantity: %w", err)
		}
	}
	return nil
}
