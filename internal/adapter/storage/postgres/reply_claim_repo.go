package postgres

import (
	"context"
	"errors"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReplyClaimRepo implements ports.ReplyClaimRepository.
type ReplyClaimRepo struct {
	pool Pool
}

// NewReplyClaimRepo creates a new ReplyClaimRepo.
func NewReplyClaimRepo(pool Pool) *ReplyClaimRepo {
	return &ReplyClaimRepo{pool: pool}
}

// Claim inserts the claim row inside tx. While another transaction holds an
// uncommitted claim for the same id the insert waits for it; false means a
// committed claim already exists.
func (r *ReplyClaimRepo) Claim(ctx context.Context, tx pgx.Tx, transactionID string, orderID uuid.UUID) (bool, error) {
	tag, err := on(r.pool, tx).Exec(ctx,
		`INSERT INTO cybersource_reply_claims (transaction_id, order_id)
		VALUES ($1, $2) ON CONFLICT (transaction_id) DO NOTHING`,
		transactionID, orderID,
	)
	if err != nil {
		return false, fmt.Errorf("insert reply claim: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Settle records the payment status the claimed delivery ended with.
func (r *ReplyClaimRepo) Settle(ctx context.Context, tx pgx.Tx, transactionID string, status domain.PaymentStatus) error {
	tag, err := on(r.pool, tx).Exec(ctx,
		`UPDATE cybersource_reply_claims SET payment_status = $2 WHERE transaction_id = $1`,
		transactionID, string(status),
	)
	if err != nil {
		return fmt.Errorf("settle reply claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reply claim not found: %s", transactionID)
	}
	return nil
}

// Status returns the settled payment status, or "" when the claim is unknown.
func (r *ReplyClaimRepo) Status(ctx context.Context, transactionID string) (domain.PaymentStatus, error) {
	var status string
	err := r.pool.QueryRow(ctx,
		`SELECT payment_status FROM cybersource_reply_claims WHERE transaction_id = $1`,
		transactionID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get reply claim: %w", err)
	}
	return domain.PaymentStatus(status), nil
}
