package postgres

import (
	"context"
	"errors"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentTokenRepo implements ports.PaymentTokenRepository.
type PaymentTokenRepo struct {
	pool Pool
}

// NewPaymentTokenRepo creates a new PaymentTokenRepo.
func NewPaymentTokenRepo(pool Pool) *PaymentTokenRepo {
	return &PaymentTokenRepo{pool: pool}
}

// GetOrCreate inserts t unless a row with the same token string exists, and
// returns the stored row either way.
func (r *PaymentTokenRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, t *domain.PaymentToken) (*domain.PaymentToken, error) {
	q := on(r.pool, tx)
	_, err := q.Exec(ctx,
		`INSERT INTO cybersource_payment_tokens (id, log_id, token, masked_card_number, card_type)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (token) DO NOTHING`,
		t.ID, t.LogID, t.Token, t.MaskedCardNumber, t.CardType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment token: %w", err)
	}
	stored, err := r.GetByToken(ctx, tx, t.Token)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("payment token %s vanished after insert", t.Token)
	}
	return stored, nil
}

// GetByToken fetches a token by its gateway token string.
func (r *PaymentTokenRepo) GetByToken(ctx context.Context, tx pgx.Tx, token string) (*domain.PaymentToken, error) {
	return scanToken(on(r.pool, tx).QueryRow(ctx,
		`SELECT id, log_id, token, masked_card_number, card_type
		FROM cybersource_payment_tokens WHERE token = $1`, token))
}

// GetByID fetches a token by UUID.
func (r *PaymentTokenRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentToken, error) {
	return scanToken(r.pool.QueryRow(ctx,
		`SELECT id, log_id, token, masked_card_number, card_type
		FROM cybersource_payment_tokens WHERE id = $1`, id))
}

func scanToken(row pgx.Row) (*domain.PaymentToken, error) {
	t := &domain.PaymentToken{}
	if err := row.Scan(&t.ID, &t.LogID, &t.Token, &t.MaskedCardNumber, &t.CardType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment token: %w", err)
	}
	return t, nil
}
