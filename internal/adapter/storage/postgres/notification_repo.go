package postgres

import (
	"context"
	"fmt"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// NotificationRepo implements ports.NotificationRepository.
type NotificationRepo struct {
	pool Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(pool Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, d *domain.NotificationDelivery) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notification_deliveries
		(id, transaction_id, target_url, payload, http_status, attempt, status, next_retry_at, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.TransactionID, d.TargetURL,
		d.Payload, d.HTTPStatus, d.Attempt, string(d.Status),
		d.NextRetryAt, d.LastError, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification delivery: %w", err)
	}
	return nil
}

func (r *NotificationRepo) Update(ctx context.Context, d *domain.NotificationDelivery) error {
	d.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_deliveries
		SET http_status = $1, attempt = $2, status = $3, next_retry_at = $4, last_error = $5, updated_at = $6
		WHERE id = $7`,
		d.HTTPStatus, d.Attempt, string(d.Status),
		d.NextRetryAt, d.LastError, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update notification delivery: %w", err)
	}
	return nil
}

// GetByTransactionID lists delivery attempts for a transaction, newest first.
func (r *NotificationRepo) GetByTransactionID(ctx context.Context, txID uuid.UUID) ([]domain.NotificationDelivery, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, transaction_id, target_url, payload,
		http_status, attempt, status, next_retry_at, last_error,
		created_at, updated_at
		FROM notification_deliveries
		WHERE transaction_id = $1
		ORDER BY created_at DESC`, txID)
	if err != nil {
		return nil, fmt.Errorf("list notification deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationDelivery
	for rows.Next() {
		var d domain.NotificationDelivery
		var status string
		if err := rows.Scan(
			&d.ID, &d.TransactionID, &d.TargetURL, &d.Payload,
			&d.HTTPStatus, &d.Attempt, &status, &d.NextRetryAt, &d.LastError,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification delivery: %w", err)
		}
		d.Status = domain.DeliveryStatus(status)
		out = append(out, d)
	}
	return out, rows.Err()
}
