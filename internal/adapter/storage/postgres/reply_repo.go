package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const replyColumns = `id, user_id, order_id, reply_type, data,
	auth_avs_code, auth_code, auth_response, auth_trans_ref_no, decision, message, reason_code,
	req_bill_to_address_postal_code, req_bill_to_forename, req_bill_to_surname,
	req_card_expiry_date, req_reference_number, req_transaction_type, req_transaction_uuid,
	request_token, transaction_id, date_created, date_modified`

// ReplyRepo implements ports.ReplyRepository.
type ReplyRepo struct {
	pool Pool
}

// NewReplyRepo creates a new ReplyRepo.
func NewReplyRepo(pool Pool) *ReplyRepo {
	return &ReplyRepo{pool: pool}
}

// Create appends a reply to the log. A nil tx writes through the pool.
func (r *ReplyRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.ReplyRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("encode reply data: %w", err)
	}
	_, err = on(r.pool, tx).Exec(ctx,
		`INSERT INTO cybersource_replies (`+replyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		rec.ID, rec.UserID, rec.OrderID, rec.ReplyType, data,
		rec.AuthAvsCode, rec.AuthCode, rec.AuthResponse, rec.AuthTransRefNo, rec.Decision, rec.Message, rec.ReasonCode,
		rec.ReqBillToAddressPostalCode, rec.ReqBillToForename, rec.ReqBillToSurname,
		rec.ReqCardExpiryDate, rec.ReqReferenceNumber, rec.ReqTransactionType, rec.ReqTransactionUUID,
		rec.RequestToken, rec.TransactionID, rec.DateCreated, rec.DateModified,
	)
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// GetByID fetches a reply by UUID.
func (r *ReplyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReplyRecord, error) {
	rec := &domain.ReplyRecord{}
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT `+replyColumns+` FROM cybersource_replies WHERE id = $1`, id).Scan(
		&rec.ID, &rec.UserID, &rec.OrderID, &rec.ReplyType, &data,
		&rec.AuthAvsCode, &rec.AuthCode, &rec.AuthResponse, &rec.AuthTransRefNo, &rec.Decision, &rec.Message, &rec.ReasonCode,
		&rec.ReqBillToAddressPostalCode, &rec.ReqBillToForename, &rec.ReqBillToSurname,
		&rec.ReqCardExpiryDate, &rec.ReqReferenceNumber, &rec.ReqTransactionType, &rec.ReqTransactionUUID,
		&rec.RequestToken, &rec.TransactionID, &rec.DateCreated, &rec.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan reply: %w", err)
	}
	rec.Data = map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec.Data); err != nil {
			return nil, fmt.Errorf("decode reply data: %w", err)
		}
	}
	return rec, nil
}

// UpdateCardExpiry backfills the expiry of a SOAP token reply.
func (r *ReplyRepo) UpdateCardExpiry(ctx context.Context, tx pgx.Tx, id uuid.UUID, expiry string) error {
	_, err := on(r.pool, tx).Exec(ctx,
		`UPDATE cybersource_replies SET req_card_expiry_date = $1, date_modified = now() WHERE id = $2`,
		expiry, id)
	if err != nil {
		return fmt.Errorf("update card expiry: %w", err)
	}
	return nil
}

// Scrub empties the payload of replies created before cutoff and returns the
// number of rows changed.
func (r *ReplyRepo) Scrub(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cybersource_replies SET data = '{}'::jsonb, date_modified = now()
		WHERE data <> '{}'::jsonb AND date_created < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("scrub replies: %w", err)
	}
	return tag.RowsAffected(), nil
}
