package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderSelect = `SELECT id, number, status, currency, total_incl_tax, email, user_id, shipping_code,
	billing_address, shipping_address FROM orders`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// GetByNumber fetches an order and its lines by order number.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return r.load(ctx, r.pool.QueryRow(ctx, orderSelect+` WHERE number = $1`, number))
}

// GetByID fetches an order and its lines by UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return r.load(ctx, r.pool.QueryRow(ctx, orderSelect+` WHERE id = $1`, id))
}

// UpdateStatus sets the order status. Pipeline checks belong to the caller.
func (r *OrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := on(r.pool, tx).Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found: %s", id)
	}
	return nil
}

// AddNote inserts an order note.
func (r *OrderRepo) AddNote(ctx context.Context, tx pgx.Tx, note *domain.OrderNote) error {
	_, err := on(r.pool, tx).Exec(ctx,
		`INSERT INTO order_notes (id, order_id, note_type, message, date_created, date_modified)
		VALUES ($1, $2, $3, $4, now(), now())`,
		note.ID, note.OrderID, note.NoteType, note.Message)
	if err != nil {
		return fmt.Errorf("insert order note: %w", err)
	}
	return nil
}

// AppendSystemNote appends line to the first system note starting with prefix,
// creating the note when none exists.
func (r *OrderRepo) AppendSystemNote(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, prefix, line string) error {
	q := on(r.pool, tx)

	var noteID uuid.UUID
	err := q.QueryRow(ctx,
		`SELECT id FROM order_notes
		WHERE order_id = $1 AND note_type = $2 AND starts_with(message, $3)
		ORDER BY date_created LIMIT 1 FOR UPDATE`,
		orderID, domain.NoteTypeSystem, prefix,
	).Scan(&noteID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return r.AddNote(ctx, tx, &domain.OrderNote{
			ID:       uuid.New(),
			OrderID:  orderID,
			NoteType: domain.NoteTypeSystem,
			Message:  line,
		})
	case err != nil:
		return fmt.Errorf("find system note: %w", err)
	}

	if _, err := q.Exec(ctx,
		`UPDATE order_notes SET message = message || $1, date_modified = now() WHERE id = $2`,
		line, noteID,
	); err != nil {
		return fmt.Errorf("append system note: %w", err)
	}
	return nil
}

func (r *OrderRepo) load(ctx context.Context, row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var billing, shipping []byte
	err := row.Scan(
		&o.ID, &o.Number, &o.Status, &o.Currency, &o.TotalInclTax, &o.Email, &o.UserID, &o.ShippingCode,
		&billing, &shipping,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if o.BillingAddress, err = decodeAddress(billing); err != nil {
		return nil, fmt.Errorf("decode billing address: %w", err)
	}
	if o.ShippingAddress, err = decodeAddress(shipping); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, partner_sku, quantity, unit_price_incl_tax
		FROM order_lines WHERE order_id = $1 ORDER BY position, id`, o.ID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.Title, &l.PartnerSKU, &l.Quantity, &l.UnitPriceInclTax); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return o, nil
}

func decodeAddress(raw []byte) (*domain.Address, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	a := &domain.Address{}
	if err := json.Unmarshal(raw, a); err != nil {
		return nil, err
	}
	return a, nil
}
