package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor. Ledger writes run at read
// committed; capture serializes on the authorization row lock instead.
type Transactor struct {
	pool Pool
	opts pgx.TxOptions
}

// NewTransactor creates a Transactor on pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// Begin starts a read-write transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, t.opts)
}
