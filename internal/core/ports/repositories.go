package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Methods accepting pgx.Tx run inside the caller's transaction. Where noted, a nil
// tx runs the statement on the pool.

// ProfileRepository persists Secure Acceptance profiles.
type ProfileRepository interface {
	List(ctx context.Context) ([]domain.MerchantProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MerchantProfile, error)
	GetByHostname(ctx context.Context, hostname string) (*domain.MerchantProfile, error)
	GetDefault(ctx context.Context) (*domain.MerchantProfile, error)
	Create(ctx context.Context, tx pgx.Tx, profile *domain.MerchantProfile) error
	// UpsertByProfileID inserts profile or replaces the credentials and default
	// flag of the row with the same profile id. profile.ID, Hostname and
	// CreatedAt are set from the stored row.
	UpsertByProfileID(ctx context.Context, tx pgx.Tx, profile *domain.MerchantProfile) error
	// ClearDefaults unsets is_default on every profile except keep.
	ClearDefaults(ctx context.Context, tx pgx.Tx, keep uuid.UUID) error
	SetDefault(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReplyRepository is the append-only gateway reply log.
type ReplyRepository interface {
	// Create accepts a nil tx.
	Create(ctx context.Context, tx pgx.Tx, reply *domain.ReplyRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReplyRecord, error)
	UpdateCardExpiry(ctx context.Context, tx pgx.Tx, id uuid.UUID, expiry string) error
	// Scrub empties the data of replies created before cutoff.
	Scrub(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReplyClaimRepository records which gateway transaction ids were applied to
// the ledger.
type ReplyClaimRepository interface {
	// Claim takes transactionID inside tx. It returns false when a committed
	// claim already exists; a claim held by an open transaction blocks until
	// that transaction ends.
	Claim(ctx context.Context, tx pgx.Tx, transactionID string, orderID uuid.UUID) (bool, error)
	// Settle stores the checkout status the claimed reply resolved to.
	Settle(ctx context.Context, tx pgx.Tx, transactionID string, status domain.PaymentStatus) error
	// Status returns the settled status, or "" when none was stored.
	Status(ctx context.Context, transactionID string) (domain.PaymentStatus, error)
}

// PaymentTokenRepository persists vaulted card references.
type PaymentTokenRepository interface {
	// GetOrCreate returns the existing row for token.Token or inserts token.
	GetOrCreate(ctx context.Context, tx pgx.Tx, token *domain.PaymentToken) (*domain.PaymentToken, error)
	GetByToken(ctx context.Context, tx pgx.Tx, token string) (*domain.PaymentToken, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentToken, error)
}

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	// Create returns domain.ErrDuplicateDelivery when an Authorise row with
	// the same reference already exists.
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	GetByOrderAndReference(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, reference string) (*domain.Transaction, error)
	// SumCaptured totals accepted debits linked to authID.
	SumCaptured(ctx context.Context, tx pgx.Tx, authID uuid.UUID) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.Decision) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Transaction, error)
}

// SourceRepository persists per-order payment source accounting.
type SourceRepository interface {
	GetOrCreate(ctx context.Context, tx pgx.Tx, source *domain.Source) (*domain.Source, error)
	// IncrementAllocated adds amount in place and returns the new total.
	IncrementAllocated(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	IncrementDebited(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// OrderRepository reads and annotates checkout orders.
type OrderRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OrderStatus) error
	AddNote(ctx context.Context, tx pgx.Tx, note *domain.OrderNote) error
	// AppendSystemNote appends line to the first system note starting with
	// prefix, creating the note when none exists.
	AppendSystemNote(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, prefix, line string) error
}

// PaymentEventRepository records authorize and debit events with line quantities.
type PaymentEventRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *domain.PaymentEvent) error
}

// NotificationRepository persists outbound notification delivery attempts.
type NotificationRepository interface {
	Create(ctx context.Context, delivery *domain.NotificationDelivery) error
	Update(ctx context.Context, delivery *domain.NotificationDelivery) error
	GetByTransactionID(ctx context.Context, txID uuid.UUID) ([]domain.NotificationDelivery, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
