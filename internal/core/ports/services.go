package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService signs and verifies Secure Acceptance field sets.
type SignatureService interface {
	// Sign returns the base64 HMAC-SHA256 of the named fields, in the given order.
	Sign(secretKey string, fields map[string]string, signedFieldNames []string) string
	// Verify re-signs the fields listed in payload["signed_field_names"] and
	// compares against payload["signature"].
	Verify(secretKey string, payload map[string]string) (bool, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations for the admin API.
type TokenService interface {
	Generate(username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Username string
}

// IdempotencyCache is the Redis-layer replay check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore reserves single-use values.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists in scope, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// PaymentStateStore keeps the checkout state of each payment method per session.
type PaymentStateStore interface {
	Get(ctx context.Context, sessionID, methodKey string) (*domain.PaymentState, error)
	Set(ctx context.Context, sessionID, methodKey string, state *domain.PaymentState) error
}

// --- Gateway ---

// GatewayCall carries the order context sent with every SOAP request.
type GatewayCall struct {
	Order                *domain.Order
	MethodKey            string
	ClientIP             string
	FingerprintSessionID string
	MerchantData         domain.MerchantData // emitted as merchantDefinedData fieldN
}

// GatewayClient talks to the processor's SOAP API. A non-nil error means no
// reply was received; callers treat that as an ERROR decision.
type GatewayClient interface {
	CreateToken(ctx context.Context, call GatewayCall, encryptedPayment string) (*domain.GatewayReply, error)
	LookupToken(ctx context.Context, call GatewayCall, token string) (*domain.GatewayReply, error)
	Authorize(ctx context.Context, call GatewayCall, token string, amount decimal.Decimal) (*domain.GatewayReply, error)
	Capture(ctx context.Context, call GatewayCall, token string, amount decimal.Decimal, authRequestID string) (*domain.GatewayReply, error)
}

// --- Service Ports (Business Logic) ---

// ProfileResolver finds the merchant credentials for a request hostname.
type ProfileResolver interface {
	GetProfile(ctx context.Context, hostname string) (*domain.MerchantProfile, error)
}

// ProfileService is the back-office profile management API.
type ProfileService interface {
	List(ctx context.Context) ([]domain.MerchantProfile, error)
	Create(ctx context.Context, req CreateProfileRequest) (*domain.MerchantProfile, error)
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeUnreadable(ctx context.Context) (int, error)
}

// CreateProfileRequest holds input for a new Secure Acceptance profile.
type CreateProfileRequest struct {
	Hostname  string
	ProfileID string
	AccessKey string
	SecretKey string
	IsDefault bool
}

// CheckoutSession identifies the browser checkout a payment belongs to.
type CheckoutSession struct {
	SessionID            string
	MethodKey            string
	ClientIP             string
	FingerprintSessionID string
}

// AuthResult is an authorization outcome to be written to the ledger.
type AuthResult struct {
	Order        *domain.Order
	Log          *domain.ReplyRecord
	Session      CheckoutSession
	TokenString  string
	Reference    string
	RequestToken string
	Decision     domain.Decision
	Amount       decimal.Decimal
	ProcessedAt  time.Time
}

// LedgerService owns the authorize and capture chain.
type LedgerService interface {
	RecordPaymentToken(ctx context.Context, tx pgx.Tx, log *domain.ReplyRecord, token, cardNumber, cardType string) (*domain.PaymentToken, error)
	AuthorizePayment(ctx context.Context, tx pgx.Tx, order *domain.Order, session CheckoutSession, token string, amount decimal.Decimal, data domain.MerchantData) (*domain.PaymentState, error)
	RecordSuccessfulAuth(ctx context.Context, tx pgx.Tx, res AuthResult) (*domain.PaymentState, error)
	RecordDeclinedAuth(ctx context.Context, tx pgx.Tx, res AuthResult) (*domain.PaymentState, error)
	Capture(ctx context.Context, authTxnID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	ListOrderTransactions(ctx context.Context, orderNumber string) ([]domain.Transaction, error)
	TokenDetails(ctx context.Context, tokenID uuid.UUID) (*TokenView, error)
}

// TokenView is a payment token with its derived display fields.
type TokenView struct {
	Token   *domain.PaymentToken
	Details domain.TokenDetails
}

// CheckoutStateService moves checkout payment methods between states.
type CheckoutStateService interface {
	// MarkDeclined records a Declined state and moves the order to
	// payment-declined. It returns domain.ErrInvalidOrderStatus when the order
	// cannot make that move; the state is still recorded.
	MarkDeclined(ctx context.Context, tx pgx.Tx, order *domain.Order, session CheckoutSession, amount decimal.Decimal) error
	MarkComplete(ctx context.Context, tx pgx.Tx, order *domain.Order, session CheckoutSession, state *domain.PaymentState) error
}

// CheckoutService builds the signed form the browser posts to the gateway.
type CheckoutService interface {
	StartSecureAcceptance(ctx context.Context, req CheckoutRequest) (*domain.PaymentState, error)
}

// CheckoutRequest holds validated input for a Secure Acceptance form.
type CheckoutRequest struct {
	OrderNumber  string
	Host         string
	Session      CheckoutSession
	Amount       *decimal.Decimal // nil = order total
	PaymentToken string           // set to authorize a stored token instead of creating one
	// MerchantData is unvalidated input keyed merchant_defined_data<N>.
	MerchantData map[string]string
}

// FormReply is an inbound Secure Acceptance form post.
type FormReply struct {
	Host    string
	Payload map[string]string
	UserID  *string
	// Session carries request-side details (client IP, fingerprint id). The
	// session id itself is recovered from the signed payload.
	Session CheckoutSession
}

// ReplyService processes inbound gateway replies.
type ReplyService interface {
	HandleFormReply(ctx context.Context, reply FormReply) (*domain.ReplyOutcome, error)
	HandleSOAPToken(ctx context.Context, orderNumber string, session CheckoutSession, encryptedPayment string) (*domain.PaymentToken, error)
}

// DecisionManagerService applies Decision Manager review notifications.
type DecisionManagerService interface {
	CheckKey(key string) error
	HandleNotification(ctx context.Context, content []byte) (int, error)
}

// DecisionNotifier forwards decision updates to downstream services.
type DecisionNotifier interface {
	Notify(ctx context.Context, update *domain.DecisionUpdate) error
}

// AuthService authenticates back-office users.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// AuditService records audit entries without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
