package handler_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Profile Repo ---

type inMemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.MerchantProfile
}

func newInMemoryProfileRepo() *inMemoryProfileRepo {
	return &inMemoryProfileRepo{profiles: make(map[uuid.UUID]domain.MerchantProfile)}
}

func (r *inMemoryProfileRepo) List(ctx context.Context) ([]domain.MerchantProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MerchantProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *inMemoryProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MerchantProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *inMemoryProfileRepo) GetByHostname(ctx context.Context, hostname string) (*domain.MerchantProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.profiles {
		if p.Hostname != "" && strings.EqualFold(p.Hostname, hostname) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *inMemoryProfileRepo) GetDefault(ctx context.Context) (*domain.MerchantProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.profiles {
		if p.IsDefault {
			return &p, nil
		}
	}
	return nil, nil
}

// conflicts mirrors the unique indexes: profile_id, non-empty hostname and at
// most one default. The row with id skip is ignored.
func (r *inMemoryProfileRepo) conflicts(profile *domain.MerchantProfile, skip uuid.UUID) bool {
	for id, p := range r.profiles {
		if id == skip {
			continue
		}
		if p.ProfileID == profile.ProfileID ||
			(p.Hostname != "" && strings.EqualFold(p.Hostname, profile.Hostname)) ||
			(p.IsDefault && profile.IsDefault) {
			return true
		}
	}
	return false
}

func (r *inMemoryProfileRepo) Create(ctx context.Context, tx pgx.Tx, profile *domain.MerchantProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts(profile, uuid.Nil) {
		return domain.ErrProfileConflict
	}
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *inMemoryProfileRepo) UpsertByProfileID(ctx context.Context, tx pgx.Tx, profile *domain.MerchantProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.ProfileID != profile.ProfileID {
			continue
		}
		p.AccessKey = profile.AccessKey
		p.SecretKeyEnc = profile.SecretKeyEnc
		p.IsDefault = profile.IsDefault
		p.UpdatedAt = profile.UpdatedAt
		if r.conflicts(&p, id) {
			return domain.ErrProfileConflict
		}
		r.profiles[id] = p
		profile.ID, profile.Hostname, profile.CreatedAt = p.ID, p.Hostname, p.CreatedAt
		return nil
	}
	if r.conflicts(profile, uuid.Nil) {
		return domain.ErrProfileConflict
	}
	r.profiles[profile.ID] = *profile
	return nil
}

// corrupt replaces the stored secret of the default profile with bytes no
// key can decrypt.
func (r *inMemoryProfileRepo) corrupt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.IsDefault {
			p.SecretKeyEnc = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
			r.profiles[id] = p
		}
	}
}

func (r *inMemoryProfileRepo) defaults() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.profiles {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func (r *inMemoryProfileRepo) ClearDefaults(ctx context.Context, tx pgx.Tx, keep uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if id != keep {
			p.IsDefault = false
			r.profiles[id] = p
		}
	}
	return nil
}

func (r *inMemoryProfileRepo) SetDefault(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return fmt.Errorf("profile %s not found", id)
	}
	p.IsDefault = true
	if r.conflicts(&p, id) {
		return fmt.Errorf("set default profile %s: %w", id, domain.ErrProfileConflict)
	}
	r.profiles[id] = p
	return nil
}

func (r *inMemoryProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

// --- In-Memory Order Repo ---

type inMemoryOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
	notes  []domain.OrderNote
}

func newInMemoryOrderRepo(orders ...domain.Order) *inMemoryOrderRepo {
	r := &inMemoryOrderRepo{orders: make(map[uuid.UUID]domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *inMemoryOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.Number == number {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *inMemoryOrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *inMemoryOrderRepo) AddNote(ctx context.Context, tx pgx.Tx, note *domain.OrderNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *inMemoryOrderRepo) AppendSystemNote(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, prefix, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notes {
		if n.OrderID == orderID && n.NoteType == domain.NoteTypeSystem && strings.HasPrefix(n.Message, prefix) {
			r.notes[i].Message += line
			return nil
		}
	}
	r.notes = append(r.notes, domain.OrderNote{ID: uuid.New(), OrderID: orderID, NoteType: domain.NoteTypeSystem, Message: line})
	return nil
}

func (r *inMemoryOrderRepo) status(number string) domain.OrderStatus {
	o, _ := r.GetByNumber(context.Background(), number)
	if o == nil {
		return ""
	}
	return o.Status
}

func (r *inMemoryOrderRepo) notesFor(orderID uuid.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, n := range r.notes {
		if n.OrderID == orderID {
			out = append(out, n.Message)
		}
	}
	return out
}

// --- In-Memory Reply Repo ---

type inMemoryReplyRepo struct {
	mu      sync.RWMutex
	replies map[uuid.UUID]domain.ReplyRecord
}

func newInMemoryReplyRepo() *inMemoryReplyRepo {
	return &inMemoryReplyRepo{replies: make(map[uuid.UUID]domain.ReplyRecord)}
}

func (r *inMemoryReplyRepo) Create(ctx context.Context, tx pgx.Tx, reply *domain.ReplyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies[reply.ID] = *reply
	return nil
}

func (r *inMemoryReplyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReplyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.replies[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *inMemoryReplyRepo) UpdateCardExpiry(ctx context.Context, tx pgx.Tx, id uuid.UUID, expiry string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.replies[id]
	if !ok {
		return fmt.Errorf("reply %s not found", id)
	}
	rec.ReqCardExpiryDate = expiry
	r.replies[id] = rec
	return nil
}

func (r *inMemoryReplyRepo) Scrub(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.replies {
		if rec.DateCreated.Before(cutoff) && len(rec.Data) > 0 {
			rec.Data = map[string]string{}
			r.replies[id] = rec
			n++
		}
	}
	return n, nil
}

func (r *inMemoryReplyRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.replies)
}

// --- In-Memory Reply Claim Repo ---

// inMemoryClaimRepo behaves like INSERT ... ON CONFLICT DO NOTHING on the
// claims table: a second claimer waits until the first transaction ends, then
// sees the committed row or takes over after a rollback.
type inMemoryClaimRepo struct {
	mu      sync.Mutex
	keys    map[string]*sync.Mutex
	settled map[string]domain.PaymentStatus // committed claims only
}

func newInMemoryClaimRepo() *inMemoryClaimRepo {
	return &inMemoryClaimRepo{keys: make(map[string]*sync.Mutex), settled: make(map[string]domain.PaymentStatus)}
}

func (r *inMemoryClaimRepo) Claim(ctx context.Context, tx pgx.Tx, transactionID string, orderID uuid.UUID) (bool, error) {
	r.mu.Lock()
	m, ok := r.keys[transactionID]
	if !ok {
		m = &sync.Mutex{}
		r.keys[transactionID] = m
	}
	r.mu.Unlock()

	m.Lock()
	r.mu.Lock()
	_, taken := r.settled[transactionID]
	r.mu.Unlock()
	if taken {
		m.Unlock()
		return false, nil
	}

	t, ok := tx.(*inMemoryTx)
	if !ok {
		m.Unlock()
		return false, fmt.Errorf("claim %s outside a transaction", transactionID)
	}
	t.pending(transactionID, "")
	t.onEnd(func(committed bool) {
		if committed {
			r.mu.Lock()
			r.settled[transactionID] = t.claimStatus(transactionID)
			r.mu.Unlock()
		}
		m.Unlock()
	})
	return true, nil
}

func (r *inMemoryClaimRepo) Settle(ctx context.Context, tx pgx.Tx, transactionID string, status domain.PaymentStatus) error {
	t, ok := tx.(*inMemoryTx)
	if !ok || !t.holds(transactionID) {
		return fmt.Errorf("reply claim not found: %s", transactionID)
	}
	t.pending(transactionID, status)
	return nil
}

func (r *inMemoryClaimRepo) Status(ctx context.Context, transactionID string) (domain.PaymentStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settled[transactionID], nil
}

// --- In-Memory Payment Token Repo ---

type inMemoryTokenRepo struct {
	mu     sync.RWMutex
	tokens map[uuid.UUID]domain.PaymentToken
}

func newInMemoryTokenRepo() *inMemoryTokenRepo {
	return &inMemoryTokenRepo{tokens: make(map[uuid.UUID]domain.PaymentToken)}
}

func (r *inMemoryTokenRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, token *domain.PaymentToken) (*domain.PaymentToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token.Token {
			return &t, nil
		}
	}
	r.tokens[token.ID] = *token
	out := *token
	return &out, nil
}

func (r *inMemoryTokenRepo) GetByToken(ctx context.Context, tx pgx.Tx, token string) (*domain.PaymentToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tokens {
		if t.Token == token {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTokenRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu    sync.RWMutex
	txns  map[uuid.UUID]domain.Transaction
	locks *rowLocks
}

func newInMemoryTransactionRepo(locks *rowLocks) *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{txns: make(map[uuid.UUID]domain.Transaction), locks: locks}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.TxnType == domain.TxnTypeAuthorise && txn.Reference != "" {
		for _, t := range r.txns {
			if t.TxnType == domain.TxnTypeAuthorise && t.Reference == txn.Reference {
				return domain.ErrDuplicateDelivery
			}
		}
	}
	r.txns[txn.ID] = *txn
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.txns[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetByIDForUpdate holds the row lock until tx ends.
func (r *inMemoryTransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	r.locks.lock(tx, id)
	return r.GetByID(ctx, id)
}

func (r *inMemoryTransactionRepo) GetByOrderAndReference(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, reference string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.txns {
		if t.OrderID == orderID && t.Reference == reference {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) SumCaptured(ctx context.Context, tx pgx.Tx, authID uuid.UUID) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range r.txns {
		if t.TxnType == domain.TxnTypeDebit && t.Status == domain.DecisionAccept &&
			t.AuthorizationID != nil && *t.AuthorizationID == authID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (r *inMemoryTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	t.Status = status
	r.txns[id] = t
	return nil
}

func (r *inMemoryTransactionRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range r.txns {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- In-Memory Source Repo ---

type inMemorySourceRepo struct {
	mu      sync.Mutex
	sources map[uuid.UUID]domain.Source
}

func newInMemorySourceRepo() *inMemorySourceRepo {
	return &inMemorySourceRepo{sources: make(map[uuid.UUID]domain.Source)}
}

func (r *inMemorySourceRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, source *domain.Source) (*domain.Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sources {
		if s.OrderID == source.OrderID && s.SourceType == source.SourceType {
			return &s, nil
		}
	}
	r.sources[source.ID] = *source
	out := *source
	return &out, nil
}

func (r *inMemorySourceRepo) IncrementAllocated(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sources[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("source %s not found", id)
	}
	s.AmountAllocated = s.AmountAllocated.Add(amount)
	r.sources[id] = s
	return s.AmountAllocated, nil
}

func (r *inMemorySourceRepo) IncrementDebited(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sources[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("source %s not found", id)
	}
	s.AmountDebited = s.AmountDebited.Add(amount)
	r.sources[id] = s
	return s.AmountDebited, nil
}

func (r *inMemorySourceRepo) forOrder(orderID uuid.UUID) *domain.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sources {
		if s.OrderID == orderID {
			return &s
		}
	}
	return nil
}

// --- In-Memory Event and Audit Repos ---

type inMemoryEventRepo struct {
	mu     sync.Mutex
	events []domain.PaymentEvent
}

func (r *inMemoryEventRepo) Create(ctx context.Context, tx pgx.Tx, event *domain.PaymentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *inMemoryEventRepo) count(eventType domain.PaymentEventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.EventType == eventType {
			n++
		}
	}
	return n
}

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- Fake gateway ---

// fakeGateway answers SOAP calls. authReason is the reason code returned for
// authorizations.
type fakeGateway struct {
	authReason string
	seq        atomic.Int64
	authCalls  atomic.Int64

	mu       sync.Mutex
	lastData domain.MerchantData
}

func (g *fakeGateway) id(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.seq.Add(1))
}

func (g *fakeGateway) CreateToken(ctx context.Context, call ports.GatewayCall, encryptedPayment string) (*domain.GatewayReply, error) {
	return &domain.GatewayReply{Fields: map[string]string{
		"decision": "ACCEPT", "reasonCode": "100", "requestID": g.id("token"),
		"paySubscriptionCreateReply.subscriptionID": "9436127363716373201",
	}}, nil
}

func (g *fakeGateway) LookupToken(ctx context.Context, call ports.GatewayCall, token string) (*domain.GatewayReply, error) {
	return &domain.GatewayReply{Fields: map[string]string{
		"decision": "ACCEPT", "reasonCode": "100", "requestID": g.id("lookup"),
		"paySubscriptionRetrieveReply.cardAccountNumber":   "411111XXXXXX1111",
		"paySubscriptionRetrieveReply.cardType":            "001",
		"paySubscriptionRetrieveReply.cardExpirationMonth": "12",
		"paySubscriptionRetrieveReply.cardExpirationYear":  "2030",
	}}, nil
}

func (g *fakeGateway) Authorize(ctx context.Context, call ports.GatewayCall, token string, amount decimal.Decimal) (*domain.GatewayReply, error) {
	g.authCalls.Add(1)
	g.mu.Lock()
	g.lastData = call.MerchantData
	g.mu.Unlock()
	reason := g.authReason
	if reason == "" {
		reason = "100"
	}
	return &domain.GatewayReply{Fields: map[string]string{
		"reasonCode": reason, "requestID": g.id("auth"), "requestToken": "Ahj/7wSR",
		"merchantReferenceCode":          call.Order.Number,
		"ccAuthReply.amount":             amount.StringFixed(2),
		"ccAuthReply.authorizationCode":  "831000",
		"ccAuthReply.authorizedDateTime": "2016-08-24T16:28:33Z",
	}}, nil
}

func (g *fakeGateway) Capture(ctx context.Context, call ports.GatewayCall, token string, amount decimal.Decimal, authRequestID string) (*domain.GatewayReply, error) {
	return &domain.GatewayReply{Fields: map[string]string{
		"decision": "ACCEPT", "reasonCode": "100", "requestID": g.id("capture"),
		"ccCaptureReply.amount":          amount.StringFixed(2),
		"ccCaptureReply.requestDateTime": "2016-08-25T09:00:00Z",
	}}, nil
}

// --- In-Memory Transactor with row locks ---

// rowLocks emulates SELECT ... FOR UPDATE: a row stays locked until the
// transaction that locked it commits or rolls back.
type rowLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newRowLocks() *rowLocks {
	return &rowLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *rowLocks) lock(tx pgx.Tx, id uuid.UUID) {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	if t, ok := tx.(*inMemoryTx); ok {
		t.onEnd(func(bool) { m.Unlock() })
	} else {
		m.Unlock()
	}
}

type inMemoryTransactor struct{}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &inMemoryTx{}, nil
}

// inMemoryTx writes through immediately; ending it releases row locks and
// publishes reply claims when it commits.
type inMemoryTx struct {
	mu       sync.Mutex
	ended    bool
	claims   map[string]domain.PaymentStatus
	releases []func(committed bool)
}

func (t *inMemoryTx) onEnd(fn func(committed bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.releases = append(t.releases, fn)
}

func (t *inMemoryTx) pending(transactionID string, status domain.PaymentStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.claims == nil {
		t.claims = make(map[string]domain.PaymentStatus)
	}
	t.claims[transactionID] = status
}

func (t *inMemoryTx) holds(transactionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.claims[transactionID]
	return ok
}

func (t *inMemoryTx) claimStatus(transactionID string) domain.PaymentStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.claims[transactionID]
}

func (t *inMemoryTx) end(committed bool) {
	t.mu.Lock()
	if t.ended {
		t.mu.Unlock()
		return
	}
	t.ended = true
	releases := t.releases
	t.mu.Unlock()
	for _, fn := range releases {
		fn(committed)
	}
}

func (t *inMemoryTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *inMemoryTx) Commit(ctx context.Context) error          { t.end(true); return nil }
func (t *inMemoryTx) Rollback(ctx context.Context) error        { t.end(false); return nil }
func (t *inMemoryTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *inMemoryTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *inMemoryTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *inMemoryTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *inMemoryTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *inMemoryTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *inMemoryTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *inMemoryTx) Conn() *pgx.Conn { return nil }

var (
	_ ports.ProfileRepository      = (*inMemoryProfileRepo)(nil)
	_ ports.OrderRepository        = (*inMemoryOrderRepo)(nil)
	_ ports.ReplyRepository        = (*inMemoryReplyRepo)(nil)
	_ ports.ReplyClaimRepository   = (*inMemoryClaimRepo)(nil)
	_ ports.PaymentTokenRepository = (*inMemoryTokenRepo)(nil)
	_ ports.TransactionRepository  = (*inMemoryTransactionRepo)(nil)
	_ ports.SourceRepository       = (*inMemorySourceRepo)(nil)
	_ ports.PaymentEventRepository = (*inMemoryEventRepo)(nil)
	_ ports.AuditRepository        = (*inMemoryAuditRepo)(nil)
	_ ports.GatewayClient          = (*fakeGateway)(nil)
	_ ports.DBTransactor           = (*inMemoryTransactor)(nil)
)
