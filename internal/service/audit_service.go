package service

import (
	"context"
	"sync"
	"time"

	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	auditQueueSize    = 256
	auditWriteTimeout = 5 * time.Second
)

// AuditTrail writes audit entries to the log at once and to the repository
// from a single background writer. Log never blocks: when the queue is full
// the entry is kept in the log stream only.
type AuditTrail struct {
	repo ports.AuditRepository
	log  zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan *domain.AuditLog
	done   chan struct{}
}

// NewAuditService starts the writer. A nil repo keeps entries in the log only.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditTrail {
	t := &AuditTrail{
		repo:  repo,
		log:   log,
		queue: make(chan *domain.AuditLog, auditQueueSize),
		done:  make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *AuditTrail) Log(_ context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	t.log.Info().
		Str("audit_id", entry.ID.String()).
		Str("actor", entry.Actor).
		Str("action", string(entry.Action)).
		Str("resource_type", entry.ResourceType).
		Str("resource_id", entry.ResourceID).
		Str("ip", entry.IPAddress).
		Msg("audit")

	if t.repo == nil {
		return
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		t.drop(entry, "audit trail closed")
		return
	}
	select {
	case t.queue <- entry:
	default:
		t.drop(entry, "audit queue full")
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (t *AuditTrail) Close(ctx context.Context) error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *AuditTrail) run() {
	defer close(t.done)
	for entry := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := t.repo.Create(ctx, entry); err != nil {
			t.log.Warn().Err(err).Str("audit_id", entry.ID.String()).Str("action", string(entry.Action)).
				Msg("failed to persist audit log")
		}
		cancel()
	}
}

func (t *AuditTrail) drop(entry *domain.AuditLog, reason string) {
	metrics.RecordAuditDropped()
	t.log.Warn().Str("audit_id", entry.ID.String()).Str("action", string(entry.Action)).Msg(reason)
}
