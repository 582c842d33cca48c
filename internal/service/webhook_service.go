package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notifyRetryIntervals are the waits between delivery attempts.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// EventDecisionUpdate is the event type of a decision update notification.
const EventDecisionUpdate = "DECISION_UPDATE"

// SignatureHeader carries the hex HMAC-SHA256 of the request body, keyed by
// the notify secret.
const SignatureHeader = "X-Signature"

// WebhookPayload is the JSON body posted to the notify URL.
type WebhookPayload struct {
	EventType string                 `json:"event_type"`
	Data      *domain.DecisionUpdate `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.DecisionNotifier by posting updates to a
// downstream URL, retrying in the background.
type WebhookNotifier struct {
	repo       ports.NotificationRepository
	httpClient HTTPClient
	cfg        *config.Holder
	log        zerolog.Logger
	intervals  []time.Duration
}

// NewWebhookNotifier creates a new WebhookNotifier. repo may be nil, in which
// case attempts are only logged.
func NewWebhookNotifier(repo ports.NotificationRepository, httpClient HTTPClient, cfg *config.Holder, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		repo:       repo,
		httpClient: httpClient,
		cfg:        cfg,
		log:        log,
		intervals:  notifyRetryIntervals,
	}
}

// Notify records a pending delivery and sends it asynchronously.
func (n *WebhookNotifier) Notify(ctx context.Context, update *domain.DecisionUpdate) error {
	nc := n.cfg.Current().Notify
	if nc.URL == "" {
		n.log.Debug().Str("order", update.OrderNumber).Msg("notify: no URL configured, skipping")
		return nil
	}

	body, err := json.Marshal(WebhookPayload{
		EventType: EventDecisionUpdate,
		Data:      update,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal decision update: %w", err)
	}

	now := time.Now().UTC()
	delivery := &domain.NotificationDelivery{
		ID:            uuid.New(),
		TransactionID: update.TransactionID,
		TargetURL:     nc.URL,
		Payload:       string(body),
		Status:        domain.DeliveryStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if n.repo != nil {
		if err := n.repo.Create(ctx, delivery); err != nil {
			return fmt.Errorf("create notification delivery: %w", err)
		}
	}

	go n.deliverWithRetries(context.WithoutCancel(ctx), delivery, sign(nc.Secret, body))
	return nil
}

// deliverWithRetries posts the payload until a 2xx answer or the retry
// intervals run out. Every attempt is written back to the delivery log.
func (n *WebhookNotifier) deliverWithRetries(ctx context.Context, d *domain.NotificationDelivery, signature string) {
	for attempt := 0; attempt <= len(n.intervals); attempt++ {
		if attempt > 0 {
			time.Sleep(n.intervals[attempt-1])
		}
		d.Attempt = attempt + 1

		status, err := n.post(ctx, d, signature)
		d.HTTPStatus = nil
		if status != 0 {
			d.HTTPStatus = &status
		}
		if err == nil && status >= 200 && status < 300 {
			d.Status = domain.DeliveryStatusDelivered
			d.LastError = nil
			d.NextRetryAt = nil
			n.save(ctx, d)
			n.log.Info().Str("tx_id", d.TransactionID.String()).Int("attempt", d.Attempt).Int("status", status).Msg("notify: delivered")
			return
		}

		msg := fmt.Sprintf("unexpected status %d", status)
		if err != nil {
			msg = err.Error()
		}
		d.LastError = &msg
		if attempt < len(n.intervals) {
			next := time.Now().UTC().Add(n.intervals[attempt])
			d.NextRetryAt = &next
		} else {
			d.Status = domain.DeliveryStatusFailed
			d.NextRetryAt = nil
		}
		n.save(ctx, d)
		n.log.Warn().Str("tx_id", d.TransactionID.String()).Int("attempt", d.Attempt).Str("error", msg).Msg("notify: attempt failed")
	}

	n.log.Error().Str("tx_id", d.TransactionID.String()).Msg("notify: all retry attempts exhausted")
}

func (n *WebhookNotifier) post(ctx context.Context, d *domain.NotificationDelivery, signature string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.TargetURL, bytes.NewReader([]byte(d.Payload)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (n *WebhookNotifier) save(ctx context.Context, d *domain.NotificationDelivery) {
	if n.repo == nil {
		return
	}
	d.UpdatedAt = time.Now().UTC()
	if err := n.repo.Update(ctx, d); err != nil {
		n.log.Error().Err(err).Str("delivery_id", d.ID.String()).Msg("notify: failed to persist attempt")
	}
}

func sign(secret string, body []byte) string {
	if secret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
