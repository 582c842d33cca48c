package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultPaymentStateTTL matches a storefront checkout session lifetime.
const DefaultPaymentStateTTL = 24 * time.Hour

// PaymentStateStore implements ports.PaymentStateStore as JSON values keyed
// by checkout session and payment method.
type PaymentStateStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewPaymentStateStore creates a store whose entries expire after ttl.
// A non-positive ttl uses DefaultPaymentStateTTL.
func NewPaymentStateStore(client goredis.UniversalClient, ttl time.Duration) *PaymentStateStore {
	if ttl <= 0 {
		ttl = DefaultPaymentStateTTL
	}
	return &PaymentStateStore{client: client, ttl: ttl}
}

// Get returns nil, nil when no state is stored.
func (s *PaymentStateStore) Get(ctx context.Context, sessionID, methodKey string) (*domain.PaymentState, error) {
	raw, err := s.client.Get(ctx, keyPrefix+domain.BuildPaymentStateKey(sessionID, methodKey)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis payment state get: %w", err)
	}
	var state domain.PaymentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode payment state: %w", err)
	}
	return &state, nil
}

// Set replaces the state and refreshes its expiry.
func (s *PaymentStateStore) Set(ctx context.Context, sessionID, methodKey string, state *domain.PaymentState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode payment state: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+domain.BuildPaymentStateKey(sessionID, methodKey), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis payment state set: %w", err)
	}
	return nil
}
