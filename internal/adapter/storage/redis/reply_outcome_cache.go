package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReplyOutcomeCache keeps the serialized outcome of each processed gateway
// reply, keyed by the reply's transaction id. A redelivered callback finds
// its outcome here and never reaches the ledger.
type ReplyOutcomeCache struct {
	client goredis.UniversalClient
}

func NewReplyOutcomeCache(client goredis.UniversalClient) *ReplyOutcomeCache {
	return &ReplyOutcomeCache{client: client}
}

// Get returns nil, nil on a miss.
func (c *ReplyOutcomeCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reply outcome %s: %w", key, err)
	}
	return raw, nil
}

// Set stores the outcome unless one is already recorded; the first outcome
// for a reply is authoritative.
func (c *ReplyOutcomeCache) Set(ctx context.Context, key string, outcome []byte, ttl time.Duration) error {
	if len(outcome) == 0 {
		return fmt.Errorf("store reply outcome %s: empty outcome", key)
	}
	if err := c.client.SetNX(ctx, keyPrefix+key, outcome, ttl).Err(); err != nil {
		return fmt.Errorf("store reply outcome %s: %w", key, err)
	}
	return nil
}
