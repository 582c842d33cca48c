package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Quota is what remains of a caller's allowance in the current window.
type Quota struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter is the wait until the window resets, at least one second.
func (q Quota) RetryAfter(now time.Time) time.Duration {
	if d := q.ResetAt.Sub(now).Round(time.Second); d >= time.Second {
		return d
	}
	return time.Second
}

// RateLimitStore counts requests in fixed windows aligned to the epoch.
type RateLimitStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewRateLimitStore(client goredis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{client: client, now: time.Now}
}

// Allow counts one request for key. The counter and its expiry are set in a
// single MULTI so a crash between them cannot leave an immortal key.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (Quota, error) {
	now := s.now()
	start := now.Truncate(window)
	counter := keyPrefix + "ratelimit:" + key + ":" + strconv.FormatInt(start.Unix(), 10)

	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, counter)
		pipe.Expire(ctx, counter, window+time.Second)
		return nil
	})
	if err != nil {
		return Quota{}, fmt.Errorf("count request for %s: %w", key, err)
	}

	count := incr.Val()
	return Quota{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   start.Add(window),
	}, nil
}
