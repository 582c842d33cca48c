package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitStore(t *testing.T, now time.Time) (*miniredis.Miniredis, *RateLimitStore, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRateLimitStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	clock := now
	store.now = func() time.Time { return clock }
	return mr, store, &clock
}

func TestRateLimitStore_Allow(t *testing.T) {
	windowStart := time.Date(2016, 8, 24, 16, 28, 0, 0, time.UTC)
	mr, store, clock := newRateLimitStore(t, windowStart.Add(15*time.Second))
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		q, err := store.Allow(ctx, "203.0.113.7:reply", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, q.Allowed, "request %d", i)
		assert.Equal(t, 3-i, q.Remaining)
		assert.Equal(t, windowStart.Add(time.Minute), q.ResetAt)
	}

	q, err := store.Allow(ctx, "203.0.113.7:reply", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, q.Allowed)
	assert.Equal(t, int64(0), q.Remaining)
	assert.Equal(t, 45*time.Second, q.RetryAfter(*clock))

	key := "sag:ratelimit:203.0.113.7:reply:1472056080"
	require.True(t, mr.Exists(key))
	assert.Equal(t, 61*time.Second, mr.TTL(key))

	q, err = store.Allow(ctx, "203.0.113.8:reply", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), q.Remaining, "callers are counted separately")

	*clock = windowStart.Add(time.Minute)
	q, err = store.Allow(ctx, "203.0.113.7:reply", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, q.Allowed, "next window starts a fresh count")
}

func TestQuota_RetryAfterFloor(t *testing.T) {
	reset := time.Date(2016, 8, 24, 16, 29, 0, 0, time.UTC)
	q := Quota{ResetAt: reset}

	assert.Equal(t, time.Second, q.RetryAfter(reset))
	assert.Equal(t, time.Second, q.RetryAfter(reset.Add(time.Hour)))
}

func TestRateLimitStore_Unavailable(t *testing.T) {
	mr, store, _ := newRateLimitStore(t, time.Now())
	mr.Close()

	_, err := store.Allow(context.Background(), "k", 1, time.Minute)
	assert.ErrorContains(t, err, "count request for k")
}
