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

func newReservations(t *testing.T) (*miniredis.Miniredis, *UUIDReservations) {
	t.Helper()
	s := miniredis.RunT(t)
	return s, NewUUIDReservations(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
}

func TestUUIDReservations_CheckAndSet(t *testing.T) {
	s, res := newReservations(t)
	ctx := context.Background()
	id := "8c4f2d0e-9a1b-4c3d-8e7f-6a5b4c3d2e1f"

	ok, err := res.CheckAndSet(ctx, "transaction_uuid", id, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Exists("sag:reserved:transaction_uuid:"+id))

	ok, err = res.CheckAndSet(ctx, "transaction_uuid", id, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must be refused")

	stamp, err := s.Get("sag:reserved:transaction_uuid:" + id)
	require.NoError(t, err)
	assert.NotEmpty(t, stamp)
}

func TestUUIDReservations_ScopesAreIndependent(t *testing.T) {
	_, res := newReservations(t)
	ctx := context.Background()

	ok1, err := res.CheckAndSet(ctx, "transaction_uuid", "n-1", time.Minute)
	require.NoError(t, err)
	ok2, err := res.CheckAndSet(ctx, "reference_number", "n-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok1)
	assert.True(t, ok2)
}

func TestUUIDReservations_Expiry(t *testing.T) {
	s, res := newReservations(t)
	ctx := context.Background()

	ok, err := res.CheckAndSet(ctx, "transaction_uuid", "n-2", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Second)

	assert.False(t, s.Exists("sag:reserved:transaction_uuid:n-2"))

	ok, err = res.CheckAndSet(ctx, "transaction_uuid", "n-2", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUUIDReservations_Errors(t *testing.T) {
	s, res := newReservations(t)

	_, err := res.CheckAndSet(context.Background(), "transaction_uuid", "", time.Minute)
	assert.ErrorContains(t, err, "empty value")

	s.Close()
	ok, err := res.CheckAndSet(context.Background(), "transaction_uuid", "n-3", time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}
