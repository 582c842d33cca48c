package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UUIDReservations records every transaction_uuid the request builder has
// signed, so a value is never handed to the gateway twice within its window.
type UUIDReservations struct {
	client goredis.UniversalClient
}

func NewUUIDReservations(client goredis.UniversalClient) *UUIDReservations {
	return &UUIDReservations{client: client}
}

func (r *UUIDReservations) key(scope, value string) string {
	return keyPrefix + "reserved:" + scope + ":" + value
}

// CheckAndSet reserves value within scope. It reports false when the value
// was already reserved and the reservation has not expired.
func (r *UUIDReservations) CheckAndSet(ctx context.Context, scope, value string, ttl time.Duration) (bool, error) {
	if value == "" {
		return false, fmt.Errorf("reserve %s: empty value", scope)
	}
	fresh, err := r.client.SetNX(ctx, r.key(scope, value), time.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve %s: %w", scope, err)
	}
	return fresh, nil
}
