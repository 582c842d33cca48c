package ports

//go:generate mockgen -source=health.go -destination=mocks/mock_health.go -package=mocks

import "context"

// HealthChecker is a backing service reported on GET /health. Name is the
// key it is listed under; a non-nil Ping error marks the gateway degraded.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
