package handler

import (
	"context"
	"net/http"
	"time"

	"secure-acceptance-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthProbeTimeout = 3 * time.Second

type dependencyStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthCheck handles GET /health. Dependencies are probed concurrently and
// any failure answers 503 with the gateway marked degraded.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		results := make([]dependencyStatus, len(checkers))
		var g errgroup.Group
		for i, checker := range checkers {
			g.Go(func() error {
				start := time.Now()
				err := checker.Ping(ctx)
				results[i] = dependencyStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
				if err != nil {
					results[i].Status, results[i].Error = "unhealthy", err.Error()
				}
				return nil
			})
		}
		_ = g.Wait()

		deps := make(map[string]dependencyStatus, len(checkers))
		status, code := "healthy", http.StatusOK
		for i, checker := range checkers {
			deps[checker.Name()] = results[i]
			if results[i].Error != "" {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": status, "dependencies": deps})
	}
}
