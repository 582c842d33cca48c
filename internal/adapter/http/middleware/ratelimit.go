package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "secure-acceptance-gateway/internal/adapter/storage/redis"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the limits per endpoint group. Gateway
// callbacks get generous limits since they arrive from a small set of hosts.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"reply":            {Limit: 300, Window: time.Minute},
		"decision_manager": {Limit: 120, Window: time.Minute},
		"checkout":         {Limit: 30, Window: time.Minute},
		"fingerprint":      {Limit: 120, Window: time.Minute},
		"admin_login":      {Limit: 10, Window: time.Minute},
		"admin":            {Limit: 60, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		quota, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			// Redis down: serve the request rather than drop gateway callbacks.
			log.Warn().Err(err).Str("group", group).Msg("rate limit unavailable, request allowed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(quota.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(quota.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(quota.ResetAt.Unix(), 10))

		if !quota.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(quota.RetryAfter(time.Now()).Seconds())))
			response.Abort(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// extractIdentifier keys admin traffic by user and everything else by client IP.
func extractIdentifier(c *gin.Context) string {
	if admin := c.GetString(CtxAdmin); admin != "" {
		return "admin:" + admin
	}
	return c.ClientIP()
}
