package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Cookies identifying the browser checkout.
	CookieCheckoutSession    = "sag_checkout_session"
	CookieFingerprintSession = "cybersource_fingerprint_session_id"

	checkoutCookieMaxAge = 24 * 60 * 60

	// Context keys
	CtxRequestID       = response.RequestIDKey
	CtxAdmin           = "admin"
	CtxCheckoutSession = "checkout_session"
)

// JWTAuth creates a middleware that validates JWT tokens for admin routes.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) == len("Bearer ") {
			response.Abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(authHeader[len("Bearer "):])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("admin token rejected")
			response.Abort(c, apperror.ErrInvalidToken())
			return
		}

		c.Set(CtxAdmin, claims.Username)
		c.Next()
	}
}

// RequestID propagates or assigns the X-Request-ID of every request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// CheckoutSession makes sure the browser carries a checkout session cookie
// and exposes its value under CtxCheckoutSession.
func CheckoutSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieCheckoutSession)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieCheckoutSession, id, checkoutCookieMaxAge, "/", "", c.Request.TLS != nil, true)
		}
		c.Set(CtxCheckoutSession, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP())
		if err := c.Errors.Last(); err != nil {
			event = event.AnErr("error", err.Err)
			if code := apperror.CodeOf(err.Err); code != "" {
				event = event.Str("error_code", code)
			}
		}
		event.Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Abort(c, apperror.InternalError(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}
