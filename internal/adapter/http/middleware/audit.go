package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records successful admin writes.
// Routes are matched on their registered pattern.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		actor := c.GetString(CtxAdmin)
		resourceID := c.Param("id")
		if action == domain.AuditActionLogin {
			actor = c.GetString(ctxLoginUser)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actor,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

// ctxLoginUser is set by the login handler so the audit entry names the user
// before a token exists.
const ctxLoginUser = "login_user"

// SetLoginUser records the username of a successful login for auditing.
func SetLoginUser(c *gin.Context, username string) {
	c.Set(ctxLoginUser, username)
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/admin/login" && method == http.MethodPost:
		return domain.AuditActionLogin, "session"
	case route == "/api/v1/admin/profiles" && method == http.MethodPost:
		return domain.AuditActionCreateProfile, "profile"
	case route == "/api/v1/admin/profiles/:id/default" && method == http.MethodPut:
		return domain.AuditActionSetDefault, "profile"
	case route == "/api/v1/admin/profiles/:id" && method == http.MethodDelete:
		return domain.AuditActionDeleteProfile, "profile"
	case route == "/api/v1/admin/transactions/:id/capture" && method == http.MethodPost:
		return domain.AuditActionCapture, "transaction"
	}
	return "", ""
}
