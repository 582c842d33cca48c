package handler

import (
	"net/http"

	"secure-acceptance-gateway/internal/adapter/http/middleware"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

const fingerprintCookieMaxAge = 24 * 60 * 60

// FingerprintURLs builds device fingerprint redirect targets.
type FingerprintURLs interface {
	Supports(urlType string) bool
	URL(urlType, sessionID string) (string, error)
	NewSessionID() string
}

// GatewayHandler serves the endpoints the processor and the shopper's browser
// call directly: form replies, Decision Manager notifications and the
// fingerprint redirects.
type GatewayHandler struct {
	replies     ports.ReplyService
	decisions   ports.DecisionManagerService
	fingerprint FingerprintURLs
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(replies ports.ReplyService, decisions ports.DecisionManagerService, fingerprint FingerprintURLs) *GatewayHandler {
	return &GatewayHandler{replies: replies, decisions: decisions, fingerprint: fingerprint}
}

// Reply handles POST /cybersource/reply, the Secure Acceptance form post.
// The browser is redirected to the storefront's success or failure page.
func (h *GatewayHandler) Reply(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Error(c, apperror.Validation("malformed form body"))
		return
	}
	payload := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			payload[k] = v[0]
		}
	}

	fpSession, _ := c.Cookie(middleware.CookieFingerprintSession)
	out, err := h.replies.HandleFormReply(c.Request.Context(), ports.FormReply{
		Host:    c.Request.Host,
		Payload: payload,
		Session: ports.CheckoutSession{
			ClientIP:             c.ClientIP(),
			FingerprintSessionID: fpSession,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, out.RedirectURL)
}

// DecisionManagerNotification handles POST /cybersource/decision-manager-review-notification.
// The report XML arrives in the "content" form field.
func (h *GatewayHandler) DecisionManagerNotification(c *gin.Context) {
	if err := h.decisions.CheckKey(c.Query("key")); err != nil {
		response.Error(c, err)
		return
	}
	content := c.PostForm("content")
	if content == "" {
		response.Error(c, apperror.Validation("content is required"))
		return
	}

	applied, err := h.decisions.HandleNotification(c.Request.Context(), []byte(content))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"applied": applied})
}

// Fingerprint handles GET /cybersource/fingerprint/:url_type.
func (h *GatewayHandler) Fingerprint(c *gin.Context) {
	urlType := c.Param("url_type")
	if !h.fingerprint.Supports(urlType) {
		response.Error(c, apperror.ErrNotFound("url_type"))
		return
	}

	sessionID, err := c.Cookie(middleware.CookieFingerprintSession)
	if err != nil || sessionID == "" {
		sessionID = h.fingerprint.NewSessionID()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CookieFingerprintSession, sessionID, fingerprintCookieMaxAge, "/", "", c.Request.TLS != nil, true)
	}

	target, err := h.fingerprint.URL(urlType, sessionID)
	if err != nil {
		response.Error(c, apperror.ErrNotFound("url_type"))
		return
	}
	c.Redirect(http.StatusFound, target)
}
