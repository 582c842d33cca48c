package handler

import (
	"secure-acceptance-gateway/internal/adapter/http/dto"
	"secure-acceptance-gateway/internal/adapter/http/middleware"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles back-office authentication.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/v1/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiry, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetLoginUser(c, req.Username)
	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}
