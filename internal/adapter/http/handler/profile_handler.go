package handler

import (
	"time"

	"secure-acceptance-gateway/internal/adapter/http/dto"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler manages Secure Acceptance profiles.
type ProfileHandler struct {
	profiles ports.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// List handles GET /api/v1/admin/profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	list, err := h.profiles.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]dto.ProfileResponse, 0, len(list))
	for i := range list {
		items = append(items, toProfileResponse(&list[i]))
	}
	response.OK(c, items)
}

// Create handles POST /api/v1/admin/profiles.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	p, err := h.profiles.Create(c.Request.Context(), ports.CreateProfileRequest{
		Hostname:  req.Hostname,
		ProfileID: req.ProfileID,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toProfileResponse(p))
}

// SetDefault handles PUT /api/v1/admin/profiles/:id/default.
func (h *ProfileHandler) SetDefault(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.profiles.SetDefault(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "default profile updated"})
}

// Delete handles DELETE /api/v1/admin/profiles/:id.
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "profile deleted"})
}

func toProfileResponse(p *domain.MerchantProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID.String(),
		Hostname:  p.Hostname,
		ProfileID: p.ProfileID,
		AccessKey: p.AccessKey,
		IsDefault: p.IsDefault,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// pathUUID parses the :id parameter, writing a validation error when it is malformed.
func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
