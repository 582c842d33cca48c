package handler

import (
	"errors"
	"io"

	"secure-acceptance-gateway/internal/adapter/http/dto"
	"secure-acceptance-gateway/internal/adapter/http/middleware"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/internal/service"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler starts payments for the storefront checkout.
type CheckoutHandler struct {
	checkout ports.CheckoutService
	replies  ports.ReplyService
	states   ports.PaymentStateStore
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout ports.CheckoutService, replies ports.ReplyService, states ports.PaymentStateStore) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, replies: replies, states: states}
}

// StartSecureAcceptance handles POST /api/v1/checkout/:number/secure-acceptance.
// The response carries the signed form the browser must post to the gateway.
func (h *CheckoutHandler) StartSecureAcceptance(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	state, err := h.checkout.StartSecureAcceptance(c.Request.Context(), ports.CheckoutRequest{
		OrderNumber:  c.Param("number"),
		Host:         c.Request.Host,
		Session:      checkoutSession(c, req.MethodKey),
		Amount:       req.Amount,
		PaymentToken: req.PaymentToken,
		MerchantData: req.MerchantData,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// CreatePaymentToken handles POST /api/v1/checkout/:number/payment-token, the
// server-to-server tokenization of an encrypted card blob.
func (h *CheckoutHandler) CreatePaymentToken(c *gin.Context) {
	var req dto.SOAPTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, err := h.replies.HandleSOAPToken(c.Request.Context(), c.Param("number"), checkoutSession(c, req.MethodKey), req.EncryptedPayment)
	if err != nil {
		response.Error(c, err)
		return
	}
	if token == nil {
		response.Error(c, apperror.ErrTokenNotCreated())
		return
	}
	response.Created(c, dto.TokenResponse{
		ID:               token.ID.String(),
		MaskedCardNumber: token.MaskedCardNumber,
		CardType:         token.CardType,
		CardTypeName:     domain.CardTypeName(token.CardType),
	})
}

// PaymentState handles GET /api/v1/checkout/payment-states/:method.
func (h *CheckoutHandler) PaymentState(c *gin.Context) {
	state, err := h.states.Get(c.Request.Context(), c.GetString(middleware.CtxCheckoutSession), c.Param("method"))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if state == nil {
		response.Error(c, apperror.ErrNotFound("payment state"))
		return
	}
	response.OK(c, state)
}

func checkoutSession(c *gin.Context, methodKey string) ports.CheckoutSession {
	if methodKey == "" {
		methodKey = service.DefaultMethodKey
	}
	fp, _ := c.Cookie(middleware.CookieFingerprintSession)
	return ports.CheckoutSession{
		SessionID:            c.GetString(middleware.CtxCheckoutSession),
		MethodKey:            methodKey,
		ClientIP:             c.ClientIP(),
		FingerprintSessionID: fp,
	}
}
