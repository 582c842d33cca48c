package handler

import (
	"time"

	"secure-acceptance-gateway/internal/adapter/http/dto"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the authorize and capture ledger to the back office.
type LedgerHandler struct {
	ledger ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// ListOrderTransactions handles GET /api/v1/admin/orders/:number/transactions.
func (h *LedgerHandler) ListOrderTransactions(c *gin.Context) {
	txns, err := h.ledger.ListOrderTransactions(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}
	response.OK(c, items)
}

// Capture handles POST /api/v1/admin/transactions/:id/capture.
func (h *LedgerHandler) Capture(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if !domain.IsPayableAmount(req.Amount) {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	txn, err := h.ledger.Capture(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(txn))
}

// TokenDetails handles GET /api/v1/admin/tokens/:id.
func (h *LedgerHandler) TokenDetails(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	view, err := h.ledger.TokenDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	t, d := view.Token, view.Details
	response.OK(c, dto.TokenResponse{
		ID:               t.ID.String(),
		MaskedCardNumber: t.MaskedCardNumber,
		CardType:         t.CardType,
		CardTypeName:     d.CardTypeName,
		CardLast4:        d.CardLast4,
		CardHolder:       d.CardHolder,
		BillingZipCode:   d.BillingZipCode,
		ExpiryMonth:      d.ExpiryMonth,
		ExpiryYear:       d.ExpiryYear,
	})
}

func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          txn.ID.String(),
		TxnType:     string(txn.TxnType),
		Amount:      txn.Amount.StringFixed(2),
		Status:      string(txn.Status),
		Reference:   txn.Reference,
		ProcessedAt: txn.ProcessedAt.UTC().Format(time.RFC3339),
	}
	if txn.AuthorizationID != nil {
		s := txn.AuthorizationID.String()
		resp.AuthorizationID = &s
	}
	if txn.TokenID != nil {
		s := txn.TokenID.String()
		resp.TokenID = &s
	}
	return resp
}
