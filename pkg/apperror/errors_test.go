package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogue(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrInvalidSignature(), "SEC_002", http.StatusBadRequest},
		{ErrMissingSignedFields(), "SEC_005", http.StatusBadRequest},
		{ErrInvalidDecisionManagerKey(), "SEC_006", http.StatusForbidden},
		{ErrProfileNotFound(), "CFG_001", http.StatusInternalServerError},
		{ErrInvalidAmount(), "PAY_002", http.StatusBadRequest},
		{ErrNotFound("Profile"), "PAY_004", http.StatusNotFound},
		{ErrOrderNotFound("100001"), "PAY_004", http.StatusBadRequest},
		{ErrUnrecognizedTransactionType("sale"), "PAY_010", http.StatusBadRequest},
		{ErrOrderMismatch(), "PAY_011", http.StatusBadRequest},
		{ErrCaptureNotAllowed(errors.New("nope")), "PAY_012", http.StatusUnprocessableEntity},
		{ErrCaptureExceedsRemaining(), "PAY_013", http.StatusUnprocessableEntity},
		{ErrPaymentTokenMissing(), "PAY_014", http.StatusUnprocessableEntity},
		{ErrTokenNotCreated(), "PAY_015", http.StatusUnprocessableEntity},
		{ErrPayloadTooLarge(1 << 20), "REQ_001", http.StatusRequestEntityTooLarge},
		{ErrInvalidCredentials(), "AUTH_001", http.StatusUnauthorized},
		{ErrProfileExists(), "AUTH_002", http.StatusConflict},
		{ErrInvalidToken(), "AUTH_003", http.StatusUnauthorized},
		{ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
		{ErrEncryptionFailure(errors.New("bad key")), "SYS_003", http.StatusInternalServerError},
		{InternalError(errors.New("pg: connection closed")), "SYS_001", http.StatusInternalServerError},
		{Validation("quantity must be positive"), "PAY_002", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.code+" "+tc.err.Message, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.HTTPStatus)
			assert.NotEmpty(t, tc.err.Message)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "[PAY_013] Capture too large",
		New("PAY_013", "Capture too large", http.StatusUnprocessableEntity).Error())
	assert.Equal(t, "[SYS_001] DB error: connection refused",
		Wrap("SYS_001", "DB error", http.StatusInternalServerError, errors.New("connection refused")).Error())
}

func TestAppError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("transaction has already been fully captured")
	err := ErrCaptureNotAllowed(cause)

	assert.Equal(t, cause.Error(), err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, ErrOrderMismatch().Unwrap())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("capture 30.00: %w", ErrCaptureExceedsRemaining())

	assert.ErrorIs(t, wrapped, ErrCaptureExceedsRemaining())
	assert.NotErrorIs(t, wrapped, ErrCaptureNotAllowed(errors.New("x")))
	assert.NotErrorIs(t, errors.New("plain"), ErrCaptureExceedsRemaining())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "SEC_002", CodeOf(fmt.Errorf("verify: %w", ErrInvalidSignature())))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestNotFoundNamesEntity(t *testing.T) {
	assert.Equal(t, "Transaction not found", ErrNotFound("Transaction").Message)
	assert.Equal(t, "order 100001 not found", ErrOrderNotFound("100001").Message)
}
