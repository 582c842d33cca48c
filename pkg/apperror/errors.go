package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError carrying the same code, so callers can test
// errors.Is(err, apperror.ErrCaptureExceedsRemaining()).
func (e *AppError) Is(target error) bool {
	var t *AppError
	return errors.As(target, &t) && t.Code == e.Code
}

// CodeOf returns the code of the first *AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusBadRequest)
}

func ErrMissingSignedFields() *AppError {
	return New("SEC_005", "Payload does not declare signed_field_names", http.StatusBadRequest)
}

func ErrInvalidDecisionManagerKey() *AppError {
	return New("SEC_006", "Invalid decision manager key", http.StatusForbidden)
}

// ---- Configuration (CFG) ----

func ErrProfileNotFound() *AppError {
	return New("CFG_001", "No Secure Acceptance profile is configured", http.StatusInternalServerError)
}

// ---- Payment Business Logic (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Invalid amount", http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrOrderNotFound is raised when a gateway reply references an unknown order.
// It is a client error on the reply endpoint, not a 404.
func ErrOrderNotFound(number string) *AppError {
	return New("PAY_004", fmt.Sprintf("order %s not found", number), http.StatusBadRequest)
}

func ErrUnrecognizedTransactionType(txnType string) *AppError {
	return New("PAY_010", fmt.Sprintf("unrecognized transaction type %q", txnType), http.StatusBadRequest)
}

func ErrOrderMismatch() *AppError {
	return New("PAY_011", "Reply does not match the checkout session", http.StatusBadRequest)
}

// ErrCaptureNotAllowed carries the failing capture precondition as its message.
func ErrCaptureNotAllowed(err error) *AppError {
	return Wrap("PAY_012", err.Error(), http.StatusUnprocessableEntity, err)
}

func ErrCaptureExceedsRemaining() *AppError {
	return New("PAY_013", "Capture amount can not be greater than the amount of the source authorization", http.StatusUnprocessableEntity)
}

func ErrPaymentTokenMissing() *AppError {
	return New("PAY_014", "Payment token no longer exists", http.StatusUnprocessableEntity)
}

func ErrTokenNotCreated() *AppError {
	return New("PAY_015", "Payment token was not created", http.StatusUnprocessableEntity)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrProfileExists() *AppError {
	return New("AUTH_002", "Profile already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Request (REQ) ----

func ErrPayloadTooLarge(limit int64) *AppError {
	return New("REQ_001", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
