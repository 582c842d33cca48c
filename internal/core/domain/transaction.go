package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxnType is the ledger entry kind.
type TxnType string

const (
	TxnTypeAuthorise TxnType = "Authorise"
	TxnTypeDebit     TxnType = "Debit"
)

// Transaction is a ledger entry against a payment source. Debit rows link to
// the authorization they capture; Authorise rows never carry AuthorizationID.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	SourceID        uuid.UUID       `json:"source_id"`
	SourceType      string          `json:"source_type"` // joined from the source row
	OrderID         uuid.UUID       `json:"order_id"`    // joined from the source row
	TxnType         TxnType         `json:"txn_type"`
	Amount          decimal.Decimal `json:"amount"`
	Status          Decision        `json:"status"`
	Reference       string          `json:"reference"`
	RequestToken    string          `json:"request_token"`
	ProcessedAt     time.Time       `json:"processed_datetime"`
	TokenID         *uuid.UUID      `json:"token_id,omitempty"`
	AuthorizationID *uuid.UUID      `json:"authorization_id,omitempty"`
	LogID           *uuid.UUID      `json:"log_id,omitempty"`
	CreatedAt       time.Time       `json:"date_created"`
}

// Capture precondition failures. Use errors.Is against these.
var (
	ErrWrongSourceType    = errors.New("wrong source type")
	ErrNotAuthorization   = errors.New("not an authorization")
	ErrNotAccepted        = errors.New("authorization not accepted")
	ErrNoPaymentToken     = errors.New("no payment token")
	ErrAlreadyCaptured    = errors.New("already fully captured")
	ErrDuplicateDelivery  = errors.New("duplicate reply delivery")
	ErrInvalidOrderStatus = errors.New("invalid order status transition")
)

// CaptureCheckError describes why a transaction cannot be captured.
type CaptureCheckError struct {
	Kind   error
	Reason string
}

func (e *CaptureCheckError) Error() string { return e.Reason }
func (e *CaptureCheckError) Unwrap() error { return e.Kind }

func captureCheck(kind error, format string, args ...any) error {
	return &CaptureCheckError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsAcceptedAuthorization checks source type, entry kind and status in that order.
func (t *Transaction) IsAcceptedAuthorization(expectedSourceType string) error {
	if t.SourceType != expectedSourceType {
		return captureCheck(ErrWrongSourceType, "transaction has source %s, expected %s", t.SourceType, expectedSourceType)
	}
	if t.TxnType != TxnTypeAuthorise {
		return captureCheck(ErrNotAuthorization, "transaction has type %s, expected %s", t.TxnType, TxnTypeAuthorise)
	}
	if t.Status != DecisionAccept {
		return captureCheck(ErrNotAccepted, "transaction has status %s, expected %s", t.Status, DecisionAccept)
	}
	return nil
}

// CanBeCaptured reports the first failing capture precondition.
// captured is the sum of accepted debits already linked to t.
func (t *Transaction) CanBeCaptured(expectedSourceType string, captured decimal.Decimal) error {
	if err := t.IsAcceptedAuthorization(expectedSourceType); err != nil {
		return err
	}
	if t.TokenID == nil {
		return captureCheck(ErrNoPaymentToken, "transaction does not have a related payment token")
	}
	if !t.remaining(captured).IsPositive() {
		return captureCheck(ErrAlreadyCaptured, "transaction has already been fully captured")
	}
	return nil
}

// RemainingToCapture is zero for anything but an accepted authorization.
func (t *Transaction) RemainingToCapture(expectedSourceType string, captured decimal.Decimal) decimal.Decimal {
	if t.IsAcceptedAuthorization(expectedSourceType) != nil {
		return decimal.Zero
	}
	return t.remaining(captured)
}

func (t *Transaction) remaining(captured decimal.Decimal) decimal.Decimal {
	r := t.Amount.Sub(captured)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// IsPayableAmount reports whether amount is positive and has no more than
// two decimal places.
func IsPayableAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// Source is the per-order accounting aggregate for one payment source type.
type Source struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	SourceType      string          `json:"source_type"`
	Reference       string          `json:"reference"`
	Currency        string          `json:"currency"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	AmountDebited   decimal.Decimal `json:"amount_debited"`
	AmountRefunded  decimal.Decimal `json:"amount_refunded"`
}
