package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the checkout-side state of one payment method.
type PaymentStatus string

const (
	PaymentStatusFormPostRequired PaymentStatus = "Form Post Required"
	PaymentStatusComplete         PaymentStatus = "Complete"
	PaymentStatusDeclined         PaymentStatus = "Declined"
)

// FormField is one input of a form the browser must post to the gateway.
type FormField struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Editable bool   `json:"editable"`
}

// PaymentState is what the checkout knows about a payment method of a session.
type PaymentState struct {
	Status   PaymentStatus   `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	SourceID *uuid.UUID      `json:"source_id,omitempty"`
	URL      string          `json:"url,omitempty"`
	Fields   []FormField     `json:"fields,omitempty"`
}

// Complete is the state after funds were allocated.
func Complete(amount decimal.Decimal, sourceID uuid.UUID) *PaymentState {
	return &PaymentState{Status: PaymentStatusComplete, Amount: amount, SourceID: &sourceID}
}

// Declined is the state after the gateway refused the payment.
func Declined(amount decimal.Decimal, sourceID *uuid.UUID) *PaymentState {
	return &PaymentState{Status: PaymentStatusDeclined, Amount: amount, SourceID: sourceID}
}

// FormPostRequired asks the browser to post fields to url.
func FormPostRequired(amount decimal.Decimal, url string, fields []FormField) *PaymentState {
	return &PaymentState{Status: PaymentStatusFormPostRequired, Amount: amount, URL: url, Fields: fields}
}
