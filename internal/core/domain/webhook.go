package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus represents the state of an outbound notification.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// DecisionUpdate is emitted after Decision Manager changes a transaction.
type DecisionUpdate struct {
	OrderNumber   string    `json:"order_number"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Reference     string    `json:"reference"`
	OldDecision   Decision  `json:"old_decision,omitempty"`
	NewDecision   Decision  `json:"new_decision,omitempty"`
	Reviewer      string    `json:"reviewer,omitempty"`
	Comments      string    `json:"comments,omitempty"`
	NotesAdded    int       `json:"notes_added"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NotificationDelivery records each delivery attempt of a decision update.
type NotificationDelivery struct {
	ID            uuid.UUID      `json:"id"`
	TransactionID uuid.UUID      `json:"transaction_id"`
	TargetURL     string         `json:"target_url"`
	Payload       string         `json:"payload"` // JSON string
	HTTPStatus    *int           `json:"http_status"`
	Attempt       int            `json:"attempt"`
	Status        DeliveryStatus `json:"status"`
	NextRetryAt   *time.Time     `json:"next_retry_at"`
	LastError     *string        `json:"last_error"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
