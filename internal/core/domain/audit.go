package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionLogin          AuditAction = "LOGIN"
	AuditActionCreateProfile  AuditAction = "CREATE_PROFILE"
	AuditActionSetDefault     AuditAction = "SET_DEFAULT_PROFILE"
	AuditActionDeleteProfile  AuditAction = "DELETE_PROFILE"
	AuditActionCapture        AuditAction = "CAPTURE"
	AuditActionReply          AuditAction = "GATEWAY_REPLY"
	AuditActionDecisionUpdate AuditAction = "DECISION_UPDATE"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
