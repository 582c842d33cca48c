package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReplyType tells which channel a gateway reply arrived through.
type ReplyType string

const (
	ReplyTypeSA   ReplyType = "SA"
	ReplyTypeSOAP ReplyType = "SOAP"
)

// Gateway transaction types carried in req_transaction_type.
const (
	TxnTypeCreateToken     = "create_payment_token"
	TxnTypeAuthorization   = "authorization"
	TxnTypeAuthCreateToken = "authorization,create_payment_token"
	TxnTypeCapture         = "capture"
)

// SignedDateTimeLayout is the gateway's timestamp format.
const SignedDateTimeLayout = "2006-01-02T15:04:05Z"

// ReplyRecord is the append-only log of a gateway reply.
// Data holds every field as received (flattened for SOAP replies).
type ReplyRecord struct {
	ID        uuid.UUID         `json:"id"`
	UserID    *string           `json:"user_id,omitempty"`
	OrderID   *uuid.UUID        `json:"order_id,omitempty"`
	ReplyType ReplyType         `json:"reply_type"`
	Data      map[string]string `json:"data"`

	AuthAvsCode                string `json:"auth_avs_code"`
	AuthCode                   string `json:"auth_code"`
	AuthResponse               string `json:"auth_response"`
	AuthTransRefNo             string `json:"auth_trans_ref_no"`
	Decision                   string `json:"decision"`
	Message                    string `json:"message"`
	ReasonCode                 *int   `json:"reason_code,omitempty"`
	ReqBillToAddressPostalCode string `json:"req_bill_to_address_postal_code"`
	ReqBillToForename          string `json:"req_bill_to_forename"`
	ReqBillToSurname           string `json:"req_bill_to_surname"`
	ReqCardExpiryDate          string `json:"req_card_expiry_date"`
	ReqReferenceNumber         string `json:"req_reference_number"`
	ReqTransactionType         string `json:"req_transaction_type"`
	ReqTransactionUUID         string `json:"req_transaction_uuid"`
	RequestToken               string `json:"request_token"`
	TransactionID              string `json:"transaction_id"`

	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// NewFormReplyRecord builds a Secure Acceptance reply record from a verified payload.
func NewFormReplyRecord(data map[string]string) *ReplyRecord {
	return &ReplyRecord{
		ReplyType:                  ReplyTypeSA,
		Data:                       data,
		AuthAvsCode:                data["auth_avs_code"],
		AuthCode:                   data["auth_code"],
		AuthResponse:               data["auth_response"],
		AuthTransRefNo:             data["auth_trans_ref_no"],
		Decision:                   data["decision"],
		Message:                    data["message"],
		ReasonCode:                 ParseReasonCode(data["reason_code"]),
		ReqBillToAddressPostalCode: data["req_bill_to_address_postal_code"],
		ReqBillToForename:          data["req_bill_to_forename"],
		ReqBillToSurname:           data["req_bill_to_surname"],
		ReqCardExpiryDate:          data["req_card_expiry_date"],
		ReqReferenceNumber:         data["req_reference_number"],
		ReqTransactionType:         data["req_transaction_type"],
		ReqTransactionUUID:         data["req_transaction_uuid"],
		RequestToken:               data["request_token"],
		TransactionID:              data["transaction_id"],
	}
}

// ParseReasonCode returns nil when raw is not an integer.
func ParseReasonCode(raw string) *int {
	code, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &code
}

// Classify returns the gateway decision for this reply.
func (r *ReplyRecord) Classify() Decision {
	if r == nil {
		return DecisionError
	}
	return Classify(r.ReasonCode, r.Decision)
}

// SignedDateTime returns the gateway's signed timestamp, falling back to the
// time the record was created.
func (r *ReplyRecord) SignedDateTime() time.Time {
	if raw, ok := r.Data["signed_date_time"]; ok {
		if ts, err := time.Parse(SignedDateTimeLayout, raw); err == nil {
			return ts
		}
	}
	return r.DateCreated
}
