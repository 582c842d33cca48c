package dto

import (
	"github.com/shopspring/decimal"
)

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required" sanitize:"-"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateProfileRequest is the request body for a new Secure Acceptance profile.
type CreateProfileRequest struct {
	Hostname  string `json:"hostname" binding:"hostname_or_empty,max=100"`
	ProfileID string `json:"profile_id" binding:"required,safe_id,max=50"`
	AccessKey string `json:"access_key" binding:"required,max=50"`
	SecretKey string `json:"secret_key" binding:"required,max=1000" sanitize:"-"`
	IsDefault bool   `json:"is_default"`
}

// ProfileResponse never carries the secret key.
type ProfileResponse struct {
	ID        string `json:"id"`
	Hostname  string `json:"hostname"`
	ProfileID string `json:"profile_id"`
	AccessKey string `json:"access_key"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// CheckoutRequest starts a Secure Acceptance payment for an order.
type CheckoutRequest struct {
	Amount       *decimal.Decimal  `json:"amount,omitempty"`
	MethodKey    string            `json:"method_key" binding:"omitempty,safe_id,max=64"`
	PaymentToken string            `json:"payment_token" binding:"omitempty,safe_id,max=64"`
	MerchantData map[string]string `json:"merchant_defined_data,omitempty" binding:"omitempty,max=100,dive,keys,merchant_data_key,endkeys,max=100" sanitize:"-"`
}

// SOAPTokenRequest vaults an encrypted card blob over SOAP.
type SOAPTokenRequest struct {
	EncryptedPayment string `json:"encrypted_payment" binding:"required,max=8192" sanitize:"-"`
	MethodKey        string `json:"method_key" binding:"omitempty,safe_id,max=64"`
}

// CaptureRequest captures part or all of an authorization.
type CaptureRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransactionResponse is a ledger entry.
type TransactionResponse struct {
	ID              string  `json:"id"`
	TxnType         string  `json:"txn_type"`
	Amount          string  `json:"amount"`
	Status          string  `json:"status"`
	Reference       string  `json:"reference"`
	ProcessedAt     string  `json:"processed_datetime"`
	AuthorizationID *string `json:"authorization_id,omitempty"`
	TokenID         *string `json:"token_id,omitempty"`
}

// TokenResponse is a payment token with its derived display fields.
type TokenResponse struct {
	ID               string `json:"id"`
	MaskedCardNumber string `json:"masked_card_number"`
	CardType         string `json:"card_type"`
	CardTypeName     string `json:"card_type_name"`
	CardLast4        string `json:"card_last4"`
	CardHolder       string `json:"card_holder"`
	BillingZipCode   string `json:"billing_zip_code"`
	ExpiryMonth      string `json:"expiry_month"`
	ExpiryYear       string `json:"expiry_year"`
}
