package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMissingSignedFields is returned by Verify when the payload does not say
// which fields were signed.
var ErrMissingSignedFields = errors.New("payload has no signed_field_names")

// HMACSignatureService implements ports.SignatureService for Secure Acceptance.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 over the canonical message of the named fields
// and returns it base64 encoded. Field order matters.
func (s *HMACSignatureService) Sign(secretKey string, fields map[string]string, signedFieldNames []string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(CanonicalMessage(fields, signedFieldNames)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify re-signs the fields the payload declares as signed and compares the
// result with payload["signature"] in constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload map[string]string) (bool, error) {
	raw := payload["signed_field_names"]
	if raw == "" {
		return false, ErrMissingSignedFields
	}
	expected := s.Sign(secretKey, payload, strings.Split(raw, ","))
	return hmac.Equal([]byte(expected), []byte(payload["signature"])), nil
}

// CanonicalMessage joins name=value pairs with commas. Missing fields sign as empty.
func CanonicalMessage(fields map[string]string, names []string) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
	}
	return b.String()
}
