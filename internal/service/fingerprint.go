package service

import (
	"errors"
	"fmt"

	"secure-acceptance-gateway/config"

	"github.com/google/uuid"
)

// ErrUnknownFingerprintType is returned for a url type with no template.
var ErrUnknownFingerprintType = errors.New("url_type not found")

// Device fingerprint resource templates: protocol, host, org id, merchant id, session id.
var fingerprintURLs = map[string]string{
	"img-1": "%s://%s/fp/clear.png?org_id=%s&session_id=%s%s&m=1",
	"img-2": "%s://%s/fp/clear.png?org_id=%s&session_id=%s%s&m=2",
	"flash": "%s://%s/fp/fp.swf?org_id=%s&session_id=%s%s",
	"js":    "%s://%s/fp/check.js?org_id=%s&session_id=%s%s",
}

// Fingerprint builds the redirect targets of the device fingerprint tags.
type Fingerprint struct {
	cfg *config.Holder
}

// NewFingerprint creates a new Fingerprint.
func NewFingerprint(cfg *config.Holder) *Fingerprint {
	return &Fingerprint{cfg: cfg}
}

// Supports reports whether urlType names a fingerprint resource.
func (f *Fingerprint) Supports(urlType string) bool {
	_, ok := fingerprintURLs[urlType]
	return ok
}

// URL returns the fingerprint host URL for urlType and a checkout's
// fingerprint session id.
func (f *Fingerprint) URL(urlType, sessionID string) (string, error) {
	tmpl, ok := fingerprintURLs[urlType]
	if !ok {
		return "", ErrUnknownFingerprintType
	}
	cs := f.cfg.Current().Cybersource
	return fmt.Sprintf(tmpl, cs.FingerprintProtocol, cs.FingerprintHost, cs.OrgID, cs.MerchantID, sessionID), nil
}

// NewSessionID returns a time-based fingerprint session id.
func (f *Fingerprint) NewSessionID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
