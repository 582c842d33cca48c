package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MerchantProfile holds a Secure Acceptance credential set.
// At most one profile is flagged as the default.
type MerchantProfile struct {
	ID           uuid.UUID `json:"id"`
	Hostname     string    `json:"hostname"` // matched case-insensitively, empty for the default
	ProfileID    string    `json:"profile_id"`
	AccessKey    string    `json:"access_key"`
	SecretKeyEnc string    `json:"-"` // AES-256-GCM ciphertext
	SecretKey    string    `json:"-"` // plaintext, populated after decryption only
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *MerchantProfile) String() string {
	return fmt.Sprintf("Secure Acceptance Profile hostname=%s, profile_id=%s", p.Hostname, p.ProfileID)
}

// ErrProfileConflict is returned by storage when a hostname or profile id is taken.
var ErrProfileConflict = errors.New("profile hostname or profile id already exists")
