package service

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAESKey    = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	retiredAESKey = "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"
)

func TestAESEncryptionService_RejectsBadKeys(t *testing.T) {
	for name, key := range map[string]string{
		"short":   "abcd",
		"not hex": "zz23456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		"16 byte": "0123456789abcdef0123456789abcdef",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewAESEncryptionService(key)
			assert.Error(t, err)
		})
	}

	_, err := NewAESEncryptionService(testAESKey, "abcd")
	assert.ErrorContains(t, err, "previous key 0")
}

func TestAESEncryptionService_SessionIDRoundTrip(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	sessionID := "k3v9x2bq8m7z1w0p4r6t"
	sealed, err := svc.Encrypt(sessionID)
	require.NoError(t, err)
	assert.NotContains(t, sealed, sessionID)

	again, err := svc.Encrypt(sessionID)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "each seal uses a fresh nonce")

	opened, err := svc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, sessionID, opened)
}

func TestAESEncryptionService_RetiredKeyStillDecrypts(t *testing.T) {
	old, err := NewAESEncryptionService(retiredAESKey)
	require.NoError(t, err)
	sealed, err := old.Encrypt("profile-secret")
	require.NoError(t, err)

	rotated, err := NewAESEncryptionService(testAESKey, retiredAESKey)
	require.NoError(t, err)
	opened, err := rotated.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "profile-secret", opened)

	resealed, err := rotated.Encrypt("profile-secret")
	require.NoError(t, err)
	_, err = old.Decrypt(resealed)
	assert.ErrorIs(t, err, ErrCiphertextInvalid, "new values are sealed with the current key only")
}

func TestAESEncryptionService_ForeignValues(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)
	other, err := NewAESEncryptionService(retiredAESKey)
	require.NoError(t, err)

	sealed, err := svc.Encrypt("secret")
	require.NoError(t, err)
	raw, err := hex.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	foreign, err := other.Encrypt("profile-secret")
	require.NoError(t, err)

	for name, value := range map[string]string{
		"tampered":  hex.EncodeToString(raw),
		"other key": foreign,
		"not hex":   "not-hex-at-all!!!",
		"too short": "abcdef",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Decrypt(value)
			assert.ErrorIs(t, err, ErrCiphertextInvalid)
		})
	}
}
