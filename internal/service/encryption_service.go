package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrCiphertextInvalid means a value was not produced by any configured key.
var ErrCiphertextInvalid = errors.New("ciphertext invalid")

// AESEncryptionService implements ports.EncryptionService using AES-256-GCM.
// It protects profile secret keys at rest and the checkout session id that
// round-trips through the gateway in merchant_secure_data4.
//
// Encrypt always uses the current key. Decrypt also accepts values sealed
// under retired keys, newest first.
type AESEncryptionService struct {
	current cipher.AEAD
	retired []cipher.AEAD
}

// NewAESEncryptionService takes 64-character hex keys (32 bytes decoded).
func NewAESEncryptionService(hexKey string, previous ...string) (*AESEncryptionService, error) {
	current, err := newAEAD(hexKey)
	if err != nil {
		return nil, err
	}
	s := &AESEncryptionService{current: current}
	for i, k := range previous {
		aead, err := newAEAD(k)
		if err != nil {
			return nil, fmt.Errorf("previous key %d: %w", i, err)
		}
		s.retired = append(s.retired, aead)
	}
	return s, nil
}

func newAEAD(hexKey string) (cipher.AEAD, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding AES key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("AES key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// Encrypt returns hex(nonce || ciphertext).
func (s *AESEncryptionService) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.current.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	return hex.EncodeToString(s.current.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

// Decrypt reverses Encrypt under the current or any retired key.
func (s *AESEncryptionService) Decrypt(ciphertextHex string) (string, error) {
	raw, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertextInvalid, err)
	}
	if plaintext, ok := openWith(s.current, raw); ok {
		return plaintext, nil
	}
	for _, aead := range s.retired {
		if plaintext, ok := openWith(aead, raw); ok {
			return plaintext, nil
		}
	}
	return "", fmt.Errorf("%w: no key opens the value", ErrCiphertextInvalid)
}

func openWith(aead cipher.AEAD, raw []byte) (string, bool) {
	n := aead.NonceSize()
	if len(raw) < n+aead.Overhead() {
		return "", false
	}
	plaintext, err := aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
