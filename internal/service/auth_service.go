package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// AdminCredentials is the single back-office account.
type AdminCredentials struct {
	Username     string
	PasswordHash string // argon2id, see the hash-password command
}

// AuthServiceImpl implements ports.AuthService against configured credentials.
type AuthServiceImpl struct {
	creds    AdminCredentials
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(creds AdminCredentials, hashSvc ports.HashService, tokenSvc ports.TokenService, log zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		creds:    creds,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Login verifies the admin password and issues a JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.creds.PasswordHash == "" {
		s.log.Warn().Msg("admin login attempted but no password hash is configured")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	// Always run the hash so a wrong username costs the same as a wrong password.
	match, err := s.hashSvc.Verify(password, s.creds.PasswordHash)
	if err != nil {
		if errors.Is(err, ErrInvalidHash) {
			s.log.Error().Err(err).Msg("configured admin password hash is malformed")
			return "", time.Time{}, apperror.ErrInvalidCredentials()
		}
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	if !match || !userOK {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(s.creds.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiresAt, nil
}
