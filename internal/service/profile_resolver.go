package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ProfileServiceImpl resolves Secure Acceptance credentials and manages the
// stored profiles. It implements ports.ProfileResolver and ports.ProfileService.
type ProfileServiceImpl struct {
	repo       ports.ProfileRepository
	transactor ports.DBTransactor
	encSvc     ports.EncryptionService
	cfg        *config.Holder
	log        zerolog.Logger
}

// NewProfileService creates a new ProfileServiceImpl.
func NewProfileService(
	repo ports.ProfileRepository,
	transactor ports.DBTransactor,
	encSvc ports.EncryptionService,
	cfg *config.Holder,
	log zerolog.Logger,
) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		repo:       repo,
		transactor: transactor,
		encSvc:     encSvc,
		cfg:        cfg,
		log:        log,
	}
}

// GetProfile returns the profile for hostname. Lookup order: exact hostname
// (case-insensitive), the default profile, then a default bootstrapped from
// configuration and saved for next time.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, hostname string) (*domain.MerchantProfile, error) {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname != "" {
		p, err := s.repo.GetByHostname(ctx, hostname)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get profile by hostname: %w", err))
		}
		if s.unlock(p) {
			return p, nil
		}
	}

	p, err := s.repo.GetDefault(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get default profile: %w", err))
	}
	if s.unlock(p) {
		return p, nil
	}

	cs := s.cfg.Current().Cybersource
	if !cs.HasBootstrapProfile() {
		return nil, apperror.ErrProfileNotFound()
	}
	p = &domain.MerchantProfile{
		ProfileID: cs.Profile,
		AccessKey: cs.Access,
		SecretKey: cs.Secret,
		IsDefault: true,
	}
	// An unreadable row may already hold this profile id, so the bootstrap
	// overwrites it instead of colliding with it.
	if err := s.save(ctx, p, s.repo.UpsertByProfileID); err != nil {
		return nil, err
	}
	s.log.Info().Str("profile_id", p.ProfileID).Msg("bootstrapped default secure acceptance profile from configuration")
	return p, nil
}

// unlock decrypts the secret of p in place. Unreadable rows count as a miss.
func (s *ProfileServiceImpl) unlock(p *domain.MerchantProfile) bool {
	if p == nil {
		return false
	}
	secret, err := s.encSvc.Decrypt(p.SecretKeyEnc)
	if err != nil {
		s.log.Warn().Err(err).Str("profile", p.String()).Msg("could not decrypt profile secret")
		return false
	}
	p.SecretKey = secret
	return true
}

// save encrypts the secret and writes p with write. A default profile clears
// the existing defaults first, in the same transaction, since at most one row
// may carry the flag at any time.
func (s *ProfileServiceImpl) save(ctx context.Context, p *domain.MerchantProfile, write func(context.Context, pgx.Tx, *domain.MerchantProfile) error) error {
	enc, err := s.encSvc.Encrypt(p.SecretKey)
	if err != nil {
		return apperror.ErrEncryptionFailure(err)
	}
	now := time.Now().UTC()
	p.ID = uuid.New()
	p.Hostname = strings.ToLower(p.Hostname)
	p.SecretKeyEnc = enc
	p.CreatedAt = now
	p.UpdatedAt = now

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if p.IsDefault {
		if err := s.repo.ClearDefaults(ctx, dbTx, p.ID); err != nil {
			return apperror.InternalError(fmt.Errorf("clear defaults: %w", err))
		}
	}
	if err := write(ctx, dbTx, p); err != nil {
		if errors.Is(err, domain.ErrProfileConflict) {
			return apperror.ErrProfileExists()
		}
		return apperror.InternalError(fmt.Errorf("save profile: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// List returns every stored profile. Secrets are not decrypted.
func (s *ProfileServiceImpl) List(ctx context.Context) ([]domain.MerchantProfile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list profiles: %w", err))
	}
	return profiles, nil
}

// Create stores a new profile.
func (s *ProfileServiceImpl) Create(ctx context.Context, req ports.CreateProfileRequest) (*domain.MerchantProfile, error) {
	if req.ProfileID == "" || req.AccessKey == "" || req.SecretKey == "" {
		return nil, apperror.Validation("profile_id, access_key and secret_key are required")
	}
	p := &domain.MerchantProfile{
		Hostname:  req.Hostname,
		ProfileID: req.ProfileID,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		IsDefault: req.IsDefault,
	}
	if err := s.save(ctx, p, s.repo.Create); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDefault makes id the only default profile.
func (s *ProfileServiceImpl) SetDefault(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get profile: %w", err))
	}
	if p == nil {
		return apperror.ErrNotFound("profile")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Clear first: the partial unique index allows a single default row.
	if err := s.repo.ClearDefaults(ctx, dbTx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("clear defaults: %w", err))
	}
	if err := s.repo.SetDefault(ctx, dbTx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("set default: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Delete removes a profile.
func (s *ProfileServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get profile: %w", err))
	}
	if p == nil {
		return apperror.ErrNotFound("profile")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("delete profile: %w", err))
	}
	return nil
}

// PurgeUnreadable deletes profiles whose secret no longer decrypts, typically
// after the AES key was rotated. It returns how many rows were removed.
func (s *ProfileServiceImpl) PurgeUnreadable(ctx context.Context) (int, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list profiles: %w", err))
	}
	removed := 0
	for i := range profiles {
		p := &profiles[i]
		if _, err := s.encSvc.Decrypt(p.SecretKeyEnc); err == nil {
			continue
		}
		if err := s.repo.Delete(ctx, p.ID); err != nil {
			return removed, apperror.InternalError(fmt.Errorf("delete profile %s: %w", p.ID, err))
		}
		s.log.Info().Str("profile", p.String()).Msg("deleted unreadable profile")
		removed++
	}
	return removed, nil
}
