package postgres

import (
	"context"
	"errors"
	"fmt"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, hostname, profile_id, access_key, secret_key_enc, is_default, created_at, updated_at`

// ProfileRepo implements ports.ProfileRepository.
type ProfileRepo struct {
	pool Pool
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(pool Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// List returns every profile, default first.
func (r *ProfileRepo) List(ctx context.Context) ([]domain.MerchantProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM secure_acceptance_profiles ORDER BY is_default DESC, hostname`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.MerchantProfile
	for rows.Next() {
		var p domain.MerchantProfile
		if err := rows.Scan(
			&p.ID, &p.Hostname, &p.ProfileID, &p.AccessKey, &p.SecretKeyEnc,
			&p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}
	return profiles, nil
}

// GetByID fetches a profile by UUID.
func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MerchantProfile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM secure_acceptance_profiles WHERE id = $1`, id))
}

// GetByHostname matches hostname case-insensitively.
func (r *ProfileRepo) GetByHostname(ctx context.Context, hostname string) (*domain.MerchantProfile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM secure_acceptance_profiles WHERE lower(hostname) = lower($1)`, hostname))
}

// GetDefault fetches the profile flagged as default.
func (r *ProfileRepo) GetDefault(ctx context.Context) (*domain.MerchantProfile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM secure_acceptance_profiles WHERE is_default LIMIT 1`))
}

// Create inserts a profile. A taken hostname or profile id returns domain.ErrProfileConflict.
func (r *ProfileRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.MerchantProfile) error {
	_, err := on(r.pool, tx).Exec(ctx,
		`INSERT INTO secure_acceptance_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Hostname, p.ProfileID, p.AccessKey, p.SecretKeyEnc, p.IsDefault, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpsertByProfileID inserts p, or overwrites the credentials and default flag
// of the row already holding p.ProfileID. p takes the stored id, hostname and
// creation time.
func (r *ProfileRepo) UpsertByProfileID(ctx context.Context, tx pgx.Tx, p *domain.MerchantProfile) error {
	err := on(r.pool, tx).QueryRow(ctx,
		`INSERT INTO secure_acceptance_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (profile_id) DO UPDATE SET
			access_key = EXCLUDED.access_key,
			secret_key_enc = EXCLUDED.secret_key_enc,
			is_default = EXCLUDED.is_default,
			updated_at = EXCLUDED.updated_at
		RETURNING id, hostname, created_at`,
		p.ID, p.Hostname, p.ProfileID, p.AccessKey, p.SecretKeyEnc, p.IsDefault, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.Hostname, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileConflict
		}
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// ClearDefaults unsets is_default on every profile except keep.
func (r *ProfileRepo) ClearDefaults(ctx context.Context, tx pgx.Tx, keep uuid.UUID) error {
	_, err := on(r.pool, tx).Exec(ctx,
		`UPDATE secure_acceptance_profiles SET is_default = false, updated_at = now()
		WHERE is_default AND id <> $1`, keep)
	if err != nil {
		return fmt.Errorf("clear default profiles: %w", err)
	}
	return nil
}

// SetDefault flags a single profile as the default.
func (r *ProfileRepo) SetDefault(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := on(r.pool, tx).Exec(ctx,
		`UPDATE secure_acceptance_profiles SET is_default = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// Delete removes a profile.
func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM secure_acceptance_profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) scanProfile(row pgx.Row) (*domain.MerchantProfile, error) {
	p := &domain.MerchantProfile{}
	err := row.Scan(
		&p.ID, &p.Hostname, &p.ProfileID, &p.AccessKey, &p.SecretKeyEnc,
		&p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return p, nil
}
