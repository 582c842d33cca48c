package postgres

import (
	"context"
	"testing"
	"time"

	"secure-acceptance-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfile() *domain.MerchantProfile {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.MerchantProfile{
		ID:           uuid.New(),
		Hostname:     "shop.example.com",
		ProfileID:    "2A37F989-C8B2-4FEF-ACCD-F9A5BB1A4B95",
		AccessKey:    "access-key",
		SecretKeyEnc: "c2VjcmV0",
		IsDefault:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func profileColumnNames() []string {
	return []string{"id", "hostname", "profile_id", "access_key", "secret_key_enc", "is_default", "created_at", "updated_at"}
}

func profileRow(rows *pgxmock.Rows, p *domain.MerchantProfile) *pgxmock.Rows {
	return rows.AddRow(p.ID, p.Hostname, p.ProfileID, p.AccessKey, p.SecretKeyEnc, p.IsDefault, p.CreatedAt, p.UpdatedAt)
}

func TestProfileRepo_GetByHostname(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	p := newTestProfile()

	mock.ExpectQuery("FROM secure_acceptance_profiles WHERE lower\\(hostname\\) = lower\\(\\$1\\)").
		WithArgs("Shop.Example.com").
		WillReturnRows(profileRow(pgxmock.NewRows(profileColumnNames()), p))

	result, err := repo.GetByHostname(context.Background(), "Shop.Example.com")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, p.ProfileID, result.ProfileID)
	assert.Equal(t, p.SecretKeyEnc, result.SecretKeyEnc)
	assert.Empty(t, result.SecretKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_GetDefault_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	mock.ExpectQuery("WHERE is_default LIMIT 1").
		WillReturnRows(pgxmock.NewRows(profileColumnNames()))

	result, err := repo.GetDefault(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	a, b := newTestProfile(), newTestProfile()
	b.Hostname, b.IsDefault = "other.example.com", false

	rows := pgxmock.NewRows(profileColumnNames())
	profileRow(rows, a)
	profileRow(rows, b)
	mock.ExpectQuery("ORDER BY is_default DESC, hostname").WillReturnRows(rows)

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.True(t, profiles[0].IsDefault)
	assert.Equal(t, "other.example.com", profiles[1].Hostname)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_CreateAndClearDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	p := newTestProfile()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE secure_acceptance_profiles SET is_default = false").
		WithArgs(p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO secure_acceptance_profiles").
		WithArgs(p.ID, p.Hostname, p.ProfileID, p.AccessKey, p.SecretKeyEnc, p.IsDefault, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.ClearDefaults(context.Background(), dbTx, p.ID))
	require.NoError(t, repo.Create(context.Background(), dbTx, p))
	require.NoError(t, dbTx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_Create_Conflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO secure_acceptance_profiles").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "secure_acceptance_profiles_hostname_key"})

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	err = repo.Create(context.Background(), dbTx, newTestProfile())
	assert.ErrorIs(t, err, domain.ErrProfileConflict)
}

func TestProfileRepo_UpsertByProfileID_TakesStoredRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	p := newTestProfile()
	p.Hostname = ""
	storedID := uuid.New()
	storedAt := p.CreatedAt.Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO secure_acceptance_profiles .+ ON CONFLICT \\(profile_id\\) DO UPDATE SET .+ RETURNING id, hostname, created_at").
		WithArgs(p.ID, p.Hostname, p.ProfileID, p.AccessKey, p.SecretKeyEnc, p.IsDefault, p.CreatedAt, p.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "hostname", "created_at"}).AddRow(storedID, "shop.example.com", storedAt))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.UpsertByProfileID(context.Background(), dbTx, p))
	assert.Equal(t, storedID, p.ID)
	assert.Equal(t, "shop.example.com", p.Hostname)
	assert.Equal(t, storedAt, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepo_SetDefault_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("SET is_default = true").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	err = repo.SetDefault(context.Background(), dbTx, id)
	assert.ErrorContains(t, err, "profile not found")
}

func TestProfileRepo_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepo(mock)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM secure_acceptance_profiles").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
