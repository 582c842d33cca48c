package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"90d", 90 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"36h", 36 * time.Hour, false},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAge(tt.raw)
			if tt.wantErr {
				assertAppError(t, err, "PAY_002")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newMaintenance(t *testing.T, maxAge time.Duration) (*MaintenanceService, *mocks.MockReplyRepository, *mocks.MockProfileService) {
	ctrl := gomock.NewController(t)
	replies := mocks.NewMockReplyRepository(ctrl)
	profiles := mocks.NewMockProfileService(ctrl)
	cfg := config.NewHolder(&config.Config{Retention: config.RetentionConfig{ReplyMaxAge: maxAge}})
	svc := NewMaintenanceService(replies, profiles, cfg, newTestLogger())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, replies, profiles
}

func TestMaintenance_ScrubReplies(t *testing.T) {
	svc, replies, _ := newMaintenance(t, 0)
	replies.EXPECT().Scrub(gomock.Any(), time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)).Return(int64(7), nil)

	n, err := svc.ScrubReplies(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestMaintenance_ScrubReplies_ConfiguredDefault(t *testing.T) {
	svc, replies, _ := newMaintenance(t, 24*time.Hour)
	replies.EXPECT().Scrub(gomock.Any(), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)).Return(int64(0), nil)

	_, err := svc.ScrubReplies(context.Background(), 0)
	require.NoError(t, err)
}

func TestMaintenance_ScrubReplies_Errors(t *testing.T) {
	svc, replies, _ := newMaintenance(t, 0)
	_, err := svc.ScrubReplies(context.Background(), 0)
	assertAppError(t, err, "PAY_002")

	replies.EXPECT().Scrub(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	_, err = svc.ScrubReplies(context.Background(), time.Hour)
	assertAppError(t, err, "SYS_001")
}

func TestMaintenance_PurgeUnreadableProfiles(t *testing.T) {
	svc, _, profiles := newMaintenance(t, 0)
	profiles.EXPECT().PurgeUnreadable(gomock.Any()).Return(2, nil)

	n, err := svc.PurgeUnreadableProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
