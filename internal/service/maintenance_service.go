package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// MaintenanceService runs the housekeeping jobs behind the CLI.
type MaintenanceService struct {
	replies  ports.ReplyRepository
	profiles ports.ProfileService
	cfg      *config.Holder
	log      zerolog.Logger
	now      func() time.Time
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(replies ports.ReplyRepository, profiles ports.ProfileService, cfg *config.Holder, log zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{replies: replies, profiles: profiles, cfg: cfg, log: log, now: time.Now}
}

// ParseAge reads a retention age. Besides Go durations ("720h") it accepts
// whole days ("90d") and weeks ("2w").
func ParseAge(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	unit := raw[len(raw)-1]
	if unit == 'd' || unit == 'w' {
		n, err := strconv.Atoi(raw[:len(raw)-1])
		if err != nil || n < 0 {
			return 0, apperror.Validation(fmt.Sprintf("invalid age %q", raw))
		}
		days := n
		if unit == 'w' {
			days = n * 7
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, apperror.Validation(fmt.Sprintf("invalid age %q", raw))
	}
	return d, nil
}

// ScrubReplies empties the stored payload of replies older than olderThan.
// Zero falls back to the configured retention.
func (s *MaintenanceService) ScrubReplies(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		olderThan = s.cfg.Current().Retention.ReplyMaxAge
	}
	if olderThan <= 0 {
		return 0, apperror.Validation("a positive age is required")
	}
	cutoff := s.now().UTC().Add(-olderThan)
	n, err := s.replies.Scrub(ctx, cutoff)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("scrub replies: %w", err))
	}
	s.log.Info().Time("cutoff", cutoff).Int64("scrubbed", n).Msg("reply data scrubbed")
	return n, nil
}

// PurgeUnreadableProfiles deletes profiles whose secret no longer decrypts.
func (s *MaintenanceService) PurgeUnreadableProfiles(ctx context.Context) (int, error) {
	n, err := s.profiles.PurgeUnreadable(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("deleted", n).Msg("unreadable profiles purged")
	return n, nil
}
