package usecase

import (
	"context"
	"math"
	"time"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"
)

// DurationProvider looks up a hosted video's length in seconds.
type DurationProvider interface {
	Duration(ctx context.Context, vimeoID string) (int, error)
}

// ProgressTick is one position report from a player.
type ProgressTick struct {
	UserID    string
	VideoID   string
	SessionID string
	Seconds   float64
}

// ThrottleKey identifies the player instance the tick came from.
func (t ProgressTick) ThrottleKey() string {
	if t.SessionID != "" {
		return "session:" + t.SessionID
	}
	return "user:" + t.UserID + ":video:" + t.VideoID
}

type ResumeInfo struct {
	VideoID  string `json:"video_id"`
	Stored   int    `json:"stored"`
	Duration int    `json:"duration"`
	Position int    `json:"position"`
}

type ProgressUseCase interface {
	StartPlayback(ctx context.Context, userID, videoID string) error
	RecordProgress(ctx context.Context, tick ProgressTick) bool
	ResumePosition(ctx context.Context, userID string, video *entity.Video, durationHint int) (*ResumeInfo, error)
}

type progressUseCase struct {
	historyRepo persistent.ViewHistoryRepository
	throttler   Throttler
	durations   DurationProvider
	logger      *logger.Logger
	now         func() time.Time
}

func NewProgressUseCase(
	historyRepo persistent.ViewHistoryRepository,
	throttler Throttler,
	durations DurationProvider,
	logger *logger.Logger,
) ProgressUseCase {
	return &progressUseCase{
		historyRepo: historyRepo,
		throttler:   throttler,
		durations:   durations,
		logger:      logger,
		now:         time.Now,
	}
}

// StartPlayback creates the history row at zero or refreshes last_viewed_at. It never
// moves a stored position.
func (uc *progressUseCase) StartPlayback(ctx context.Context, userID, videoID string) error {
	if userID == "" {
		return entity.ErrUnauthenticated
	}
	return uc.historyRepo.Touch(ctx, userID, videoID, uc.now())
}

// RecordProgress persists at most one tick per throttle window per player. It reports
// whether the tick was written; write failures are logged and dropped.
func (uc *progressUseCase) RecordProgress(ctx context.Context, tick ProgressTick) bool {
	if tick.UserID == "" || tick.VideoID == "" {
		return false
	}
	// Positions past MaxInt32 do not fit the progress column.
	if math.IsNaN(tick.Seconds) || math.IsInf(tick.Seconds, 0) || tick.Seconds > math.MaxInt32 {
		return false
	}
	if uc.throttler != nil && !uc.throttler.Allow(ctx, tick.ThrottleKey()) {
		return false
	}

	seconds := 0
	if tick.Seconds > 0 {
		seconds = int(math.Floor(tick.Seconds))
	}
	if err := uc.historyRepo.UpsertProgress(ctx, tick.UserID, tick.VideoID, seconds, uc.now()); err != nil {
		uc.logger.Error("Failed to save progress for user %s video %s: %v", tick.UserID, tick.VideoID, err)
		return false
	}
	return true
}

func (uc *progressUseCase) ResumePosition(ctx context.Context, userID string, video *entity.Video, durationHint int) (*ResumeInfo, error) {
	info := &ResumeInfo{VideoID: video.ID}
	if userID == "" {
		return info, nil
	}

	history, err := uc.historyRepo.Get(ctx, userID, video.ID)
	if err != nil {
		return nil, err
	}
	if history != nil {
		info.Stored = history.Progress
	}

	info.Duration = durationHint
	if info.Duration <= 0 && video.VimeoID != "" && uc.durations != nil {
		duration, err := uc.durations.Duration(ctx, video.VimeoID)
		if err != nil {
			uc.logger.Warn("Duration lookup failed for video %s: %v", video.ID, err)
		} else {
			info.Duration = duration
		}
	}

	info.Position = ClampResume(info.Stored, info.Duration)
	return info, nil
}

// ClampResume bounds a stored position to [0, duration-1]. With an unknown duration
// only the lower bound applies.
func ClampResume(stored, duration int) int {
	if stored < 0 {
		stored = 0
	}
	if duration > 0 && stored > duration-1 {
		return duration - 1
	}
	return stored
}
