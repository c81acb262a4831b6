package persistent

import (
	"context"
	"errors"
	"time"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewHistoryRepository interface {
	Touch(ctx context.Context, userID, videoID string, at time.Time) error
	UpsertProgress(ctx context.Context, userID, videoID string, progress int, at time.Time) error
	Get(ctx context.Context, userID, videoID string) (*entity.ViewHistory, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error)
}

type viewHistoryRepository struct {
	db        *gorm.DB
	monotonic bool
}

// NewViewHistoryRepository builds the repository. With monotonic set, an upsert never
// lowers a stored position; otherwise the last write wins.
func NewViewHistoryRepository(db *gorm.DB, monotonic bool) ViewHistoryRepository {
	return &viewHistoryRepository{db: db, monotonic: monotonic}
}

var viewHistoryConflict = []clause.Column{{Name: "user_id"}, {Name: "video_id"}}

// Touch records a playback start. An existing row only has last_viewed_at refreshed.
func (r *viewHistoryRepository) Touch(ctx context.Context, userID, videoID string, at time.Time) error {
	row := &model.ViewHistoryModel{UserID: userID, VideoID: videoID, Progress: 0, LastViewedAt: at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   viewHistoryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{"last_viewed_at": at}),
	}).Create(row).Error
}

func (r *viewHistoryRepository) UpsertProgress(ctx context.Context, userID, videoID string, progress int, at time.Time) error {
	var progressValue interface{} = progress
	if r.monotonic {
		progressValue = gorm.Expr("CASE WHEN excluded.progress > view_history.progress THEN excluded.progress ELSE view_history.progress END")
	}
	row := &model.ViewHistoryModel{UserID: userID, VideoID: videoID, Progress: progress, LastViewedAt: at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: viewHistoryConflict,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress":       progressValue,
			"last_viewed_at": at,
		}),
	}).Create(row).Error
}

// Get returns nil without error when the user has never played the video.
func (r *viewHistoryRepository) Get(ctx context.Context, userID, videoID string) (*entity.ViewHistory, error) {
	var row model.ViewHistoryModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToViewHistoryEntity(&row), nil
}

// ListByUser returns the learning history, most recent first, with each video attached
// when it still exists.
func (r *viewHistoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	var rows []model.ViewHistoryModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_viewed_at DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*entity.HistoryEntry{}, nil
	}

	videoIDs := make([]string, len(rows))
	for i := range rows {
		videoIDs[i] = rows[i].VideoID
	}
	var videoModels []model.VideoModel
	if err := r.db.WithContext(ctx).Where("id IN ?", videoIDs).Find(&videoModels).Error; err != nil {
		return nil, err
	}
	videos := make(map[string]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[videoModels[i].ID] = ToVideoEntity(&videoModels[i])
	}

	entries := make([]*entity.HistoryEntry, len(rows))
	for i := range rows {
		entries[i] = &entity.HistoryEntry{
			ViewHistory: *ToViewHistoryEntity(&rows[i]),
			Video:       videos[rows[i].VideoID],
		}
	}
	return entries, nil
}
