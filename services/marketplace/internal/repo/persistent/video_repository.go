package persistent

import (
	"context"
	"errors"
	"fmt"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/gorm"
)

type VideoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error)
	List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Video, error)
	Create(ctx context.Context, video *entity.Video) error
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&videoModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

func (r *videoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error) {
	out := make(map[string]*entity.Video, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var videoModels []model.VideoModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videoModels).Error; err != nil {
		return nil, err
	}
	for i := range videoModels {
		out[videoModels[i].ID] = ToVideoEntity(&videoModels[i])
	}
	return out, nil
}

func (r *videoRepository) List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Video, error) {
	var videoModels []model.VideoModel
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&videoModels).Error; err != nil {
		return nil, err
	}

	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = ToVideoEntity(&videoModels[i])
	}
	return videos, nil
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(videoModel).Error; err != nil {
		return err
	}
	video.ID = videoModel.ID
	video.CreatedAt = videoModel.CreatedAt
	video.UpdatedAt = videoModel.UpdatedAt
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	videoModel := ToVideoModel(video)
	result := r.db.WithContext(ctx).Model(&model.VideoModel{}).Where("id = ?", video.ID).
		Select("title", "description", "price", "is_free", "is_published", "vimeo_id", "genre", "tags", "thumbnail_url", "updated_at").
		Updates(videoModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", video.ID, entity.ErrNotFound)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&model.CourseVideoModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.VideoModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("video %s: %w", id, entity.ErrNotFound)
		}
		return nil
	})
}

func (r *videoRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.VideoModel{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
