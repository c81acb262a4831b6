package persistent

import (
	"context"
	"errors"
	"fmt"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository interface {
	AddFavorite(ctx context.Context, userID, videoID string) error
	RemoveFavorite(ctx context.Context, userID, videoID string) error
	IsFavorite(ctx context.Context, userID, videoID string) (bool, error)
	ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, error)
	CreateComment(ctx context.Context, comment *entity.Comment) error
	GetComment(ctx context.Context, id string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListComments(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// AddFavorite is idempotent.
func (r *interactionRepository) AddFavorite(ctx context.Context, userID, videoID string) error {
	row := &model.FavoriteModel{UserID: userID, VideoID: videoID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(row).Error
}

func (r *interactionRepository) RemoveFavorite(ctx context.Context, userID, videoID string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.FavoriteModel{}).Error
}

func (r *interactionRepository) IsFavorite(ctx context.Context, userID, videoID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteModel{}).Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, error) {
	var rows []model.FavoriteModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	favorites := make([]*entity.Favorite, len(rows))
	for i := range rows {
		favorites[i] = ToFavoriteEntity(&rows[i])
	}
	return favorites, nil
}

func (r *interactionRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	row := &model.CommentModel{VideoID: comment.VideoID, UserID: comment.UserID, Body: comment.Body}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	comment.ID = row.ID
	comment.CreatedAt = row.CreatedAt
	comment.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *interactionRepository) GetComment(ctx context.Context, id string) (*entity.Comment, error) {
	var row model.CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %s: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToCommentEntity(&row), nil
}

func (r *interactionRepository) DeleteComment(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CommentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", id, entity.ErrNotFound)
	}
	return nil
}

func (r *interactionRepository) ListComments(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error) {
	var rows []model.CommentModel
	query := r.db.WithContext(ctx).Where("video_id = ?", videoID).Order("created_at DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = ToCommentEntity(&rows[i])
	}
	return comments, nil
}
