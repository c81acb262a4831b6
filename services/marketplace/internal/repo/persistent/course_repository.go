package persistent

import (
	"context"
	"errors"
	"fmt"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Course, error)
	Create(ctx context.Context, course *entity.Course) error
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id string) error
	GetVideoItems(ctx context.Context, courseID string) ([]*entity.CourseItem, error)
	GetPromptItems(ctx context.Context, courseID string) ([]*entity.CourseItem, error)
	ReplaceContents(ctx context.Context, courseID string, videoIDs, promptIDs []string) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var courseModel model.CourseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&courseModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %s: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToCourseEntity(&courseModel), nil
}

func (r *courseRepository) List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Course, error) {
	var courseModels []model.CourseModel
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&courseModels).Error; err != nil {
		return nil, err
	}

	courses := make([]*entity.Course, len(courseModels))
	for i := range courseModels {
		courses[i] = ToCourseEntity(&courseModels[i])
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	courseModel := ToCourseModel(course)
	if err := r.db.WithContext(ctx).Create(courseModel).Error; err != nil {
		return err
	}
	course.ID = courseModel.ID
	course.CreatedAt = courseModel.CreatedAt
	course.UpdatedAt = courseModel.UpdatedAt
	return nil
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	courseModel := ToCourseModel(course)
	result := r.db.WithContext(ctx).Model(&model.CourseModel{}).Where("id = ?", course.ID).
		Select("title", "description", "price", "is_published", "thumbnail_url", "updated_at").
		Updates(courseModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("course %s: %w", course.ID, entity.ErrNotFound)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseVideoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CoursePromptModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.CourseModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("course %s: %w", id, entity.ErrNotFound)
		}
		return nil
	})
}

// GetVideoItems returns the course's videos in play order. Ties on order_index fall back
// to insertion time, then id.
func (r *courseRepository) GetVideoItems(ctx context.Context, courseID string) ([]*entity.CourseItem, error) {
	var rows []model.CourseVideoModel
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Order("order_index ASC").Order("created_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.CourseItem, len(rows))
	for i := range rows {
		items[i] = &entity.CourseItem{
			ID:         rows[i].ID,
			CourseID:   rows[i].CourseID,
			ContentID:  rows[i].VideoID,
			OrderIndex: rows[i].OrderIndex,
			CreatedAt:  rows[i].CreatedAt,
		}
	}
	return items, nil
}

func (r *courseRepository) GetPromptItems(ctx context.Context, courseID string) ([]*entity.CourseItem, error) {
	var rows []model.CoursePromptModel
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Order("order_index ASC").Order("created_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.CourseItem, len(rows))
	for i := range rows {
		items[i] = &entity.CourseItem{
			ID:         rows[i].ID,
			CourseID:   rows[i].CourseID,
			ContentID:  rows[i].PromptID,
			OrderIndex: rows[i].OrderIndex,
			CreatedAt:  rows[i].CreatedAt,
		}
	}
	return items, nil
}

// ReplaceContents swaps the course's children atomically. Videos take order indexes
// 0..N-1 and prompts continue from N. The prompt id list is mirrored into metadata.
func (r *courseRepository) ReplaceContents(ctx context.Context, courseID string, videoIDs, promptIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courseModel model.CourseModel
		if err := tx.Where("id = ?", courseID).First(&courseModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("course %s: %w", courseID, entity.ErrNotFound)
			}
			return err
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseVideoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.CoursePromptModel{}).Error; err != nil {
			return err
		}

		if len(videoIDs) > 0 {
			rows := make([]model.CourseVideoModel, len(videoIDs))
			for i, id := range videoIDs {
				rows[i] = model.CourseVideoModel{CourseID: courseID, VideoID: id, OrderIndex: i}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(promptIDs) > 0 {
			rows := make([]model.CoursePromptModel, len(promptIDs))
			for i, id := range promptIDs {
				rows[i] = model.CoursePromptModel{CourseID: courseID, PromptID: id, OrderIndex: len(videoIDs) + i}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		metadata := datatypes.JSONMap{}
		for k, v := range courseModel.Metadata {
			metadata[k] = v
		}
		ids := make([]string, len(promptIDs))
		copy(ids, promptIDs)
		metadata["prompt_ids"] = ids
		return tx.Model(&model.CourseModel{}).Where("id = ?", courseID).Update("metadata", metadata).Error
	})
}
