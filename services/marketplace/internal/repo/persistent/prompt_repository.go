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

type PromptRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Prompt, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Prompt, error)
	List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Prompt, error)
	Create(ctx context.Context, prompt *entity.Prompt) error
	Update(ctx context.Context, prompt *entity.Prompt) error
	Delete(ctx context.Context, id string) error
	AppendAttachment(ctx context.Context, id, key string) error
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) GetByID(ctx context.Context, id string) (*entity.Prompt, error) {
	var promptModel model.PromptModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&promptModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("prompt %s: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToPromptEntity(&promptModel), nil
}

func (r *promptRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Prompt, error) {
	out := make(map[string]*entity.Prompt, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var promptModels []model.PromptModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&promptModels).Error; err != nil {
		return nil, err
	}
	for i := range promptModels {
		out[promptModels[i].ID] = ToPromptEntity(&promptModels[i])
	}
	return out, nil
}

func (r *promptRepository) List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Prompt, error) {
	var promptModels []model.PromptModel
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&promptModels).Error; err != nil {
		return nil, err
	}

	prompts := make([]*entity.Prompt, len(promptModels))
	for i := range promptModels {
		prompts[i] = ToPromptEntity(&promptModels[i])
	}
	return prompts, nil
}

func (r *promptRepository) Create(ctx context.Context, prompt *entity.Prompt) error {
	promptModel := ToPromptModel(prompt)
	if err := r.db.WithContext(ctx).Create(promptModel).Error; err != nil {
		return err
	}
	prompt.ID = promptModel.ID
	prompt.CreatedAt = promptModel.CreatedAt
	prompt.UpdatedAt = promptModel.UpdatedAt
	return nil
}

func (r *promptRepository) Update(ctx context.Context, prompt *entity.Prompt) error {
	promptModel := ToPromptModel(prompt)
	result := r.db.WithContext(ctx).Model(&model.PromptModel{}).Where("id = ?", prompt.ID).
		Select("title", "description", "category", "ai_tool", "price", "prompt_text", "example_images", "is_published", "updated_at").
		Updates(promptModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("prompt %s: %w", prompt.ID, entity.ErrNotFound)
	}
	return nil
}

func (r *promptRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", id).Delete(&model.CoursePromptModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.PromptModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("prompt %s: %w", id, entity.ErrNotFound)
		}
		return nil
	})
}

// AppendAttachment records an uploaded object key on the prompt.
func (r *promptRepository) AppendAttachment(ctx context.Context, id, key string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var promptModel model.PromptModel
		if err := tx.Where("id = ?", id).First(&promptModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("prompt %s: %w", id, entity.ErrNotFound)
			}
			return err
		}
		attachments := append(stringsOrEmpty(promptModel.Attachments), key)
		return tx.Model(&model.PromptModel{}).Where("id = ?", id).
			Update("attachments", datatypes.NewJSONSlice(attachments)).Error
	})
}
