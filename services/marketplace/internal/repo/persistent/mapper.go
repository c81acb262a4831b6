package persistent

import (
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/datatypes"
)

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}
	return &entity.Video{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Price:        m.Price,
		IsFree:       m.IsFree,
		IsPublished:  m.IsPublished,
		VimeoID:      m.VimeoID,
		ViewCount:    m.ViewCount,
		Genre:        m.Genre,
		Tags:         stringsOrEmpty(m.Tags),
		ThumbnailURL: m.ThumbnailURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToVideoModel(e *entity.Video) *model.VideoModel {
	if e == nil {
		return nil
	}
	return &model.VideoModel{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Price:        e.Price,
		IsFree:       e.IsFree,
		IsPublished:  e.IsPublished,
		VimeoID:      e.VimeoID,
		ViewCount:    e.ViewCount,
		Genre:        e.Genre,
		Tags:         datatypes.NewJSONSlice(stringsOrEmpty(e.Tags)),
		ThumbnailURL: e.ThumbnailURL,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToCourseEntity(m *model.CourseModel) *entity.Course {
	if m == nil {
		return nil
	}
	return &entity.Course{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Price:        m.Price,
		IsPublished:  m.IsPublished,
		ThumbnailURL: m.ThumbnailURL,
		Metadata:     map[string]interface{}(m.Metadata),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToCourseModel(e *entity.Course) *model.CourseModel {
	if e == nil {
		return nil
	}
	metadata := datatypes.JSONMap{}
	for k, v := range e.Metadata {
		metadata[k] = v
	}
	return &model.CourseModel{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Price:        e.Price,
		IsPublished:  e.IsPublished,
		ThumbnailURL: e.ThumbnailURL,
		Metadata:     metadata,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToPromptEntity(m *model.PromptModel) *entity.Prompt {
	if m == nil {
		return nil
	}
	return &entity.Prompt{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      entity.PromptCategory(m.Category),
		AITool:        m.AITool,
		Price:         m.Price,
		PromptText:    m.PromptText,
		Attachments:   stringsOrEmpty(m.Attachments),
		ExampleImages: stringsOrEmpty(m.ExampleImages),
		IsPublished:   m.IsPublished,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPromptModel(e *entity.Prompt) *model.PromptModel {
	if e == nil {
		return nil
	}
	return &model.PromptModel{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Category:      string(e.Category),
		AITool:        e.AITool,
		Price:         e.Price,
		PromptText:    e.PromptText,
		Attachments:   datatypes.NewJSONSlice(stringsOrEmpty(e.Attachments)),
		ExampleImages: datatypes.NewJSONSlice(stringsOrEmpty(e.ExampleImages)),
		IsPublished:   e.IsPublished,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToProfileEntity(m *model.ProfileModel) *entity.Profile {
	if m == nil {
		return nil
	}
	return &entity.Profile{
		ID:        m.ID,
		Role:      entity.UserRole(m.Role),
		Name:      m.Name,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *model.ProfileModel {
	if e == nil {
		return nil
	}
	return &model.ProfileModel{
		ID:        e.ID,
		Role:      string(e.Role),
		Name:      e.Name,
		Email:     e.Email,
		AvatarURL: e.AvatarURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToViewHistoryEntity(m *model.ViewHistoryModel) *entity.ViewHistory {
	if m == nil {
		return nil
	}
	return &entity.ViewHistory{
		ID:           m.ID,
		UserID:       m.UserID,
		VideoID:      m.VideoID,
		Progress:     m.Progress,
		LastViewedAt: m.LastViewedAt,
	}
}

func ToFavoriteEntity(m *model.FavoriteModel) *entity.Favorite {
	if m == nil {
		return nil
	}
	return &entity.Favorite{
		ID:        m.ID,
		UserID:    m.UserID,
		VideoID:   m.VideoID,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}
	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		UserID:    m.UserID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func stringsOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
