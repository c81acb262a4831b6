package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Role      string `gorm:"type:varchar(20);not null;default:'user'"`
	Name      string
	Email     string `gorm:"index"`
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}

type ViewHistoryModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_history_user_video"`
	VideoID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_history_user_video"`
	Progress     int       `gorm:"not null;default:0"`
	LastViewedAt time.Time `gorm:"not null;index"`
}

func (ViewHistoryModel) TableName() string {
	return "view_history"
}

func (m *ViewHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type FavoriteModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_video"`
	VideoID   string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_video"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

func (m *FavoriteModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	VideoID   string `gorm:"type:uuid;not null;index"`
	UserID    string `gorm:"type:uuid;not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CommentModel) TableName() string {
	return "comments"
}

func (m *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// All lists every model in dependency order, for AutoMigrate in tests and the seed tool.
func All() []interface{} {
	return []interface{}{
		&ProfileModel{},
		&VideoModel{},
		&CourseModel{},
		&PromptModel{},
		&CourseVideoModel{},
		&CoursePromptModel{},
		&VideoPurchaseModel{},
		&CoursePurchaseModel{},
		&PromptPurchaseModel{},
		&ViewHistoryModel{},
		&FavoriteModel{},
		&CommentModel{},
	}
}
