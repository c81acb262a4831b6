package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase tables carry no unique constraint on (content, user); duplicates are legal.

type VideoPurchaseModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	VideoID   string `gorm:"type:uuid;not null;index:idx_video_purchases_video_user"`
	UserID    string `gorm:"type:uuid;not null;index:idx_video_purchases_video_user;index"`
	PricePaid int    `gorm:"not null"`
	Status    string `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
}

func (VideoPurchaseModel) TableName() string {
	return "video_purchases"
}

func (m *VideoPurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CoursePurchaseModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CourseID  string `gorm:"type:uuid;not null;index:idx_course_purchases_course_user"`
	UserID    string `gorm:"type:uuid;not null;index:idx_course_purchases_course_user;index"`
	PricePaid int    `gorm:"not null"`
	Status    string `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
}

func (CoursePurchaseModel) TableName() string {
	return "course_purchases"
}

func (m *CoursePurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// PromptPurchaseModel stores the amount in "price", not "price_paid".
type PromptPurchaseModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	PromptID  string `gorm:"type:uuid;not null;index:idx_prompt_purchases_prompt_user"`
	UserID    string `gorm:"type:uuid;not null;index:idx_prompt_purchases_prompt_user;index"`
	Price     int    `gorm:"not null"`
	Status    string `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time
}

func (PromptPurchaseModel) TableName() string {
	return "prompt_purchases"
}

func (m *PromptPurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
