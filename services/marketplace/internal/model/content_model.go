package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Price        int    `gorm:"not null;default:0"`
	IsFree       bool   `gorm:"not null;default:false"`
	IsPublished  bool   `gorm:"not null;default:false;index"`
	VimeoID      string `gorm:"column:vimeo_id"`
	ViewCount    int64  `gorm:"not null;default:0"`
	Genre        string `gorm:"index"`
	Tags         datatypes.JSONSlice[string]
	ThumbnailURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (VideoModel) TableName() string {
	return "videos"
}

func (m *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CourseModel struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Price        int    `gorm:"not null;default:0"`
	IsPublished  bool   `gorm:"not null;default:false;index"`
	ThumbnailURL string
	Metadata     datatypes.JSONMap
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CourseVideoModel struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	CourseID   string `gorm:"type:uuid;not null;index"`
	VideoID    string `gorm:"type:uuid;not null;index"`
	OrderIndex int    `gorm:"not null"`
	CreatedAt  time.Time
}

func (CourseVideoModel) TableName() string {
	return "course_videos"
}

func (m *CourseVideoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CoursePromptModel struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	CourseID   string `gorm:"type:uuid;not null;index"`
	PromptID   string `gorm:"type:uuid;not null;index"`
	OrderIndex int    `gorm:"not null"`
	CreatedAt  time.Time
}

func (CoursePromptModel) TableName() string {
	return "course_prompts"
}

func (m *CoursePromptModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PromptModel struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"type:text"`
	Category      string `gorm:"type:varchar(10);not null;index"`
	AITool        string `gorm:"column:ai_tool"`
	Price         int    `gorm:"not null;default:0"`
	PromptText    string `gorm:"type:text"`
	Attachments   datatypes.JSONSlice[string]
	ExampleImages datatypes.JSONSlice[string]
	IsPublished   bool `gorm:"not null;default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PromptModel) TableName() string {
	return "prompts"
}

func (m *PromptModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
