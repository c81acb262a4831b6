package entity

import "time"

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	IsFree       bool      `json:"is_free"`
	IsPublished  bool      `json:"is_published"`
	VimeoID      string    `json:"vimeo_id"`
	ViewCount    int64     `json:"view_count"`
	Genre        string    `json:"genre"`
	Tags         []string  `json:"tags"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EffectivelyFree reports whether anyone may watch the video without a purchase.
func (v *Video) EffectivelyFree() bool {
	return v.IsFree || v.Price == 0
}

type Course struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Price        int                    `json:"price"`
	IsPublished  bool                   `json:"is_published"`
	ThumbnailURL string                 `json:"thumbnail_url"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// CourseItem is one ordered child of a course.
type CourseItem struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	ContentID  string    `json:"content_id"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

type PromptCategory string

const (
	PromptCategoryImage PromptCategory = "image"
	PromptCategoryVideo PromptCategory = "video"
	PromptCategoryMusic PromptCategory = "music"
	PromptCategoryText  PromptCategory = "text"
	PromptCategoryCode  PromptCategory = "code"
)

func (c PromptCategory) Valid() bool {
	switch c {
	case PromptCategoryImage, PromptCategoryVideo, PromptCategoryMusic, PromptCategoryText, PromptCategoryCode:
		return true
	}
	return false
}

type Prompt struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      PromptCategory `json:"category"`
	AITool        string         `json:"ai_tool"`
	Price         int            `json:"price"`
	PromptText    string         `json:"prompt_text,omitempty"`
	Attachments   []string       `json:"attachments,omitempty"`
	ExampleImages []string       `json:"example_images"`
	IsPublished   bool           `json:"is_published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Redacted returns a copy without the purchase-gated fields.
func (p *Prompt) Redacted() *Prompt {
	out := *p
	out.PromptText = ""
	out.Attachments = nil
	return &out
}

// ContentFilter narrows published listings.
type ContentFilter struct {
	Genre    string
	Category string
	Limit    int
	Offset   int
}
