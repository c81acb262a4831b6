package entity

import "time"

type ViewHistory struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	VideoID      string    `json:"video_id"`
	Progress     int       `json:"progress"`
	LastViewedAt time.Time `json:"last_viewed_at"`
}

// HistoryEntry is a view history row joined with its video for the learning page.
type HistoryEntry struct {
	ViewHistory
	Video *Video `json:"video,omitempty"`
}

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
