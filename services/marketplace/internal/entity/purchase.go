package entity

import "time"

type ContentKind string

const (
	KindVideo  ContentKind = "video"
	KindCourse ContentKind = "course"
	KindPrompt ContentKind = "prompt"
)

func (k ContentKind) Valid() bool {
	return k == KindVideo || k == KindCourse || k == KindPrompt
}

// AllKinds is the fixed reporting order.
var AllKinds = []ContentKind{KindVideo, KindCourse, KindPrompt}

type PurchaseStatus string

const (
	PurchaseStatusActive    PurchaseStatus = "active"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// Purchase is a row from any of the three purchase tables. Amount is price_paid for
// videos and courses and price for prompts.
type Purchase struct {
	ID        string         `json:"id"`
	Kind      ContentKind    `json:"kind"`
	ContentID string         `json:"content_id"`
	UserID    string         `json:"user_id"`
	Amount    int            `json:"amount"`
	Status    PurchaseStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// PurchaseRecord is the projection the revenue aggregator folds over.
type PurchaseRecord struct {
	Kind      ContentKind
	ContentID string
	Amount    int
	Status    PurchaseStatus
	CreatedAt time.Time
}
