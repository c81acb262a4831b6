package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Profile struct {
	ID        string    `json:"id"`
	Role      UserRole  `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Viewer identifies the caller of a read path. A nil *Viewer is an anonymous visitor.
type Viewer struct {
	UserID string
}

func (v *Viewer) Anonymous() bool {
	return v == nil || v.UserID == ""
}
