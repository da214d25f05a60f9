package models

import "time"

// Announcement priorities
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement is an admin-authored broadcast message (PostgreSQL).
// Dismissal is a client-side concern; the server only tracks active.
type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority" gorm:"size:10;default:'normal'"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
}

// PriorityWeight orders announcements urgent-first
func (a *Announcement) PriorityWeight() int {
	switch a.Priority {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// CreateAnnouncementRequest defines the request body for posting an announcement
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=100"`
	Message  string `json:"message" validate:"required,min=3,max=2000"`
	Priority string `json:"priority" validate:"required,oneof=low normal high urgent"`
}

// UpdateAnnouncementRequest defines the request body for editing an announcement
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" validate:"omitempty,min=3,max=100"`
	Message  string `json:"message" validate:"omitempty,min=3,max=2000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Active   *bool  `json:"active" validate:"omitempty"`
}
