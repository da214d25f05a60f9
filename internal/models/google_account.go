package models

import "time"

// GoogleAccount mirrors an OAuth-created identity (PostgreSQL).
// One row per Firebase UID signed in through Google.
type GoogleAccount struct {
	UID           string    `json:"uid" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"index"`
	DisplayName   string    `json:"display_name"`
	PhotoURL      string    `json:"photo_url"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	EmailVerified bool      `json:"email_verified"`
	Provider      string    `json:"provider" gorm:"size:30;default:'google.com'"`
	LastLoginAt   time.Time `json:"last_login_at"`
	CreatedAt     time.Time `json:"created_at"`
}
