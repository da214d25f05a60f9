package models

import "time"

// SignupSetting is a singleton row gating the signup endpoint
type SignupSetting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Enabled   bool      `json:"enabled" gorm:"default:true"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSignupSettingRequest defines the request body for toggling signups
type UpdateSignupSettingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
