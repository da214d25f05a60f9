package models

import "time"

// NotificationTypeNewSubmission marks review-queue notifications
const NotificationTypeNewSubmission = "new_submission"

// Notification represents an admin review-queue notification (PostgreSQL).
// It mirrors the triggering submission so the queue renders without a
// second Mongo read.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:30;index"`
	UserID       uint      `json:"user_id" gorm:"index"` // submitting promoter
	SubmissionID string    `json:"submission_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	Platform     string    `json:"platform" gorm:"size:20"`
	TaskType     string    `json:"task_type" gorm:"size:20"`
	PostURL      string    `json:"post_url"`
	Read         bool      `json:"read" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
