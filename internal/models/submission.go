package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses. A submission is reviewed exactly once: it leaves
// pending for approved or rejected and never comes back.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission represents one task-proof record stored in MongoDB.
// Despite referencing a social-media post, it is the proof-of-completion
// record, not the post itself.
type Submission struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	UserName    string             `json:"user_name" bson:"user_name"`
	UserEmail   string             `json:"user_email" bson:"user_email"`
	Platform    string             `json:"platform" bson:"platform"`   // facebook or instagram
	TaskType    string             `json:"task_type" bson:"task_type"` // hand-check, video-content, group-share, hype-comment
	PostURL     string             `json:"post_url,omitempty" bson:"post_url,omitempty"`
	Screenshots []string           `json:"screenshots,omitempty" bson:"screenshots,omitempty"`
	Status      string             `json:"status" bson:"status"`
	Points      int                `json:"points" bson:"points"` // 0 until reviewed
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}

// CreateSubmissionRequest defines the request body for submitting task proof
type CreateSubmissionRequest struct {
	Platform    string   `json:"platform" validate:"required,oneof=facebook instagram"`
	TaskType    string   `json:"task_type" validate:"required,oneof=hand-check video-content group-share hype-comment"`
	PostURL     string   `json:"post_url" validate:"omitempty"`
	Screenshots []string `json:"screenshots" validate:"omitempty,max=10,dive,url"`
}

// ApproveSubmissionRequest defines the request body for approving a
// submission. Points left out means "use the suggested award".
type ApproveSubmissionRequest struct {
	Points *int `json:"points" validate:"omitempty,min=0"`
}
