package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Rank labels for high-engagement promoters
const (
	RankQueen = "Queen"
	RankKing  = "King"
)

// User represents an account (admin or promoter) stored in PostgreSQL
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"`
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"`
	IsAdmin     bool   `json:"is_admin" gorm:"default:false;index"`

	// Profile
	Birthdate      string `json:"birthdate"` // YYYY-MM-DD
	Address        string `json:"address"`
	ContactNumber  string `json:"contact_number"`
	Gender         string `json:"gender"` // male or female
	Rank           string `json:"rank"`   // "", Queen, King
	PrimaryFbLink  string `json:"primary_fb_link"`
	PromoterFbLink string `json:"promoter_fb_link"`
	ProfilePicture string `json:"profile_picture"`

	// Promotion accounting
	Points             int `json:"points" gorm:"default:0"`
	TotalApprovedPosts int `json:"total_approved_posts" gorm:"default:0"`

	// Moderation
	Warnings           int        `json:"warnings" gorm:"default:0"`
	LastWarningMessage string     `json:"last_warning_message"`
	LastWarningAt      *time.Time `json:"last_warning_at"`
	Suspended          bool       `json:"suspended" gorm:"default:false"`
	SuspendedUntil     *time.Time `json:"suspended_until"`

	CreatedBy string    `json:"created_by"` // signup_form, email_login, google_login
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns a human-readable name, falling back to the email local part
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "Unknown User"
}

// ProfileComplete reports whether every field required before submitting
// task proof is filled in. Placeholder avatars do not count as a picture.
func (u *User) ProfileComplete() bool {
	required := []string{
		u.FirstName,
		u.LastName,
		u.Email,
		u.Birthdate,
		u.Address,
		u.ContactNumber,
		u.Gender,
		u.PrimaryFbLink,
	}
	for _, f := range required {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	if u.ProfilePicture == "" || strings.Contains(u.ProfilePicture, "ui-avatars.com") {
		return false
	}
	return true
}

// SuspensionActive reports whether the user is suspended as of now.
// An expired suspendedUntil means the suspension no longer applies,
// even if the flags have not been cleared yet.
func (u *User) SuspensionActive(now time.Time) bool {
	return u.Suspended && u.SuspendedUntil != nil && u.SuspendedUntil.After(now)
}

// SuspensionExpired reports whether stale suspension flags should be cleared
func (u *User) SuspensionExpired(now time.Time) bool {
	return u.Suspended && (u.SuspendedUntil == nil || !u.SuspendedUntil.After(now))
}

// SignupRequest defines the request body for email/password signup
type SignupRequest struct {
	FirstName     string `json:"first_name" validate:"required,min=2,max=50"`
	MiddleName    string `json:"middle_name" validate:"omitempty,max=50"`
	LastName      string `json:"last_name" validate:"required,min=2,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Birthdate     string `json:"birthdate" validate:"required"`
	Address       string `json:"address" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	AgreeTerms    bool   `json:"agree_terms" validate:"required"`
}

// SigninRequest defines the request body for email/password login
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest defines the editable profile fields.
// Names and email are immutable after signup.
type UpdateProfileRequest struct {
	Birthdate      string `json:"birthdate" validate:"omitempty"`
	Address        string `json:"address" validate:"omitempty"`
	ContactNumber  string `json:"contact_number" validate:"omitempty"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	PrimaryFbLink  string `json:"primary_fb_link" validate:"omitempty,url"`
	PromoterFbLink string `json:"promoter_fb_link" validate:"omitempty,url"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,url"`
}

// WarnRequest defines the request body for warning a promoter
type WarnRequest struct {
	Message string `json:"message" validate:"required,min=3,max=500"`
}

// SuspendRequest defines the request body for suspending a promoter
type SuspendRequest struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// BulkWarnRequest defines the request body for warning several promoters at once
type BulkWarnRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,required"`
	Message string `json:"message" validate:"required,min=3,max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
