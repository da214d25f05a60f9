package repositories

import (
	"errors"
	"time"

	"github.com/pastryvapors/promohub/backend/internal/models"
	"gorm.io/gorm"
)

// GoogleAccountRepository mirrors OAuth-created identities
type GoogleAccountRepository interface {
	// Upsert creates the mirror row on first Google sign-in and refreshes
	// lastLoginAt (plus profile fields) on later ones
	Upsert(acc *models.GoogleAccount) error
	GetByUID(uid string) (*models.GoogleAccount, error)
}

type postgresGoogleAccountRepository struct {
	db *gorm.DB
}

// NewPostgresGoogleAccountRepository creates a new Postgres-backed repository
func NewPostgresGoogleAccountRepository(db *gorm.DB) GoogleAccountRepository {
	return &postgresGoogleAccountRepository{db: db}
}

func (r *postgresGoogleAccountRepository) Upsert(acc *models.GoogleAccount) error {
	var existing models.GoogleAccount
	err := r.db.Where("uid = ?", acc.UID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acc.CreatedAt = time.Now()
		acc.LastLoginAt = acc.CreatedAt
		return r.db.Create(acc).Error
	}
	if err != nil {
		return err
	}

	existing.Email = acc.Email
	existing.DisplayName = acc.DisplayName
	existing.PhotoURL = acc.PhotoURL
	existing.FirstName = acc.FirstName
	existing.LastName = acc.LastName
	existing.EmailVerified = acc.EmailVerified
	existing.LastLoginAt = time.Now()
	return r.db.Save(&existing).Error
}

func (r *postgresGoogleAccountRepository) GetByUID(uid string) (*models.GoogleAccount, error) {
	var acc models.GoogleAccount
	if err := r.db.Where("uid = ?", uid).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}
