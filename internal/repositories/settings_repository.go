package repositories

import (
	"errors"

	"github.com/pastryvapors/promohub/backend/internal/models"
	"gorm.io/gorm"
)

// SettingsRepository defines the interface for global settings
type SettingsRepository interface {
	// SignupEnabled reports the signup gate, creating the singleton row
	// on first read. Defaults to enabled.
	SignupEnabled() (bool, error)
	SetSignupEnabled(enabled bool) error
}

type postgresSettingsRepository struct {
	db *gorm.DB
}

// NewPostgresSettingsRepository creates a new Postgres-backed repository
func NewPostgresSettingsRepository(db *gorm.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

func (r *postgresSettingsRepository) SignupEnabled() (bool, error) {
	var setting models.SignupSetting
	err := r.db.First(&setting, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.SignupSetting{ID: 1, Enabled: true}
		if err := r.db.Create(&setting).Error; err != nil {
			return true, err
		}
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return setting.Enabled, nil
}

func (r *postgresSettingsRepository) SetSignupEnabled(enabled bool) error {
	setting := models.SignupSetting{ID: 1, Enabled: enabled}
	return r.db.Save(&setting).Error
}
