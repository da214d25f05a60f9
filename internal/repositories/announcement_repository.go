package repositories

import (
	"github.com/pastryvapors/promohub/backend/internal/models"
	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcements
type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	GetByID(id uint) (*models.Announcement, error)
	GetActive() ([]models.Announcement, error)
	GetAll() ([]models.Announcement, error)
	Update(a *models.Announcement) error
	Deactivate(id uint) error
}

type postgresAnnouncementRepository struct {
	db *gorm.DB
}

// NewPostgresAnnouncementRepository creates a new Postgres-backed repository
func NewPostgresAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

func (r *postgresAnnouncementRepository) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r *postgresAnnouncementRepository) GetByID(id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresAnnouncementRepository) GetActive() ([]models.Announcement, error) {
	var list []models.Announcement
	if err := r.db.Where("active = ?", true).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postgresAnnouncementRepository) GetAll() ([]models.Announcement, error) {
	var list []models.Announcement
	if err := r.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postgresAnnouncementRepository) Update(a *models.Announcement) error {
	return r.db.Save(a).Error
}

func (r *postgresAnnouncementRepository) Deactivate(id uint) error {
	res := r.db.Model(&models.Announcement{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
