package repositories

import (
	"github.com/pastryvapors/promohub/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for review-queue notifications
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetAll(onlyUnread bool) ([]models.Notification, error)
	GetUnreadCount() (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead() error
	Delete(notificationID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new Postgres-backed repository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetAll(onlyUnread bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.Order("created_at DESC")
	if onlyUnread {
		q = q.Where("read = ?", false)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *postgresNotificationRepository) GetUnreadCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead() error {
	return r.db.Model(&models.Notification{}).Where("read = ?", false).Update("read", true).Error
}

func (r *postgresNotificationRepository) Delete(notificationID uint) error {
	res := r.db.Delete(&models.Notification{}, notificationID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
