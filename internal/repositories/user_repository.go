package repositories

import (
	"time"

	"github.com/pastryvapors/promohub/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetPromoters() ([]models.User, error)
	GetPromotersByRanks(ranks []string) ([]models.User, error)

	// CreditApproval atomically applies the review award to the owner:
	// points += points, totalApprovedPosts += 1, in one transaction.
	CreditApproval(userID uint, points int) error

	// SetCounters overwrites the maintained counters (reconciliation)
	SetCounters(userID uint, points, approvedPosts int) error

	AddWarning(userID uint, message string, at time.Time) error
	Suspend(userID uint, until time.Time) error
	ClearSuspension(userID uint) error
	ClearExpiredSuspensions(now time.Time) (int64, error)

	// KickUser removes the user's notifications, google account mirror and
	// the user row in a single transaction. Submissions live in Mongo and
	// are deleted by the caller first.
	KickUser(userID uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// GetPromoters retrieves all non-admin users
func (r *PostgresUserRepository) GetPromoters() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_admin = ?", false).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetPromotersByRanks retrieves non-admin users holding any of the given rank labels
func (r *PostgresUserRepository) GetPromotersByRanks(ranks []string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_admin = ? AND rank IN ?", false, ranks).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreditApproval applies the award with SQL-side increments so concurrent
// reviews cannot lose updates
func (r *PostgresUserRepository) CreditApproval(userID uint, points int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"points":               gorm.Expr("points + ?", points),
			"total_approved_posts": gorm.Expr("total_approved_posts + ?", 1),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetCounters overwrites points and totalApprovedPosts (nightly reconciliation)
func (r *PostgresUserRepository) SetCounters(userID uint, points, approvedPosts int) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"points":               points,
		"total_approved_posts": approvedPosts,
	}).Error
}

// AddWarning increments the warning counter and overwrites the last warning.
// Only the latest warning is retained.
func (r *PostgresUserRepository) AddWarning(userID uint, message string, at time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"warnings":             gorm.Expr("warnings + ?", 1),
		"last_warning_message": message,
		"last_warning_at":      at,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Suspend sets the suspension flags, overwriting any existing suspension
func (r *PostgresUserRepository) Suspend(userID uint, until time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"suspended":       true,
		"suspended_until": until,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearSuspension resets the suspension flags
func (r *PostgresUserRepository) ClearSuspension(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"suspended":       false,
		"suspended_until": nil,
	}).Error
}

// ClearExpiredSuspensions resets suspension flags whose deadline has passed
func (r *PostgresUserRepository) ClearExpiredSuspensions(now time.Time) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("suspended = ? AND (suspended_until IS NULL OR suspended_until <= ?)", true, now).
		Updates(map[string]interface{}{
			"suspended":       false,
			"suspended_until": nil,
		})
	return res.RowsAffected, res.Error
}

// KickUser deletes the user's Postgres footprint in one transaction:
// notifications, google account mirror, then the user row
func (r *PostgresUserRepository) KickUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if user.FirebaseUID != "" {
			if err := tx.Where("uid = ?", user.FirebaseUID).Delete(&models.GoogleAccount{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
