package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAdminUserNotFound  = errors.New("admin user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// AdminUserRepository handles database operations for admin users
type AdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) AdminUserRepositoryInterface {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(user *models.AdminUser) error {
	if user == nil {
		return errors.New("admin user cannot be nil")
	}

	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

func (r *AdminUserRepository) GetByID(id uuid.UUID) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to get admin user by ID: %w", err)
	}
	return &user, nil
}

// GetByEmail looks the user up by its lowercased email
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser
	email = strings.ToLower(strings.TrimSpace(email))

	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to get admin user by email: %w", err)
	}
	return &user, nil
}

func (r *AdminUserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	result := r.db.Model(&models.AdminUser{}).Where("id = ?", id).Update("last_login_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdminUserNotFound
	}
	return nil
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}
