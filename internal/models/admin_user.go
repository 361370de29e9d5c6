package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrNameRequired  = errors.New("name is required")
)

// AdminUser is a member of staff allowed into the admin panel
type AdminUser struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(150);not null" json:"name"`
	Role         string     `gorm:"type:varchar(20);not null" json:"role"`
	LastLoginAt  *time.Time `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleEditor
	}

	return u.Validate()
}

func (u *AdminUser) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates (UpdateColumn/Updates with map) carry an empty struct
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *AdminUser) Validate() error {
	if u.Email == "" {
		return ErrEmailRequired
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}

	if u.Role != RoleAdmin && u.Role != RoleEditor {
		return fmt.Errorf("invalid role: %s", u.Role)
	}

	return nil
}

func (u *AdminUser) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *AdminUser) TableName() string {
	return "admin_users"
}
