package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlacklistedToken is a revoked admin access token. It is kept until the
// token would have expired anyway.
type BlacklistedToken struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JTI           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"jti"`
	AdminUserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_user_id"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	BlacklistedAt time.Time `gorm:"not null" json:"blacklisted_at"`

	AdminUser AdminUser `gorm:"foreignKey:AdminUserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (bt *BlacklistedToken) IsExpired(now time.Time) bool {
	return now.After(bt.ExpiresAt)
}

func (bt *BlacklistedToken) TableName() string {
	return "blacklisted_tokens"
}

func (bt *BlacklistedToken) BeforeCreate(tx *gorm.DB) error {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}
	if bt.BlacklistedAt.IsZero() {
		bt.BlacklistedAt = time.Now()
	}
	return nil
}
