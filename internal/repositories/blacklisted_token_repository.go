package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charity-transparency/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blacklistedTokenRepository struct {
	db *gorm.DB
}

// NewBlacklistedTokenRepository creates a new blacklisted token repository
func NewBlacklistedTokenRepository(db *gorm.DB) BlacklistedTokenRepositoryInterface {
	return &blacklistedTokenRepository{db: db}
}

// Create adds a token to the blacklist. Revoking the same token twice is a no-op.
func (r *blacklistedTokenRepository) Create(ctx context.Context, token *models.BlacklistedToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(token).Error
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the token ID has been revoked
func (r *blacklistedTokenRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlacklistedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired removes entries whose tokens have expired on their own
func (r *blacklistedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
