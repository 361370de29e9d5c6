package repositories

import (
	"context"
	"errors"
	"fmt"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrActivitySlugExists = errors.New("activity slug already exists")
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepositoryInterface {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *models.Activity) error {
	if activity == nil {
		return errors.New("activity cannot be nil")
	}

	if err := r.db.Create(activity).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrActivitySlugExists
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) GetByID(id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Where("id = ?", id).First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) GetBySlug(slug string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Where("slug = ?", slug).First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity by slug: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) Update(activity *models.Activity) error {
	if activity == nil {
		return errors.New("activity cannot be nil")
	}

	if err := r.db.Save(activity).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrActivitySlugExists
		}
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

func (r *activityRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Activity{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// List returns activities newest first, optionally only the published ones
func (r *activityRepository) List(publishedOnly bool, offset, limit int) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	query := r.db.Model(&models.Activity{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, total, nil
}

// ListPublished returns every published activity, newest first
func (r *activityRepository) ListPublished(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).Where("is_published = ?", true).
		Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list published activities: %w", err)
	}
	return activities, nil
}

// SlugExists checks whether another activity already uses the slug
func (r *activityRepository) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&models.Activity{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check activity slug: %w", err)
	}
	return count > 0, nil
}

func (r *activityRepository) Count(ctx context.Context) (total, published int64, err error) {
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Activity{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count activities: %w", err)
	}
	if err := db.Model(&models.Activity{}).Where("is_published = ?", true).Count(&published).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count published activities: %w", err)
	}

	return total, published, nil
}
