package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDonationNotFound = errors.New("donation not found")

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepositoryInterface {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(donation *models.Donation) error {
	if donation == nil {
		return errors.New("donation cannot be nil")
	}

	if err := r.db.Create(donation).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// GetByID retrieves a donation with its activity
func (r *donationRepository) GetByID(id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.Preload("Activity").Where("id = ?", id).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return &donation, nil
}

func (r *donationRepository) Update(donation *models.Donation) error {
	if donation == nil {
		return errors.New("donation cannot be nil")
	}

	if err := r.db.Omit("Activity").Save(donation).Error; err != nil {
		return fmt.Errorf("failed to update donation: %w", err)
	}
	return nil
}

// List returns donations for the admin panel, newest first
func (r *donationRepository) List(filters models.DonationFilters, offset, limit int) ([]models.Donation, int64, error) {
	var donations []models.Donation
	var total int64

	query := r.db.Model(&models.Donation{})

	switch filters.Status {
	case models.DonationStatusConfirmed:
		query = query.Where("is_confirmed = ?", true)
	case models.DonationStatusRejected:
		query = query.Where("rejected_at IS NOT NULL")
	case models.DonationStatusPending:
		query = query.Where("is_confirmed = ? AND rejected_at IS NULL", false)
	}
	if filters.ActivityID != nil {
		query = query.Where("activity_id = ?", *filters.ActivityID)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	if err := query.Preload("Activity").Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}

	return donations, total, nil
}

// FetchForReport loads the confirmed donations a report may read. Only
// confirmed rows ever leave this query.
func (r *donationRepository) FetchForReport(ctx context.Context, filter models.ReportFilter) ([]models.Donation, error) {
	var donations []models.Donation

	query := r.db.WithContext(ctx).Preload("Activity").Where("is_confirmed = ?", true)
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filter.ActivityID != nil {
		query = query.Where("activity_id = ?", *filter.ActivityID)
	}

	if err := query.Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch donations for report: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("is_confirmed = ? AND rejected_at IS NULL", false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending donations: %w", err)
	}
	return count, nil
}

func (r *donationRepository) CountByActivity(activityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Donation{}).Where("activity_id = ?", activityID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count donations for activity: %w", err)
	}
	return count, nil
}
