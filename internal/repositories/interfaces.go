package repositories

import (
	"context"
	"time"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
)

// DonationRepositoryInterface defines the contract for donation repository operations
type DonationRepositoryInterface interface {
	Create(donation *models.Donation) error
	GetByID(id uuid.UUID) (*models.Donation, error)
	Update(donation *models.Donation) error
	List(filters models.DonationFilters, offset, limit int) ([]models.Donation, int64, error)
	FetchForReport(ctx context.Context, filter models.ReportFilter) ([]models.Donation, error)
	CountPending(ctx context.Context) (int64, error)
	CountByActivity(activityID uuid.UUID) (int64, error)
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id uuid.UUID) error
	List(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error)
	FetchForReport(ctx context.Context, filter models.ReportFilter) ([]models.Expense, error)
	CountByActivity(activityID uuid.UUID) (int64, error)
}

// ActivityRepositoryInterface defines the contract for activity repository operations
type ActivityRepositoryInterface interface {
	Create(activity *models.Activity) error
	GetByID(id uuid.UUID) (*models.Activity, error)
	GetBySlug(slug string) (*models.Activity, error)
	Update(activity *models.Activity) error
	Delete(id uuid.UUID) error
	List(publishedOnly bool, offset, limit int) ([]models.Activity, int64, error)
	ListPublished(ctx context.Context) ([]models.Activity, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	Count(ctx context.Context) (total, published int64, err error)
}

// AdminUserRepositoryInterface defines the contract for admin user repository operations
type AdminUserRepositoryInterface interface {
	Create(user *models.AdminUser) error
	GetByID(id uuid.UUID) (*models.AdminUser, error)
	GetByEmail(email string) (*models.AdminUser, error)
	UpdateLastLogin(id uuid.UUID, at time.Time) error
}

// AuditLogRepositoryInterface defines the contract for the admin audit trail
type AuditLogRepositoryInterface interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(filters models.AuditLogFilters, offset, limit int) ([]models.AuditLog, int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for revoked access tokens
type BlacklistedTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.BlacklistedToken) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
