package services

import (
	"context"
	"time"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"

	"github.com/google/uuid"
)

// ReportServiceInterface exposes the report views built by the aggregation engine
type ReportServiceInterface interface {
	GetTransparencyReport(ctx context.Context) (*models.FinancialReport, error)
	GetAdminReport(ctx context.Context) (*models.FinancialReport, error)
	GetCampaignStats(ctx context.Context) (*models.CampaignStatsReport, error)
	GetActivityStats(ctx context.Context, activityID uuid.UUID) (*models.ActivityStatsReport, error)
	GetAdminKPI(ctx context.Context) (*models.AdminKPI, error)
}

// DonationServiceInterface defines donation intake and moderation
type DonationServiceInterface interface {
	SubmitDonation(ctx context.Context, req *dto.CreateDonationRequest) (*models.Donation, error)
	GetDonation(id uuid.UUID) (*models.Donation, error)
	ListDonations(filters models.DonationFilters, offset, limit int) ([]models.Donation, int64, error)
	ConfirmDonation(ctx context.Context, donationID, adminID uuid.UUID) (*models.Donation, error)
	RejectDonation(ctx context.Context, donationID uuid.UUID, reason string) (*models.Donation, error)
}

// ExpenseServiceInterface defines expense bookkeeping operations
type ExpenseServiceInterface interface {
	CreateExpense(req *dto.CreateExpenseRequest, recordedBy uuid.UUID) (*models.Expense, error)
	UpdateExpense(id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	DeleteExpense(id uuid.UUID) error
	GetExpense(id uuid.UUID) (*models.Expense, error)
	ListExpenses(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error)
}

// ActivityServiceInterface defines campaign management operations
type ActivityServiceInterface interface {
	CreateActivity(req *dto.CreateActivityRequest) (*models.Activity, error)
	UpdateActivity(id uuid.UUID, req *dto.UpdateActivityRequest) (*models.Activity, error)
	DeleteActivity(id uuid.UUID) error
	GetActivity(idOrSlug string, publishedOnly bool) (*models.Activity, error)
	ListActivities(publishedOnly bool, offset, limit int) ([]models.Activity, int64, error)
}

type AuthServiceInterface interface {
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken, ipAddress, userAgent string) error
	GetProfile(userID uuid.UUID) (*models.AdminUser, error)
	PurgeRevokedTokens(ctx context.Context) (int64, error)
}

// AuditServiceInterface records and lists admin actions
type AuditServiceInterface interface {
	Record(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(filters models.AuditLogFilters, offset, limit int) ([]models.AuditLog, int64, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.AdminUser) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// EventPublisherInterface sends donation lifecycle events to downstream consumers
type EventPublisherInterface interface {
	Publish(ctx context.Context, event *models.DonationEvent) error
	Close() error
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
