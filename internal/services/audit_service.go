package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"
)

var (
	ErrInvalidAuditLog    = errors.New("invalid audit log")
	ErrInvalidAuditAction = errors.New("invalid audit action")
	ErrAuditDateRange     = errors.New("invalid date range: start date must be before end date")
)

// AuditService records admin actions and mirrors them to the structured log
type AuditService struct {
	repo   repositories.AuditLogRepositoryInterface
	logger *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface, logger *slog.Logger) AuditServiceInterface {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// Record stores an audit entry. The log line is written even when the
// database write fails so the action is never lost entirely.
func (s *AuditService) Record(ctx context.Context, log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}
	if !models.IsValidAuditAction(log.Action) {
		return fmt.Errorf("%w: %s", ErrInvalidAuditAction, log.Action)
	}

	adminID := ""
	if log.AdminUserID != nil {
		adminID = log.AdminUserID.String()
	}

	s.logger.InfoContext(ctx, "admin action",
		slog.String("event_type", log.Action),
		slog.String("resource", log.Resource),
		slog.String("resource_id", log.ResourceID),
		slog.String("admin_user_id", adminID),
		slog.String("ip_address", log.IPAddress),
		slog.String("trace_id", log.TraceID),
	)

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist audit log",
			"error", err,
			"event_type", log.Action,
			"resource_id", log.ResourceID,
		)
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// ListAuditLogs returns the audit trail for the admin panel, newest first
func (s *AuditService) ListAuditLogs(filters models.AuditLogFilters, offset, limit int) ([]models.AuditLog, int64, error) {
	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, 0, ErrAuditDateRange
	}
	if filters.Action != "" && !models.IsValidAuditAction(filters.Action) {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidAuditAction, filters.Action)
	}

	return s.repo.List(filters, offset, limit)
}
