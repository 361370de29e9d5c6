package dto

import (
	"time"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
)

// ListAuditLogsRequest represents query parameters for the audit trail
type ListAuditLogsRequest struct {
	AdminUserID string `query:"adminUserId" validate:"omitempty,uuid"`
	Action      string `query:"action" validate:"max=100"`
	Resource    string `query:"resource" validate:"omitempty,oneof=auth donation expense activity report"`
	ResourceID  string `query:"resourceId" validate:"max=255"`
	StartDate   string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Offset      int    `query:"offset" validate:"min=0"`
	Limit       int    `query:"limit" validate:"min=0,max=100"`
}

// AuditLogResponse represents an audit log entry
type AuditLogResponse struct {
	ID          uuid.UUID       `json:"id"`
	AdminUserID *uuid.UUID      `json:"adminUserId,omitempty"`
	Action      string          `json:"action"`
	Resource    string          `json:"resource"`
	ResourceID  string          `json:"resourceId,omitempty"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	UserAgent   string          `json:"userAgent,omitempty"`
	TraceID     string          `json:"traceId,omitempty"`
	Metadata    models.JSONBMap `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AuditLogsListResponse represents a paginated list of audit logs
type AuditLogsListResponse struct {
	Logs   []AuditLogResponse `json:"logs"`
	Total  int64              `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// NewAuditLogResponse maps an audit log to its API representation
func NewAuditLogResponse(log *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          log.ID,
		AdminUserID: log.AdminUserID,
		Action:      log.Action,
		Resource:    log.Resource,
		ResourceID:  log.ResourceID,
		IPAddress:   log.IPAddress,
		UserAgent:   log.UserAgent,
		TraceID:     log.TraceID,
		Metadata:    log.Metadata,
		CreatedAt:   log.CreatedAt,
	}
}
