package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditHandler exposes the admin audit trail
type AuditHandler struct {
	auditService services.AuditServiceInterface
}

func NewAuditHandler(auditService services.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns audit log entries, newest first
// @Summary List audit logs (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param action query string false "Action filter"
// @Param resource query string false "Resource filter"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.AuditLogsListResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 403 {object} errors.ErrorResponse "AUTH_005"
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	var req dto.ListAuditLogsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	adminUserID, err := parseOptionalUUID(req.AdminUserID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid admin user ID format"))
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	filters := models.AuditLogFilters{
		AdminUserID: adminUserID,
		Action:      strings.ToLower(strings.TrimSpace(req.Action)),
		Resource:    req.Resource,
		ResourceID:  strings.TrimSpace(req.ResourceID),
		StartDate:   startDate,
		EndDate:     endDate,
	}

	offset, limit := pageBounds(req.Offset, req.Limit)
	logs, total, err := h.auditService.ListAuditLogs(filters, offset, limit)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidAuditAction) || stderrors.Is(err, services.ErrAuditDateRange) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	resp := dto.AuditLogsListResponse{
		Logs:   make([]dto.AuditLogResponse, 0, len(logs)),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
	for i := range logs {
		resp.Logs = append(resp.Logs, dto.NewAuditLogResponse(&logs[i]))
	}

	return c.JSON(http.StatusOK, resp)
}
