package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"charity-transparency/internal/errors"
	"charity-transparency/internal/export"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReportHandler serves the public transparency views and the admin dashboard
type ReportHandler struct {
	reportService services.ReportServiceInterface
	auditService  services.AuditServiceInterface
	logger        *slog.Logger
}

func NewReportHandler(reportService services.ReportServiceInterface, auditService services.AuditServiceInterface, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		auditService:  auditService,
		logger:        logger,
	}
}

// GetTransparency returns the public financial report
// @Summary Public transparency report
// @Tags Reports
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.FinancialReport}
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001"
// @Router /transparency [get]
func (h *ReportHandler) GetTransparency(c echo.Context) error {
	report, err := h.reportService.GetTransparencyReport(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

// GetCampaignStats returns totals for every published activity
// @Router /campaigns/stats [get]
func (h *ReportHandler) GetCampaignStats(c echo.Context) error {
	stats, err := h.reportService.GetCampaignStats(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: stats})
}

// GetActivityStats returns the report of one published activity
// @Router /activities/{id}/stats [get]
func (h *ReportHandler) GetActivityStats(c echo.Context) error {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid activity ID format"))
	}

	stats, err := h.reportService.GetActivityStats(c.Request().Context(), activityID)
	if err != nil {
		if stderrors.Is(err, services.ErrActivityNotFound) {
			return SendError(c, errors.ActivityNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: stats})
}

// GetAdminKPI returns the admin dashboard figures
// @Security BearerAuth
// @Router /admin/kpi [get]
func (h *ReportHandler) GetAdminKPI(c echo.Context) error {
	kpi, err := h.reportService.GetAdminKPI(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: kpi})
}

// ExportAdminReport streams the admin report as an XLSX workbook
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /admin/reports/transparency.xlsx [get]
func (h *ReportHandler) ExportAdminReport(c echo.Context) error {
	report, err := h.reportService.GetAdminReport(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteFinancialReportXLSX(&buf, report); err != nil {
		h.logger.Error("failed to export report", "error", err, "trace_id", getTraceID(c))
		return SendError(c, errors.ReportExportFailed)
	}

	filename := fmt.Sprintf("transparency-%s.xlsx", report.GeneratedAt.Format("2006-01-02"))
	recordAudit(c, h.auditService, models.AuditActionReportExported, models.AuditResourceReport, filename, nil)

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
