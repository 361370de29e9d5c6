package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	apperrors "charity-transparency/internal/errors"
	"charity-transparency/internal/export"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"
	"charity-transparency/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ReportHandlerSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	reportService *service_mocks.MockReportServiceInterface
	auditService  *service_mocks.MockAuditServiceInterface
	handler       *ReportHandler
	e             *echo.Echo
}

func TestReportHandler(t *testing.T) {
	suite.Run(t, new(ReportHandlerSuite))
}

func (s *ReportHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reportService = service_mocks.NewMockReportServiceInterface(s.ctrl)
	s.auditService = service_mocks.NewMockAuditServiceInterface(s.ctrl)
	s.handler = NewReportHandler(s.reportService, s.auditService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.e = newTestEcho()
}

func (s *ReportHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReportHandlerSuite) report() *models.FinancialReport {
	return &models.FinancialReport{
		View:     "public",
		Timezone: "UTC",
		Summary: models.ReportSummary{
			TotalDonations: decimal.NewFromInt(500000),
			TotalExpenses:  decimal.NewFromInt(200000),
			Balance:        decimal.NewFromInt(300000),
			DonationCount:  3,
		},
		Monthly:     []models.MonthlyBucket{},
		Categories:  []models.CategoryTotal{},
		Timeline:    []models.TimelineEntry{},
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ReportHandlerSuite) TestGetTransparency() {
	s.reportService.EXPECT().GetTransparencyReport(gomock.Any()).Return(s.report(), nil)

	c, rec := newGetContext(s.e, "/api/v1/transparency")
	s.Require().NoError(s.handler.GetTransparency(c))

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Data models.FinancialReport `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.True(body.Data.Summary.Balance.Equal(decimal.NewFromInt(300000)))
	s.Equal(3, body.Data.Summary.DonationCount)
}

func (s *ReportHandlerSuite) TestGetTransparency_ServiceError() {
	s.reportService.EXPECT().GetTransparencyReport(gomock.Any()).Return(nil, errors.New("db down"))

	c, rec := newGetContext(s.e, "/api/v1/transparency")
	s.Require().NoError(s.handler.GetTransparency(c))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(apperrors.SystemInternalError), decodeError(rec).Error.Code)
	s.NotContains(rec.Body.String(), "db down")
}

func (s *ReportHandlerSuite) TestGetCampaignStats() {
	s.reportService.EXPECT().GetCampaignStats(gomock.Any()).Return(&models.CampaignStatsReport{
		Campaigns: []models.CampaignStats{{Title: "Wells", Collected: decimal.NewFromInt(1000)}},
	}, nil)

	c, rec := newGetContext(s.e, "/api/v1/campaigns/stats")
	s.Require().NoError(s.handler.GetCampaignStats(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"Wells"`)
}

func (s *ReportHandlerSuite) TestGetActivityStats() {
	id := uuid.New()
	s.reportService.EXPECT().GetActivityStats(gomock.Any(), id).Return(&models.ActivityStatsReport{
		Activity: &models.Activity{ID: id, Title: "Clinic"},
		Report:   s.report(),
	}, nil)

	c, rec := newGetContext(s.e, "/api/v1/activities/"+id.String()+"/stats")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.Require().NoError(s.handler.GetActivityStats(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Clinic")
}

func (s *ReportHandlerSuite) TestGetActivityStats_InvalidID() {
	c, rec := newGetContext(s.e, "/api/v1/activities/nope/stats")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	s.Require().NoError(s.handler.GetActivityStats(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apperrors.ValidationInvalidID), decodeError(rec).Error.Code)
}

func (s *ReportHandlerSuite) TestGetActivityStats_NotFound() {
	id := uuid.New()
	s.reportService.EXPECT().GetActivityStats(gomock.Any(), id).Return(nil, services.ErrActivityNotFound)

	c, rec := newGetContext(s.e, "/")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.Require().NoError(s.handler.GetActivityStats(c))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apperrors.ActivityNotFound), decodeError(rec).Error.Code)
}

func (s *ReportHandlerSuite) TestGetAdminKPI() {
	s.reportService.EXPECT().GetAdminKPI(gomock.Any()).Return(&models.AdminKPI{
		Report:           s.report(),
		PendingDonations: 7,
	}, nil)

	c, rec := newGetContext(s.e, "/api/v1/admin/kpi")
	s.Require().NoError(s.handler.GetAdminKPI(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"pending_donations":7`)
}

func (s *ReportHandlerSuite) TestExportAdminReport() {
	report := s.report()
	report.View = "admin"
	s.reportService.EXPECT().GetAdminReport(gomock.Any()).Return(report, nil)
	s.auditService.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *models.AuditLog) error {
		s.Equal(models.AuditActionReportExported, log.Action)
		s.Equal("transparency-2025-06-01.xlsx", log.ResourceID)
		return nil
	})

	c, rec := newGetContext(s.e, "/api/v1/admin/reports/transparency.xlsx")
	s.Require().NoError(s.handler.ExportAdminReport(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(export.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "transparency-2025-06-01.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	s.Require().NoError(err)
	defer f.Close()
	s.Equal([]string{export.SheetSummary, export.SheetMonthly, export.SheetCategories, export.SheetTimeline}, f.GetSheetList())
}
