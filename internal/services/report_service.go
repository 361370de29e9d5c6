package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charity-transparency/internal/models"
	"charity-transparency/internal/reporting"
	"charity-transparency/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrActivityNotFound = errors.New("activity not found")

// ReportService loads records for a view and runs them through the reporting engine
type ReportService struct {
	donationRepo repositories.DonationRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	activityRepo repositories.ActivityRepositoryInterface
	engine       *reporting.Engine
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewReportService(
	donationRepo repositories.DonationRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	engine *reporting.Engine,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &ReportService{
		donationRepo: donationRepo,
		expenseRepo:  expenseRepo,
		activityRepo: activityRepo,
		engine:       engine,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetTransparencyReport builds the public report over all public confirmed donations
func (s *ReportService) GetTransparencyReport(ctx context.Context) (*models.FinancialReport, error) {
	return s.buildReport(ctx, reporting.PublicPolicy())
}

// GetAdminReport builds the report over every confirmed donation
func (s *ReportService) GetAdminReport(ctx context.Context) (*models.FinancialReport, error) {
	return s.buildReport(ctx, reporting.AdminPolicy())
}

// GetCampaignStats returns per-activity totals for the published activities
func (s *ReportService) GetCampaignStats(ctx context.Context) (*models.CampaignStatsReport, error) {
	start := time.Now()
	policy := reporting.PublicPolicy()

	var activities []models.Activity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = s.activityRepo.ListPublished(gctx)
		return err
	})

	var donations []models.Donation
	var expenses []models.Expense
	g.Go(func() error {
		var err error
		donations, expenses, err = s.fetch(gctx, policy)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load campaign records: %w", err)
	}

	report := s.engine.Campaigns(policy, activities, donations, expenses)
	s.observe("campaigns", 0, start)

	return report, nil
}

// GetActivityStats returns the report of one published activity
func (s *ReportService) GetActivityStats(ctx context.Context, activityID uuid.UUID) (*models.ActivityStatsReport, error) {
	activity, err := s.activityRepo.GetByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if !activity.IsPublished {
		return nil, ErrActivityNotFound
	}

	start := time.Now()
	policy := reporting.ActivityPolicy(reporting.ViewPublic, activity.ID)

	donations, expenses, err := s.fetch(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity records: %w", err)
	}

	report := s.engine.Build(policy, donations, expenses)
	campaigns := s.engine.Campaigns(policy, []models.Activity{*activity}, donations, expenses)
	s.observe(policy.Name(), report.SkippedRecords, start)

	return &models.ActivityStatsReport{
		Activity: activity,
		Stats:    campaigns.Campaigns[0],
		Report:   report,
	}, nil
}

// GetAdminKPI combines the admin report with moderation and activity counters
func (s *ReportService) GetAdminKPI(ctx context.Context) (*models.AdminKPI, error) {
	var (
		report           *models.FinancialReport
		pending          int64
		total, published int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = s.buildReport(gctx, reporting.AdminPolicy())
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.donationRepo.CountPending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, published, err = s.activityRepo.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build admin KPI: %w", err)
	}

	return &models.AdminKPI{
		Report:                 report,
		PendingDonations:       pending,
		ActivityCount:          int(total),
		PublishedActivityCount: int(published),
	}, nil
}

func (s *ReportService) buildReport(ctx context.Context, policy reporting.Policy) (*models.FinancialReport, error) {
	start := time.Now()

	donations, expenses, err := s.fetch(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to load report records: %w", err)
	}

	report := s.engine.Build(policy, donations, expenses)
	s.observe(policy.Name(), report.SkippedRecords, start)

	return report, nil
}

// fetch loads donations and expenses for the policy in parallel
func (s *ReportService) fetch(ctx context.Context, policy reporting.Policy) ([]models.Donation, []models.Expense, error) {
	filter := policy.ReportFilter()

	var donations []models.Donation
	var expenses []models.Expense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		donations, err = s.donationRepo.FetchForReport(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.FetchForReport(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return donations, expenses, nil
}

func (s *ReportService) observe(view string, skipped int, start time.Time) {
	duration := time.Since(start)
	tags := map[string]string{"view": view}

	s.metrics.IncrementCounter(MetricReportGenerated, tags)
	s.metrics.RecordProcessingTime(MetricReportBuild, duration)
	if skipped > 0 {
		s.metrics.RecordGauge(MetricReportSkippedRecords, float64(skipped), tags)
	}

	s.logger.Debug("report generated",
		"view", view,
		"skipped_records", skipped,
		"duration_ms", duration.Milliseconds())
}
