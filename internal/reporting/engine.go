// Package reporting turns donation and expense snapshots into the published
// financial views. The engine does no I/O and keeps no mutable state, so a
// single Engine may be shared between goroutines.
package reporting

import (
	"errors"
	"log/slog"
	"time"

	"charity-transparency/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultMonths        = 6
	DefaultTimelineLimit = 50
)

type Engine struct {
	location      *time.Location
	months        int
	timelineLimit int
	now           func() time.Time
	logger        *slog.Logger
}

type Option func(*Engine)

// WithLocation sets the timezone used for month boundaries
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

func WithMonths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.months = n
		}
	}
}

func WithTimelineLimit(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.timelineLimit = n
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		location:      time.UTC,
		months:        DefaultMonths,
		timelineLimit: DefaultTimelineLimit,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.location
}

// Build computes the summary, the monthly series, the category breakdown and
// the timeline for one view. Malformed records are logged and skipped; an
// empty input yields a zeroed report.
func (e *Engine) Build(policy Policy, donations []models.Donation, expenses []models.Expense) *models.FinancialReport {
	now := e.now()
	set := policy.filter(donations, expenses)
	e.logSkipped(policy, set.skipped)

	window := MonthWindow(now, e.location, e.months)
	whole := aggregate(set.donations, set.expenses)
	monthly := aggregateMonthly(window, set.donations, set.expenses)

	return &models.FinancialReport{
		View:           policy.Name(),
		ActivityID:     policy.ActivityID,
		Timezone:       e.location.String(),
		Summary:        formatSummary(whole),
		Monthly:        formatMonthly(window, monthly),
		Categories:     formatCategories(whole),
		Timeline:       formatTimeline(set.donations, set.expenses, e.location, e.timelineLimit),
		SkippedRecords: len(set.skipped),
		GeneratedAt:    now.UTC(),
	}
}

// Campaigns computes per-activity totals for the given activities plus the
// general bucket of records without an activity. Donations made to
// activities missing from the list still count towards
// TotalCampaignDonations.
func (e *Engine) Campaigns(policy Policy, activities []models.Activity, donations []models.Donation, expenses []models.Expense) *models.CampaignStatsReport {
	set := policy.filter(donations, expenses)
	e.logSkipped(policy, set.skipped)

	byActivity := make(map[string]*totals, len(activities))
	general := newTotals()
	whole := newTotals()

	for i := range set.donations {
		d := &set.donations[i]
		whole.addDonation(d)
		if !d.IsCampaignDonation() {
			general.addDonation(d)
			continue
		}
		bucketFor(byActivity, d.ActivityID.String()).addDonation(d)
	}

	for i := range set.expenses {
		x := &set.expenses[i]
		if x.ActivityID == nil {
			general.addExpense(x)
			continue
		}
		bucketFor(byActivity, x.ActivityID.String()).addExpense(x)
	}

	report := &models.CampaignStatsReport{
		Campaigns:              make([]models.CampaignStats, 0, len(activities)),
		General:                campaignStats(nil, general),
		TotalCampaignDonations: whole.campaign,
		TotalGeneralDonations:  whole.general,
		GeneratedAt:            e.now().UTC(),
	}

	for i := range activities {
		activity := &activities[i]
		t, ok := byActivity[activity.ID.String()]
		if !ok {
			t = newTotals()
		}
		report.Campaigns = append(report.Campaigns, campaignStats(activity, t))
	}

	return report
}

func bucketFor(m map[string]*totals, key string) *totals {
	t, ok := m[key]
	if !ok {
		t = newTotals()
		m[key] = t
	}
	return t
}

func campaignStats(activity *models.Activity, t *totals) models.CampaignStats {
	stats := models.CampaignStats{
		Title:         generalDonationDescription,
		TargetAmount:  decimal.Zero,
		Collected:     t.donations,
		Spent:         t.expenses,
		Balance:       t.balance(),
		DonationCount: t.donationCount,
		ExpenseCount:  t.expenseCount,
		UniqueDonors:  t.uniqueDonors(),
		Progress:      decimal.Zero,
	}

	if activity != nil {
		id := activity.ID
		stats.ActivityID = &id
		stats.Title = activity.Title
		stats.Slug = activity.Slug
		stats.TargetAmount = activity.TargetAmount
		stats.Progress = activity.Progress(t.donations)
	}

	return stats
}

func (e *Engine) logSkipped(policy Policy, skipped []error) {
	for _, err := range skipped {
		var invalid *InvalidRecordError
		if !errors.As(err, &invalid) {
			e.logger.Warn("skipping record", "view", policy.Name(), "error", err)
			continue
		}
		e.logger.Warn("skipping invalid record",
			"view", policy.Name(),
			"record_type", invalid.RecordType,
			"record_id", invalid.RecordID,
			"reason", invalid.Reason)
	}
}
