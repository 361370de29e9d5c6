package reporting

import (
	"sort"
	"strings"
	"time"

	"charity-transparency/internal/models"

	"github.com/shopspring/decimal"
)

const (
	generalDonationDescription  = "General donation"
	campaignDonationDescription = "Campaign donation"
	donationForPrefix           = "Donation for: "
)

var hundred = decimal.NewFromInt(100)

func formatSummary(t *totals) models.ReportSummary {
	summary := models.ReportSummary{
		TotalDonations:        t.donations,
		TotalExpenses:         t.expenses,
		Balance:               t.balance(),
		DonationCount:         t.donationCount,
		ExpenseCount:          t.expenseCount,
		UniqueDonors:          t.uniqueDonors(),
		AverageDonation:       decimal.Zero,
		UtilizationRate:       decimal.Zero,
		CampaignDonations:     t.campaign,
		CampaignDonationCount: t.campaignCount,
		GeneralDonations:      t.general,
		GeneralDonationCount:  t.generalCount,
	}

	if t.donationCount > 0 {
		summary.AverageDonation = t.donations.Div(decimal.NewFromInt(int64(t.donationCount))).Round(2)
	}
	if t.donations.IsPositive() {
		summary.UtilizationRate = t.expenses.Div(t.donations).Mul(hundred).Round(2)
	}

	return summary
}

func formatMonthly(window []MonthSlot, buckets []*totals) []models.MonthlyBucket {
	series := make([]models.MonthlyBucket, len(window))
	running := decimal.Zero

	for i, slot := range window {
		b := buckets[i]
		running = running.Add(b.balance())
		series[i] = models.MonthlyBucket{
			Month:          slot.Label,
			MonthStart:     slot.Start,
			DonationTotal:  b.donations,
			ExpenseTotal:   b.expenses,
			Balance:        b.balance(),
			RunningBalance: running,
			DonationCount:  b.donationCount,
			ExpenseCount:   b.expenseCount,
		}
	}

	return series
}

// formatCategories rounds each category total to whole currency units.
// Ordering uses the exact sums: largest first, then by name.
func formatCategories(t *totals) []models.CategoryTotal {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := t.categories[names[i]].sum, t.categories[names[j]].sum
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})

	categories := make([]models.CategoryTotal, 0, len(names))
	for _, name := range names {
		acc := t.categories[name]
		share := decimal.Zero
		if t.expenses.IsPositive() {
			share = acc.sum.Div(t.expenses).Mul(hundred).Round(2)
		}
		categories = append(categories, models.CategoryTotal{
			Category:   name,
			Total:      acc.sum.Round(0),
			Count:      acc.count,
			Percentage: share,
		})
	}

	return categories
}

// formatTimeline interleaves donations and expenses, newest first. Equal
// timestamps put donations before expenses and then order by id so the
// output is stable for any input order.
func formatTimeline(donations []models.Donation, expenses []models.Expense, loc *time.Location, limit int) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(donations)+len(expenses))

	for i := range donations {
		d := &donations[i]
		entries = append(entries, models.TimelineEntry{
			ID:          d.ID,
			Type:        models.TimelineTypeDonation,
			Amount:      d.Amount,
			Description: donationDescription(d),
			Name:        d.PublicName(),
			ActivityID:  d.ActivityID,
			Date:        d.CreatedAt.In(loc),
		})
	}

	for i := range expenses {
		e := &expenses[i]
		entries = append(entries, models.TimelineEntry{
			ID:          e.ID,
			Type:        models.TimelineTypeExpense,
			Amount:      e.Amount.Neg(),
			Description: e.Title,
			Category:    e.NormalizedCategory(),
			ActivityID:  e.ActivityID,
			Date:        e.CreatedAt.In(loc),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Type != b.Type {
			return a.Type == models.TimelineTypeDonation
		}
		return a.ID.String() < b.ID.String()
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

func donationDescription(d *models.Donation) string {
	if !d.IsCampaignDonation() {
		return generalDonationDescription
	}
	if d.Activity == nil || strings.TrimSpace(d.Activity.Title) == "" {
		return campaignDonationDescription
	}
	return donationForPrefix + d.Activity.Title
}
