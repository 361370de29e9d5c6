package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TimelineTypeDonation = "donation"
	TimelineTypeExpense  = "expense"
)

// ReportSummary contains whole-range totals for a report view
type ReportSummary struct {
	TotalDonations        decimal.Decimal `json:"total_donations"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	Balance               decimal.Decimal `json:"balance"`
	DonationCount         int             `json:"donation_count"`
	ExpenseCount          int             `json:"expense_count"`
	UniqueDonors          int             `json:"unique_donors"`
	AverageDonation       decimal.Decimal `json:"average_donation"`
	UtilizationRate       decimal.Decimal `json:"utilization_rate"`
	CampaignDonations     decimal.Decimal `json:"campaign_donations"`
	CampaignDonationCount int             `json:"campaign_donation_count"`
	GeneralDonations      decimal.Decimal `json:"general_donations"`
	GeneralDonationCount  int             `json:"general_donation_count"`
}

// MonthlyBucket contains totals for one calendar month of the trailing window
type MonthlyBucket struct {
	Month          string          `json:"month"`
	MonthStart     time.Time       `json:"month_start"`
	DonationTotal  decimal.Decimal `json:"donation_total"`
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	Balance        decimal.Decimal `json:"balance"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	DonationCount  int             `json:"donation_count"`
	ExpenseCount   int             `json:"expense_count"`
}

// CategoryTotal contains expense data grouped by category
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TimelineEntry is one donation or expense in the combined transaction feed.
// Donations carry a positive amount, expenses a negative one.
type TimelineEntry struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Name        *string         `json:"name"`
	Category    string          `json:"category,omitempty"`
	ActivityID  *uuid.UUID      `json:"activity_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// FinancialReport is the full output of one report view
type FinancialReport struct {
	View           string          `json:"view"`
	ActivityID     *uuid.UUID      `json:"activity_id,omitempty"`
	Timezone       string          `json:"timezone"`
	Summary        ReportSummary   `json:"summary"`
	Monthly        []MonthlyBucket `json:"monthly"`
	Categories     []CategoryTotal `json:"categories"`
	Timeline       []TimelineEntry `json:"timeline"`
	SkippedRecords int             `json:"skipped_records"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// CampaignStats contains totals for a single activity, or for general
// donations when ActivityID is nil
type CampaignStats struct {
	ActivityID    *uuid.UUID      `json:"activity_id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	Collected     decimal.Decimal `json:"collected"`
	Spent         decimal.Decimal `json:"spent"`
	Balance       decimal.Decimal `json:"balance"`
	DonationCount int             `json:"donation_count"`
	ExpenseCount  int             `json:"expense_count"`
	UniqueDonors  int             `json:"unique_donors"`
	Progress      decimal.Decimal `json:"progress"`
}

// CampaignStatsReport lists per-campaign totals plus the general bucket
type CampaignStatsReport struct {
	Campaigns              []CampaignStats `json:"campaigns"`
	General                CampaignStats   `json:"general"`
	TotalCampaignDonations decimal.Decimal `json:"total_campaign_donations"`
	TotalGeneralDonations  decimal.Decimal `json:"total_general_donations"`
	GeneratedAt            time.Time       `json:"generated_at"`
}

// ActivityStatsReport is the public report of a single activity
type ActivityStatsReport struct {
	Activity *Activity        `json:"activity"`
	Stats    CampaignStats    `json:"stats"`
	Report   *FinancialReport `json:"report"`
}

// AdminKPI is the dashboard payload of the admin panel
type AdminKPI struct {
	Report                 *FinancialReport `json:"report"`
	PendingDonations       int64            `json:"pending_donations"`
	ActivityCount          int              `json:"activity_count"`
	PublishedActivityCount int              `json:"published_activity_count"`
}
