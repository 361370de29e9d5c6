package reporting

import (
	"time"

	"charity-transparency/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fixedNow is mid June so the default window runs January to June 2025
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func namePtr(s string) *string {
	return &s
}

type donationOpt func(*models.Donation)

func newDonation(amount int64, opts ...donationOpt) models.Donation {
	d := models.Donation{
		ID:          uuid.New(),
		Amount:      decimal.NewFromInt(amount),
		Name:        namePtr(gofakeit.Name()),
		IsPublic:    true,
		IsConfirmed: true,
		CreatedAt:   fixedNow.AddDate(0, 0, -gofakeit.IntRange(0, 150)),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func named(name string) donationOpt {
	return func(d *models.Donation) { d.Name = namePtr(name) }
}

func anonymous() donationOpt {
	return func(d *models.Donation) { d.IsAnonymous = true }
}

func unconfirmed() donationOpt {
	return func(d *models.Donation) { d.IsConfirmed = false }
}

func private() donationOpt {
	return func(d *models.Donation) { d.IsPublic = false }
}

func donatedAt(t time.Time) donationOpt {
	return func(d *models.Donation) { d.CreatedAt = t }
}

func forActivity(activity *models.Activity) donationOpt {
	return func(d *models.Donation) {
		id := activity.ID
		d.ActivityID = &id
		d.Activity = activity
	}
}

type expenseOpt func(*models.Expense)

func newExpense(amount int64, opts ...expenseOpt) models.Expense {
	e := models.Expense{
		ID:        uuid.New(),
		Title:     gofakeit.Company() + " invoice",
		Amount:    decimal.NewFromInt(amount),
		Category:  models.CategoryProgram,
		CreatedAt: fixedNow.AddDate(0, 0, -gofakeit.IntRange(0, 150)),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func spentAt(t time.Time) expenseOpt {
	return func(e *models.Expense) { e.CreatedAt = t }
}

func category(c string) expenseOpt {
	return func(e *models.Expense) { e.Category = c }
}

func expenseFor(activityID uuid.UUID) expenseOpt {
	return func(e *models.Expense) {
		id := activityID
		e.ActivityID = &id
	}
}

func newActivity(title string) *models.Activity {
	return &models.Activity{
		ID:           uuid.New(),
		Title:        title,
		Slug:         models.Slugify(title),
		TargetAmount: decimal.NewFromInt(1000000),
		IsPublished:  true,
	}
}

func sumDonations(donations []models.Donation) decimal.Decimal {
	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.Amount)
	}
	return total
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
