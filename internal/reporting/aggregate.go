package reporting

import (
	"strings"

	"charity-transparency/internal/models"

	"github.com/shopspring/decimal"
)

type categoryTotals struct {
	sum   decimal.Decimal
	count int
}

// totals accumulates exact sums over a filtered record set. Nothing is
// rounded here.
type totals struct {
	donations     decimal.Decimal
	expenses      decimal.Decimal
	donationCount int
	expenseCount  int
	donors        map[string]struct{}

	campaign      decimal.Decimal
	campaignCount int
	general       decimal.Decimal
	generalCount  int

	categories map[string]*categoryTotals
}

func newTotals() *totals {
	return &totals{
		donations:  decimal.Zero,
		expenses:   decimal.Zero,
		campaign:   decimal.Zero,
		general:    decimal.Zero,
		donors:     make(map[string]struct{}),
		categories: make(map[string]*categoryTotals),
	}
}

func (t *totals) addDonation(d *models.Donation) {
	t.donations = t.donations.Add(d.Amount)
	t.donationCount++

	if !d.IsAnonymous && d.Name != nil {
		if name := strings.TrimSpace(*d.Name); name != "" {
			t.donors[name] = struct{}{}
		}
	}

	// The split only ever covers public donations, whatever the view admits.
	if !d.IsPublic {
		return
	}
	if d.IsCampaignDonation() {
		t.campaign = t.campaign.Add(d.Amount)
		t.campaignCount++
	} else {
		t.general = t.general.Add(d.Amount)
		t.generalCount++
	}
}

func (t *totals) addExpense(e *models.Expense) {
	t.expenses = t.expenses.Add(e.Amount)
	t.expenseCount++

	category := models.NormalizeCategory(e.Category)
	acc, ok := t.categories[category]
	if !ok {
		acc = &categoryTotals{sum: decimal.Zero}
		t.categories[category] = acc
	}
	acc.sum = acc.sum.Add(e.Amount)
	acc.count++
}

func (t *totals) balance() decimal.Decimal {
	return t.donations.Sub(t.expenses)
}

func (t *totals) uniqueDonors() int {
	return len(t.donors)
}

func aggregate(donations []models.Donation, expenses []models.Expense) *totals {
	t := newTotals()
	for i := range donations {
		t.addDonation(&donations[i])
	}
	for i := range expenses {
		t.addExpense(&expenses[i])
	}
	return t
}

// aggregateMonthly spreads records over the window. Records outside it are ignored.
func aggregateMonthly(window []MonthSlot, donations []models.Donation, expenses []models.Expense) []*totals {
	buckets := make([]*totals, len(window))
	for i := range buckets {
		buckets[i] = newTotals()
	}

	for i := range donations {
		if idx := slotIndex(window, donations[i].CreatedAt); idx >= 0 {
			buckets[idx].addDonation(&donations[i])
		}
	}
	for i := range expenses {
		if idx := slotIndex(window, expenses[i].CreatedAt); idx >= 0 {
			buckets[idx].addExpense(&expenses[i])
		}
	}

	return buckets
}
