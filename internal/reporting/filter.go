package reporting

import (
	"charity-transparency/internal/models"

	"github.com/google/uuid"
)

const (
	ViewPublic = "public"
	ViewAdmin  = "admin"
)

// Policy selects which records take part in a report. Any view other than
// ViewAdmin is treated as public.
type Policy struct {
	View       string
	ActivityID *uuid.UUID
}

func PublicPolicy() Policy {
	return Policy{View: ViewPublic}
}

func AdminPolicy() Policy {
	return Policy{View: ViewAdmin}
}

// ActivityPolicy narrows a view down to a single activity
func ActivityPolicy(view string, activityID uuid.UUID) Policy {
	id := activityID
	return Policy{View: view, ActivityID: &id}
}

// IsAdmin reports whether non-public donations are included
func (p Policy) IsAdmin() bool {
	return p.View == ViewAdmin
}

// Name is the label stored on generated reports
func (p Policy) Name() string {
	if p.IsAdmin() {
		return ViewAdmin
	}
	return ViewPublic
}

// ReportFilter converts the policy into the database-side pre-filter
func (p Policy) ReportFilter() models.ReportFilter {
	return models.ReportFilter{
		PublicOnly: !p.IsAdmin(),
		ActivityID: p.ActivityID,
	}
}

func (p Policy) includesDonation(d *models.Donation) bool {
	if !d.IsConfirmed {
		return false
	}
	if !p.IsAdmin() && !d.IsPublic {
		return false
	}
	return p.matchesActivity(d.ActivityID)
}

func (p Policy) includesExpense(e *models.Expense) bool {
	return p.matchesActivity(e.ActivityID)
}

func (p Policy) matchesActivity(activityID *uuid.UUID) bool {
	if p.ActivityID == nil {
		return true
	}
	return activityID != nil && *activityID == *p.ActivityID
}

// ValidateDonation returns an *InvalidRecordError when the donation cannot be counted
func ValidateDonation(d *models.Donation) error {
	switch {
	case d.ID == uuid.Nil:
		return &InvalidRecordError{RecordType: RecordTypeDonation, Reason: "missing id"}
	case d.CreatedAt.IsZero():
		return &InvalidRecordError{RecordType: RecordTypeDonation, RecordID: d.ID, Reason: "missing timestamp"}
	case d.Amount.IsNegative():
		return &InvalidRecordError{RecordType: RecordTypeDonation, RecordID: d.ID, Reason: "negative amount"}
	}
	return nil
}

// ValidateExpense returns an *InvalidRecordError when the expense cannot be counted
func ValidateExpense(e *models.Expense) error {
	switch {
	case e.ID == uuid.Nil:
		return &InvalidRecordError{RecordType: RecordTypeExpense, Reason: "missing id"}
	case e.CreatedAt.IsZero():
		return &InvalidRecordError{RecordType: RecordTypeExpense, RecordID: e.ID, Reason: "missing timestamp"}
	case e.Amount.IsNegative():
		return &InvalidRecordError{RecordType: RecordTypeExpense, RecordID: e.ID, Reason: "negative amount"}
	}
	return nil
}

type filtered struct {
	donations []models.Donation
	expenses  []models.Expense
	skipped   []error
}

// filter applies the policy first and validation second, so records outside
// the view never show up as skipped. Returned donations are copies with the
// name removed when the donor asked to stay anonymous.
func (p Policy) filter(donations []models.Donation, expenses []models.Expense) filtered {
	out := filtered{
		donations: make([]models.Donation, 0, len(donations)),
		expenses:  make([]models.Expense, 0, len(expenses)),
	}

	for i := range donations {
		d := &donations[i]
		if !p.includesDonation(d) {
			continue
		}
		if err := ValidateDonation(d); err != nil {
			out.skipped = append(out.skipped, err)
			continue
		}

		donation := *d
		if donation.IsAnonymous {
			donation.Name = nil
		}
		out.donations = append(out.donations, donation)
	}

	for i := range expenses {
		e := &expenses[i]
		if !p.includesExpense(e) {
			continue
		}
		if err := ValidateExpense(e); err != nil {
			out.skipped = append(out.skipped, err)
			continue
		}
		out.expenses = append(out.expenses, *e)
	}

	return out
}
