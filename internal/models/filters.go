package models

import (
	"time"

	"github.com/google/uuid"
)

// DonationFilters contains filtering options for admin donation listings
type DonationFilters struct {
	Status     string
	ActivityID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// ExpenseFilters contains filtering options for expense listings
type ExpenseFilters struct {
	Category   string
	ActivityID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ReportFilter is the database-side pre-filter applied before records reach
// the reporting engine. Confirmation gating is always applied for donations.
type ReportFilter struct {
	PublicOnly bool
	ActivityID *uuid.UUID
}
