package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DonationStatusPending   = "pending"
	DonationStatusConfirmed = "confirmed"
	DonationStatusRejected  = "rejected"

	MaxDonorNameLength = 255
)

var (
	ErrDonationAmountRequired   = errors.New("donation amount must be positive")
	ErrDonationNegativeAmount   = errors.New("donation amount cannot be negative")
	ErrDonorNameTooLong         = errors.New("donor name too long")
	ErrDonationAlreadyConfirmed = errors.New("donation is already confirmed")
	ErrDonationAlreadyRejected  = errors.New("donation is already rejected")
)

// Donation is a single gift received by the organisation. Only confirmed
// donations are ever counted in published figures.
type Donation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ActivityID      *uuid.UUID      `gorm:"type:uuid;index" json:"activity_id,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Name            *string         `gorm:"type:varchar(255)" json:"name"`
	Email           string          `gorm:"type:varchar(255)" json:"-"`
	Phone           string          `gorm:"type:varchar(50)" json:"-"`
	Message         string          `gorm:"type:text" json:"message,omitempty"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	ProofURL        string          `gorm:"type:varchar(500)" json:"proof_url,omitempty"`
	IsAnonymous     bool            `gorm:"not null" json:"is_anonymous"`
	IsPublic        bool            `gorm:"not null" json:"is_public"`
	IsConfirmed     bool            `gorm:"not null;index" json:"is_confirmed"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	ConfirmedBy     *uuid.UUID      `gorm:"type:uuid" json:"confirmed_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}

// BeforeCreate hook for Donation
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = now
	}

	d.scrubAnonymousName()

	return d.Validate()
}

// BeforeUpdate hook for Donation
func (d *Donation) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return d.Validate()
}

// Validate checks the fields required at ingestion time
func (d *Donation) Validate() error {
	if d.Amount.IsNegative() {
		return ErrDonationNegativeAmount
	}

	if !d.Amount.IsPositive() {
		return ErrDonationAmountRequired
	}

	if d.Name != nil && len(*d.Name) > MaxDonorNameLength {
		return ErrDonorNameTooLong
	}

	return nil
}

// Status derives the lifecycle state from the confirmation fields
func (d *Donation) Status() string {
	switch {
	case d.IsConfirmed:
		return DonationStatusConfirmed
	case d.RejectedAt != nil:
		return DonationStatusRejected
	default:
		return DonationStatusPending
	}
}

// IsPending returns true while an administrator has not yet acted on the donation
func (d *Donation) IsPending() bool {
	return d.Status() == DonationStatusPending
}

// Confirm marks the donation as verified by an administrator
func (d *Donation) Confirm(adminID uuid.UUID, at time.Time) error {
	switch d.Status() {
	case DonationStatusConfirmed:
		return ErrDonationAlreadyConfirmed
	case DonationStatusRejected:
		return ErrDonationAlreadyRejected
	}

	d.IsConfirmed = true
	d.ConfirmedAt = &at
	d.ConfirmedBy = &adminID
	return nil
}

// Reject marks the donation as not received. A rejected donation stays in
// storage but never counts towards any total.
func (d *Donation) Reject(reason string, at time.Time) error {
	switch d.Status() {
	case DonationStatusConfirmed:
		return ErrDonationAlreadyConfirmed
	case DonationStatusRejected:
		return ErrDonationAlreadyRejected
	}

	d.IsConfirmed = false
	d.RejectedAt = &at
	d.RejectionReason = strings.TrimSpace(reason)
	return nil
}

// PublicName returns the donor name that may be shown outside the admin
// panel. Anonymous donors never have a public name.
func (d *Donation) PublicName() *string {
	if d.IsAnonymous || d.Name == nil {
		return nil
	}

	name := strings.TrimSpace(*d.Name)
	if name == "" {
		return nil
	}
	return &name
}

// IsCampaignDonation reports whether the donation was made for an activity
func (d *Donation) IsCampaignDonation() bool {
	return d.ActivityID != nil && *d.ActivityID != uuid.Nil
}

// TableName returns the table name for Donation
func (d *Donation) TableName() string {
	return "donations"
}

// scrubAnonymousName drops blank names so that they are stored as NULL
func (d *Donation) scrubAnonymousName() {
	if d.Name == nil {
		return
	}
	if strings.TrimSpace(*d.Name) == "" {
		d.Name = nil
	}
}
