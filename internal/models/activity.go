package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxActivityTitleLength = 200

var (
	ErrActivityTitleRequired = errors.New("activity title is required")
	ErrActivityTitleTooLong  = errors.New("activity title too long")
	ErrActivityInvalidSlug   = errors.New("activity slug must contain only lowercase letters, digits and dashes")
	ErrActivityNegativeGoal  = errors.New("activity target amount cannot be negative")
	ErrActivityInvalidPeriod = errors.New("activity end date is before start date")

	slugRegex      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunes   = regexp.MustCompile(`[^a-z0-9]+`)
	hundredPercent = decimal.NewFromInt(100)
)

// Activity is a fundraising campaign or program that donations and expenses can be attached to
type Activity struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title        string          `gorm:"type:varchar(200);not null" json:"title"`
	Slug         string          `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Location     string          `gorm:"type:varchar(255)" json:"location,omitempty"`
	ImageURL     string          `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	IsPublished  bool            `gorm:"not null;index" json:"is_published"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Activity
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	a.Title = strings.TrimSpace(a.Title)
	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
	}

	return a.Validate()
}

// BeforeUpdate hook for Activity
func (a *Activity) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrActivityTitleRequired
	}

	if len(a.Title) > MaxActivityTitleLength {
		return ErrActivityTitleTooLong
	}

	if !slugRegex.MatchString(a.Slug) {
		return ErrActivityInvalidSlug
	}

	if a.TargetAmount.IsNegative() {
		return ErrActivityNegativeGoal
	}

	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return ErrActivityInvalidPeriod
	}

	return nil
}

// Progress returns the collected amount as a percentage of the target, rounded
// to two decimals. Activities without a target report 0.
func (a *Activity) Progress(collected decimal.Decimal) decimal.Decimal {
	if !a.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return collected.Div(a.TargetAmount).Mul(hundredPercent).Round(2)
}

// IsActiveAt reports whether t falls inside the activity period. Open ended
// periods are treated as unbounded on that side.
func (a *Activity) IsActiveAt(t time.Time) bool {
	if a.StartDate != nil && t.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && t.After(*a.EndDate) {
		return false
	}
	return true
}

// TableName returns the table name for Activity
func (a *Activity) TableName() string {
	return "activities"
}

// Slugify turns a title into a URL friendly slug
func Slugify(title string) string {
	slug := nonSlugRunes.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	return strings.Trim(slug, "-")
}
