package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxExpenseTitleLength = 255

var (
	ErrExpenseTitleRequired  = errors.New("expense title is required")
	ErrExpenseTitleTooLong   = errors.New("expense title too long")
	ErrExpenseAmountRequired = errors.New("expense amount must be positive")
	ErrExpenseNegativeAmount = errors.New("expense amount cannot be negative")
)

// Expense is money paid out by the organisation, optionally for a specific activity
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ActivityID  *uuid.UUID      `gorm:"type:uuid;index" json:"activity_id,omitempty"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	ReceiptURL  string          `gorm:"type:varchar(500)" json:"receipt_url,omitempty"`
	RecordedBy  *uuid.UUID      `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	e.Title = strings.TrimSpace(e.Title)
	e.Category = NormalizeCategory(e.Category)

	return e.Validate()
}

// BeforeUpdate hook for Expense
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	e.Category = NormalizeCategory(e.Category)
	return e.Validate()
}

// Validate validates the expense fields
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrExpenseTitleRequired
	}

	if len(e.Title) > MaxExpenseTitleLength {
		return ErrExpenseTitleTooLong
	}

	if e.Amount.IsNegative() {
		return ErrExpenseNegativeAmount
	}

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountRequired
	}

	return nil
}

// NormalizedCategory returns the reporting category of the expense
func (e *Expense) NormalizedCategory() string {
	return NormalizeCategory(e.Category)
}

// TableName returns the table name for Expense
func (e *Expense) TableName() string {
	return "expenses"
}
