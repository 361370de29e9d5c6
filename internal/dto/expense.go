package dto

import (
	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest contains the fields of a new expense
type CreateExpenseRequest struct {
	ActivityID  *uuid.UUID      `json:"activityId"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,positive_amount,money"`
	Category    string          `json:"category" validate:"max=100"`
	Description string          `json:"description" validate:"max=2000"`
	ReceiptURL  string          `json:"receiptUrl" validate:"omitempty,url,max=500"`
}

// UpdateExpenseRequest replaces the editable fields of an expense
type UpdateExpenseRequest struct {
	ActivityID  *uuid.UUID      `json:"activityId"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,positive_amount,money"`
	Category    string          `json:"category" validate:"max=100"`
	Description string          `json:"description" validate:"max=2000"`
	ReceiptURL  string          `json:"receiptUrl" validate:"omitempty,url,max=500"`
}

// ListExpensesRequest contains query parameters for listing expenses
type ListExpensesRequest struct {
	Category   string `query:"category" validate:"max=100"`
	ActivityID string `query:"activityId" validate:"omitempty,uuid"`
	StartDate  string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Offset     int    `query:"offset" validate:"min=0"`
	Limit      int    `query:"limit" validate:"min=0,max=100"`
}

// ExpensesListResponse represents a paginated list of expenses
type ExpensesListResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Total    int64            `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}
