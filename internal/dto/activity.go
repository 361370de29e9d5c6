package dto

import (
	"time"

	"charity-transparency/internal/models"

	"github.com/shopspring/decimal"
)

// CreateActivityRequest contains the fields of a new activity
type CreateActivityRequest struct {
	Title        string          `json:"title" validate:"required,min=1,max=200"`
	Slug         string          `json:"slug" validate:"omitempty,slug,max=220"`
	Description  string          `json:"description" validate:"max=5000"`
	Location     string          `json:"location" validate:"max=255"`
	ImageURL     string          `json:"imageUrl" validate:"omitempty,url,max=500"`
	TargetAmount decimal.Decimal `json:"targetAmount" validate:"money"`
	IsPublished  bool            `json:"isPublished"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
}

// UpdateActivityRequest replaces the editable fields of an activity
type UpdateActivityRequest struct {
	Title        string          `json:"title" validate:"required,min=1,max=200"`
	Slug         string          `json:"slug" validate:"omitempty,slug,max=220"`
	Description  string          `json:"description" validate:"max=5000"`
	Location     string          `json:"location" validate:"max=255"`
	ImageURL     string          `json:"imageUrl" validate:"omitempty,url,max=500"`
	TargetAmount decimal.Decimal `json:"targetAmount" validate:"money"`
	IsPublished  bool            `json:"isPublished"`
	StartDate    *time.Time      `json:"startDate"`
	EndDate      *time.Time      `json:"endDate"`
}

// ListActivitiesRequest contains pagination parameters for activity listings
type ListActivitiesRequest struct {
	Offset int `query:"offset" validate:"min=0"`
	Limit  int `query:"limit" validate:"min=0,max=100"`
}

// ActivitiesListResponse represents a paginated list of activities
type ActivitiesListResponse struct {
	Activities []models.Activity `json:"activities"`
	Total      int64             `json:"total"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}
