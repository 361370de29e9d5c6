package dto

import (
	"time"

	"charity-transparency/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest is the public donation intake form
type CreateDonationRequest struct {
	ActivityID    *uuid.UUID      `json:"activityId"`
	Amount        decimal.Decimal `json:"amount" validate:"required,positive_amount,money"`
	Name          string          `json:"name" validate:"max=255"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"omitempty,phone"`
	Message       string          `json:"message" validate:"max=1000"`
	PaymentMethod string          `json:"paymentMethod" validate:"max=50"`
	ProofURL      string          `json:"proofUrl" validate:"omitempty,url,max=500"`
	IsAnonymous   bool            `json:"isAnonymous"`
	IsPublic      *bool           `json:"isPublic"`
}

// RejectDonationRequest carries the reason shown in the admin panel
type RejectDonationRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ListDonationsRequest contains query parameters for the admin donation list
type ListDonationsRequest struct {
	Status     string `query:"status" validate:"omitempty,donation_status"`
	ActivityID string `query:"activityId" validate:"omitempty,uuid"`
	StartDate  string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Search     string `query:"search" validate:"max=100"`
	Offset     int    `query:"offset" validate:"min=0"`
	Limit      int    `query:"limit" validate:"min=0,max=100"`
}

// DonationResponse is the admin view of a donation. Contact details are
// only ever returned here.
type DonationResponse struct {
	ID              uuid.UUID       `json:"id"`
	ActivityID      *uuid.UUID      `json:"activityId,omitempty"`
	ActivityTitle   string          `json:"activityTitle,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Name            *string         `json:"name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Message         string          `json:"message,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ProofURL        string          `json:"proofUrl,omitempty"`
	IsAnonymous     bool            `json:"isAnonymous"`
	IsPublic        bool            `json:"isPublic"`
	Status          string          `json:"status"`
	ConfirmedAt     *time.Time      `json:"confirmedAt,omitempty"`
	RejectedAt      *time.Time      `json:"rejectedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DonationReceiptResponse is returned to the donor after submission
type DonationReceiptResponse struct {
	ID         uuid.UUID       `json:"id"`
	ActivityID *uuid.UUID      `json:"activityId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// DonationsListResponse represents a paginated list of donations
type DonationsListResponse struct {
	Donations []DonationResponse `json:"donations"`
	Total     int64              `json:"total"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// NewDonationResponse maps a donation to its admin representation
func NewDonationResponse(d *models.Donation) DonationResponse {
	resp := DonationResponse{
		ID:              d.ID,
		ActivityID:      d.ActivityID,
		Amount:          d.Amount,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		Message:         d.Message,
		PaymentMethod:   d.PaymentMethod,
		ProofURL:        d.ProofURL,
		IsAnonymous:     d.IsAnonymous,
		IsPublic:        d.IsPublic,
		Status:          d.Status(),
		ConfirmedAt:     d.ConfirmedAt,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
	}
	if d.Activity != nil {
		resp.ActivityTitle = d.Activity.Title
	}
	return resp
}

// NewDonationReceiptResponse maps a donation to the donor receipt
func NewDonationReceiptResponse(d *models.Donation) DonationReceiptResponse {
	return DonationReceiptResponse{
		ID:         d.ID,
		ActivityID: d.ActivityID,
		Amount:     d.Amount,
		Status:     d.Status(),
		CreatedAt:  d.CreatedAt,
	}
}
