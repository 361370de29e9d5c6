package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DonationHandler handles the public donation form and admin moderation
type DonationHandler struct {
	donationService services.DonationServiceInterface
	auditService    services.AuditServiceInterface
}

func NewDonationHandler(donationService services.DonationServiceInterface, auditService services.AuditServiceInterface) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		auditService:    auditService,
	}
}

// Submit records a pending donation
// @Summary Submit a donation
// @Tags Donations
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequest true "Donation"
// @Success 201 {object} SuccessResponse{data=dto.DonationReceiptResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 404 {object} errors.ErrorResponse "ACTIVITY_001"
// @Failure 422 {object} errors.ErrorResponse "DONATION_004"
// @Router /donations [post]
func (h *DonationHandler) Submit(c echo.Context) error {
	var req dto.CreateDonationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	donation, err := h.donationService.SubmitDonation(c.Request().Context(), &req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewDonationReceiptResponse(donation),
		Message: "Thank you. Your donation will appear once it has been confirmed.",
	})
}

// List returns donations for the admin panel, newest first
// @Security BearerAuth
// @Router /admin/donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	var req dto.ListDonationsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	activityID, err := parseOptionalUUID(req.ActivityID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid activity ID format"))
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	filters := models.DonationFilters{
		Status:     strings.ToLower(req.Status),
		ActivityID: activityID,
		StartDate:  startDate,
		EndDate:    endDate,
		Search:     strings.TrimSpace(req.Search),
	}

	offset, limit := pageBounds(req.Offset, req.Limit)
	donations, total, err := h.donationService.ListDonations(filters, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	resp := dto.DonationsListResponse{
		Donations: make([]dto.DonationResponse, 0, len(donations)),
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	}
	for i := range donations {
		resp.Donations = append(resp.Donations, dto.NewDonationResponse(&donations[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

// Get returns a single donation with contact details
// @Security BearerAuth
// @Router /admin/donations/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid donation ID format"))
	}

	donation, err := h.donationService.GetDonation(id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewDonationResponse(donation)})
}

// Confirm marks a pending donation as received
// @Security BearerAuth
// @Router /admin/donations/{id}/confirm [post]
func (h *DonationHandler) Confirm(c echo.Context) error {
	adminID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid donation ID format"))
	}

	donation, err := h.donationService.ConfirmDonation(c.Request().Context(), id, adminID)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionDonationConfirm, models.AuditResourceDonation, donation.ID.String(),
		models.JSONBMap{"amount": donation.Amount.StringFixed(2)})

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewDonationResponse(donation),
		Message: "Donation confirmed",
	})
}

// Reject marks a pending donation as not received
// @Security BearerAuth
// @Router /admin/donations/{id}/reject [post]
func (h *DonationHandler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid donation ID format"))
	}

	var req dto.RejectDonationRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	donation, err := h.donationService.RejectDonation(c.Request().Context(), id, req.Reason)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionDonationReject, models.AuditResourceDonation, donation.ID.String(),
		models.JSONBMap{"reason": req.Reason})

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewDonationResponse(donation),
		Message: "Donation rejected",
	})
}

func (h *DonationHandler) handleError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrDonationNotFound):
		return SendError(c, errors.DonationNotFound)
	case stderrors.Is(err, services.ErrDonationAlreadyProcessed):
		return SendError(c, errors.DonationAlreadyProcessed)
	case stderrors.Is(err, services.ErrActivityNotFound):
		return SendError(c, errors.ActivityNotFound)
	case stderrors.Is(err, services.ErrActivityNotAccepting):
		return SendError(c, errors.DonationActivityClosed)
	case stderrors.Is(err, models.ErrDonationAmountRequired), stderrors.Is(err, models.ErrDonationNegativeAmount):
		return SendError(c, errors.DonationInvalidAmount)
	case stderrors.Is(err, models.ErrDonorNameTooLong):
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
