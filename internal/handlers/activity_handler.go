package handlers

import (
	stderrors "errors"
	"net/http"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ActivityHandler serves public activity pages and admin activity management
type ActivityHandler struct {
	activityService services.ActivityServiceInterface
	auditService    services.AuditServiceInterface
}

func NewActivityHandler(activityService services.ActivityServiceInterface, auditService services.AuditServiceInterface) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		auditService:    auditService,
	}
}

// ListPublished lists published activities
// @Router /activities [get]
func (h *ActivityHandler) ListPublished(c echo.Context) error {
	return h.list(c, true)
}

// ListAll lists every activity including drafts
// @Security BearerAuth
// @Router /admin/activities [get]
func (h *ActivityHandler) ListAll(c echo.Context) error {
	return h.list(c, false)
}

func (h *ActivityHandler) list(c echo.Context, publishedOnly bool) error {
	var req dto.ListActivitiesRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	offset, limit := pageBounds(req.Offset, req.Limit)
	activities, total, err := h.activityService.ListActivities(publishedOnly, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ActivitiesListResponse{
		Activities: activities,
		Total:      total,
		Offset:     offset,
		Limit:      limit,
	})
}

// GetPublished returns a published activity by id or slug
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetPublished(c echo.Context) error {
	activity, err := h.activityService.GetActivity(c.Param("id"), true)
	if err != nil {
		if stderrors.Is(err, services.ErrActivityNotFound) {
			return SendError(c, errors.ActivityNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: activity})
}

// Create adds a new activity
// @Security BearerAuth
// @Router /admin/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	var req dto.CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	activity, err := h.activityService.CreateActivity(&req)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionActivityCreated, models.AuditResourceActivity, activity.ID.String(),
		models.JSONBMap{"slug": activity.Slug, "is_published": activity.IsPublished})

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    activity,
		Message: "Activity created successfully",
	})
}

// Update replaces the editable fields of an activity
// @Security BearerAuth
// @Router /admin/activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid activity ID format"))
	}

	var req dto.UpdateActivityRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	activity, err := h.activityService.UpdateActivity(id, &req)
	if err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionActivityUpdated, models.AuditResourceActivity, activity.ID.String(),
		models.JSONBMap{"slug": activity.Slug, "is_published": activity.IsPublished})

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    activity,
		Message: "Activity updated successfully",
	})
}

// Delete removes an activity without records
// @Security BearerAuth
// @Router /admin/activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails("Invalid activity ID format"))
	}

	if err := h.activityService.DeleteActivity(id); err != nil {
		return h.handleError(c, err)
	}

	recordAudit(c, h.auditService, models.AuditActionActivityDeleted, models.AuditResourceActivity, id.String(), nil)

	return c.NoContent(http.StatusNoContent)
}

func (h *ActivityHandler) handleError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrActivityNotFound):
		return SendError(c, errors.ActivityNotFound)
	case stderrors.Is(err, services.ErrActivitySlugTaken):
		return SendError(c, errors.ActivitySlugTaken)
	case stderrors.Is(err, services.ErrActivityHasRecords):
		return SendError(c, errors.ActivityHasRecords)
	case stderrors.Is(err, services.ErrActivityInvalidSlug),
		stderrors.Is(err, models.ErrActivityInvalidSlug),
		stderrors.Is(err, models.ErrActivityTitleRequired),
		stderrors.Is(err, models.ErrActivityTitleTooLong),
		stderrors.Is(err, models.ErrActivityNegativeGoal):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrActivityInvalidPeriod):
		return SendError(c, errors.ActivityInvalidPeriod)
	default:
		return SendSystemError(c, err)
	}
}
