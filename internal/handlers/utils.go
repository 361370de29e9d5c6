package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"charity-transparency/internal/models"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	dateParamLayout  = "2006-01-02"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext returns the admin id stored by the auth middleware
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// recordAudit writes an audit trail entry for the signed in admin. A failed
// write is logged and never fails the request.
func recordAudit(c echo.Context, auditService services.AuditServiceInterface, action, resource, resourceID string, metadata models.JSONBMap) {
	if auditService == nil {
		return
	}

	log := &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  getClientIP(c),
		UserAgent:  c.Request().UserAgent(),
		TraceID:    getTraceID(c),
		Metadata:   metadata,
	}
	if adminID, err := getUserIDFromContext(c); err == nil {
		log.AdminUserID = &adminID
	}

	if err := auditService.Record(c.Request().Context(), log); err != nil {
		slog.WarnContext(c.Request().Context(), "failed to record audit log",
			"error", err, "action", action, "resource_id", resourceID, "trace_id", log.TraceID)
	}
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// pageBounds clamps offset and limit to the supported range
func pageBounds(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

// getClientIP defers to the echo IPExtractor, which only honours forwarding
// headers from trusted proxies.
func getClientIP(c echo.Context) string {
	return c.RealIP()
}

// parseOptionalUUID parses an optional id query value
func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDateRange turns YYYY-MM-DD bounds into an inclusive UTC range; the
// end date covers the whole day
func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if start != "" {
		t, err := time.Parse(dateParamLayout, start)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}

	if end != "" {
		t, err := time.Parse(dateParamLayout, end)
		if err != nil {
			return nil, nil, err
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("end date is before start date")
	}

	return from, to, nil
}
