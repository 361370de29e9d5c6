package handlers

import (
	"context"
	"net/http"
	"time"

	"charity-transparency/internal/errors"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db Pinger
}

func NewHealthCheckHandler(db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck answers 200 while the database responds to ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string}
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
