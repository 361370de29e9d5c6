package handlers

import (
	"net/http"

	"charity-transparency/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through two helpers only:
//
//   - SendError for client and business rule errors (4xx), e.g.
//     SendError(c, errors.DonationNotFound) or
//     SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//   - SendSystemError for repository and unexpected service errors (500);
//     the internal error is never exposed to the client
//
// Validation errors from c.Validate are returned as-is and formatted by the
// HTTP error handler middleware.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PageMeta describes the page returned by list endpoints
type PageMeta struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs err and answers with the generic system error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)
	c.Logger().Errorf("trace_id=%s path=%s error=%v", traceID, c.Request().URL.Path, internal)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
