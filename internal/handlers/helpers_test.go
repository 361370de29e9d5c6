package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newGetContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withAdmin(c echo.Context) uuid.UUID {
	id := uuid.New()
	c.Set("user_id", id)
	c.Set("user_role", "admin")
	return id
}

func decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return resp
}

func jsonBody(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}
