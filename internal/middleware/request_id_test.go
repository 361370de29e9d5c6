package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(header string) (string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(TraceIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen = GetTraceID(c)
		s.Equal(seen, TraceIDFromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return seen, rec
}

func (s *RequestIDTestSuite) TestRequestID_GeneratesUUID() {
	traceID, rec := s.run("")

	s.Regexp(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, traceID)
	s.Equal(traceID, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestRequestID_ReusesCallerTraceID() {
	traceID, rec := s.run("admin-panel.42_a")

	s.Equal("admin-panel.42_a", traceID)
	s.Equal("admin-panel.42_a", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestRequestID_ReplacesMalformedTraceID() {
	cases := map[string]string{
		"spaces":    "trace id with spaces",
		"injection": "abc\"><script>",
		"too long":  strings.Repeat("a", 65),
	}

	for name, header := range cases {
		s.Run(name, func() {
			traceID, rec := s.run(header)

			s.NotEqual(header, traceID)
			s.Len(traceID, 36)
			s.Equal(traceID, rec.Header().Get(TraceIDHeader))
		})
	}
}

func (s *RequestIDTestSuite) TestGetTraceID_ReturnsEmptyWhenNotSet() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.Empty(GetTraceID(c))
	s.Empty(TraceIDFromContext(req.Context()))
}
