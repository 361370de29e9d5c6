package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(DonationNotFound, s.traceID)

	s.Equal("DONATION_001", response.Error.Code)
	s.Equal("Donation not found", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_Options() {
	response := NewErrorResponse(ValidationGeneral, s.traceID,
		WithDetails("amount: must be greater than 0"),
		WithMessage("Donation rejected"))

	s.Equal("Donation rejected", response.Error.Message)
	s.Equal([]string{"amount: must be greater than 0"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationErrorFromList() {
	response := NewValidationErrorFromList([]string{"email: invalid"}, s.traceID)

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.Equal(http.StatusBadRequest, response.GetHTTPStatus())
	s.True(response.IsClientError())
}

func (s *ResponseTestSuite) TestWrapSystemError() {
	internal := errors.New("pq: connection refused")
	response, err := WrapSystemError(internal, s.traceID)

	s.Equal(internal, err)
	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "pq")
	s.True(response.IsServerError())
}

func (s *ResponseTestSuite) TestToJSON() {
	body, err := NewErrorResponse(ActivityNotFound, s.traceID).ToJSON()
	s.Require().NoError(err)

	var decoded map[string]map[string]interface{}
	s.Require().NoError(json.Unmarshal(body, &decoded))
	s.Equal("ACTIVITY_001", decoded["error"]["code"])
	s.Equal(s.traceID, decoded["error"]["trace_id"])
	s.NotContains(decoded["error"], "details")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationInvalidID, http.StatusBadRequest},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{ExpenseNotFound, http.StatusNotFound},
		{DonationAlreadyProcessed, http.StatusConflict},
		{DonationActivityClosed, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{ReportUnavailable, http.StatusServiceUnavailable},
		{SystemDatabaseError, http.StatusInternalServerError},
		{"UNKNOWN_001", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestString() {
	response := NewErrorResponse(ReportExportFailed, s.traceID)
	s.Equal("[REPORT_002] Report export failed (trace: "+s.traceID+")", response.String())
}
