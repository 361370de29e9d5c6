package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"Auth Invalid Credentials", AuthInvalidCredentials, "Invalid email or password"},
		{"Validation General", ValidationGeneral, "Validation failed"},
		{"Donation Already Processed", DonationAlreadyProcessed, "Donation has already been confirmed or rejected"},
		{"Activity Slug Taken", ActivitySlugTaken, "An activity with this slug already exists"},
		{"Report Export Failed", ReportExportFailed, "Report export failed"},
		{"System Internal Error", SystemInternalError, "An unexpected error occurred. Please contact support with trace ID"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	s.True(IsValidErrorCode(DonationNotFound))
	s.True(IsValidErrorCode(SystemRateLimitExceeded))
	s.False(IsValidErrorCode("DONATION_999"))
	s.False(IsValidErrorCode(""))
}

// Every registered code follows the DOMAIN_NNN convention
func (s *CodesTestSuite) TestCodeFormat() {
	for code := range errorMessages {
		parts := strings.Split(string(code), "_")
		s.Require().Len(parts, 2, "code %s", code)
		s.Len(parts[1], 3, "code %s", code)
		s.Equal(strings.ToUpper(parts[0]), parts[0], "code %s", code)
	}
}
