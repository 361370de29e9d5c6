package errors

// ErrorCode is a stable, machine readable error identifier returned by the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidID     ErrorCode = "VALIDATION_006"
)

// Donation error codes (DONATION_*)
const (
	DonationNotFound         ErrorCode = "DONATION_001"
	DonationInvalidAmount    ErrorCode = "DONATION_002"
	DonationAlreadyProcessed ErrorCode = "DONATION_003"
	DonationActivityClosed   ErrorCode = "DONATION_004"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound      ErrorCode = "EXPENSE_001"
	ExpenseInvalidAmount ErrorCode = "EXPENSE_002"
)

// Activity error codes (ACTIVITY_*)
const (
	ActivityNotFound      ErrorCode = "ACTIVITY_001"
	ActivitySlugTaken     ErrorCode = "ACTIVITY_002"
	ActivityHasRecords    ErrorCode = "ACTIVITY_003"
	ActivityInvalidPeriod ErrorCode = "ACTIVITY_004"
)

// Report error codes (REPORT_*)
const (
	ReportUnavailable  ErrorCode = "REPORT_001"
	ReportExportFailed ErrorCode = "REPORT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemRouteNotFound      ErrorCode = "SYSTEM_005"
)

var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidID:     "Invalid identifier format",

	DonationNotFound:         "Donation not found",
	DonationInvalidAmount:    "Donation amount must be greater than zero",
	DonationAlreadyProcessed: "Donation has already been confirmed or rejected",
	DonationActivityClosed:   "Activity is not accepting donations",

	ExpenseNotFound:      "Expense not found",
	ExpenseInvalidAmount: "Expense amount must be greater than zero",

	ActivityNotFound:      "Activity not found",
	ActivitySlugTaken:     "An activity with this slug already exists",
	ActivityHasRecords:    "Activity still has donations or expenses attached",
	ActivityInvalidPeriod: "Activity end date must not be before its start date",

	ReportUnavailable:  "Report could not be generated",
	ReportExportFailed: "Report export failed",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is registered
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
