package models

import "strings"

// Expense categories used by the admin panel. The list is open: any other
// non-blank label is kept as typed, blank labels fall into CategoryOther.
const (
	CategoryProgram     = "Program"
	CategoryEducation   = "Education"
	CategoryHealth      = "Health"
	CategoryFood        = "Food"
	CategoryLogistics   = "Logistics"
	CategoryOperational = "Operational"
	CategoryOther       = "Other"
)

// AllCategories returns the predefined expense categories
func AllCategories() []string {
	return []string{
		CategoryProgram,
		CategoryEducation,
		CategoryHealth,
		CategoryFood,
		CategoryLogistics,
		CategoryOperational,
		CategoryOther,
	}
}

// IsKnownCategory checks whether a label matches a predefined category, ignoring case
func IsKnownCategory(category string) bool {
	_, ok := knownCategory(category)
	return ok
}

// NormalizeCategory maps a raw label to its reporting bucket. Known categories
// are matched case-insensitively and returned in canonical form; unknown
// labels are trimmed and kept; blank labels become CategoryOther.
func NormalizeCategory(raw string) string {
	trimmed := strings.Join(strings.Fields(raw), " ")
	if trimmed == "" {
		return CategoryOther
	}

	if canonical, ok := knownCategory(trimmed); ok {
		return canonical
	}

	return trimmed
}

func knownCategory(label string) (string, bool) {
	for _, category := range AllCategories() {
		if strings.EqualFold(category, strings.TrimSpace(label)) {
			return category, true
		}
	}
	return "", false
}
