package validator

import (
	"regexp"
	"strings"
)

// usernameRegexp defines the valid format for account names:
// lowercase letters, numbers, underscores, and hyphens, 1-64 characters.
var usernameRegexp = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidateUsername checks if the given name is a valid account name.
func ValidateUsername(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	return usernameRegexp.MatchString(trimmed)
}

// SanitizeUsername trims whitespace and validates the account name.
// Returns the sanitized name and a boolean indicating if it's valid.
func SanitizeUsername(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	if !usernameRegexp.MatchString(trimmed) {
		return trimmed, false
	}
	return trimmed, true
}
