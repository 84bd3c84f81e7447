package validation

import "regexp"

// Domain field predicates shared by registration, profile update, and
// password reset. Handlers and services consume these; nothing re-implements
// them inline.

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	phoneRe = regexp.MustCompile(`^\+?(\d{1,4})?( )?\d{8,12}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld with at least one
// dot-separated suffix of length >= 2. The empty string is invalid.
func IsValidEmail(s string) bool {
	return s != "" && emailRe.MatchString(s)
}

// IsValidPhone accepts an optional leading +, an optional 1-4 digit country
// code, an optional separating space, and 8-12 subscriber digits.
func IsValidPhone(s string) bool {
	return s != "" && phoneRe.MatchString(s)
}

// MinPasswordLen is the floor applied to every password the API accepts.
const MinPasswordLen = 6

// IsValidPassword reports whether s meets the minimum length rule.
func IsValidPassword(s string) bool {
	return len(s) >= MinPasswordLen
}
