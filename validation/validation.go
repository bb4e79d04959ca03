// Package validation collects field violations for request payloads. The
// repository layer assumes every value it receives already passed through
// these checks: trimmed, non-empty where required and length-bounded.
package validation

import "strings"

// Violations maps a field name to a violation code.
type Violations map[string]string

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// Required records a violation when value is blank.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// MaxLen records a violation when value exceeds maxLen characters.
func MaxLen(field, value string, maxLen int, v Violations) {
	if len(value) > maxLen {
		v[field] = "too_long"
	}
}

// OptionalMaxLen applies MaxLen to an optional value.
func OptionalMaxLen(field string, value *string, maxLen int, v Violations) {
	if value == nil {
		return
	}
	MaxLen(field, *value, maxLen, v)
}

// NonNegativeInt records a violation when n is negative.
func NonNegativeInt(field string, n int, v Violations) {
	if n < 0 {
		v[field] = "must_be_non_negative"
	}
}

// Optional trims an optional value and normalizes blank strings to nil.
func Optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
