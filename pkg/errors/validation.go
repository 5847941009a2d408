package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks that c is a #rgb or #rrggbb hex colour.
func ValidateColor(c string) error {
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid colour %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidateMountID validates a mounting point identifier.
//
// Identifiers follow the rules of HTML element ids: non-empty, no whitespace
// or control characters, at most 128 characters.
func ValidateMountID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "mount id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "mount id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "mount id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `#"'<>`) {
		return New(ErrCodeInvalidInput, "mount id %q contains reserved characters", id)
	}
	return nil
}

// ValidateSize checks that a canvas dimension is finite and positive.
func ValidateSize(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", name, v)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	return nil
}
