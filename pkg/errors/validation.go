package errors

import (
	"strings"
	"unicode"
)

// ValidateRange checks that a numeric setting named key lies in [lo, hi].
// zeroOK admits 0 as an explicit "disabled" value.
func ValidateRange(key string, v, lo, hi int64, zeroOK bool) error {
	if zeroOK && v == 0 {
		return nil
	}
	if v < lo || v > hi {
		if zeroOK {
			return New(ErrCodeInvalidConfig, "%s=%d out of range (0 or %d..%d)", key, v, lo, hi)
		}
		return New(ErrCodeInvalidConfig, "%s=%d out of range (%d..%d)", key, v, lo, hi)
	}
	return nil
}

// ValidateCellName validates the name of a referenced cell.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 1024 bytes
//   - No control characters or spaces
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "cell name cannot be empty")
	}
	if len(name) > 1024 {
		return New(ErrCodeInvalidInput, "cell name too long (max 1024 bytes)")
	}
	if i := strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsControl(r) || unicode.IsSpace(r)
	}); i >= 0 {
		return New(ErrCodeInvalidInput, "cell name %q contains invalid character at byte %d", name, i)
	}
	return nil
}
