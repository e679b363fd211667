package errors

import (
	"strings"
	"unicode"
)

// maxKeyLength bounds record keys; the platform uses numeric ids or UUIDs.
const maxKeyLength = 128

// ValidateRecordKey validates a tracking record key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - Maximum length of 128 characters
//   - No leading or trailing whitespace
func ValidateRecordKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidRecord, "record key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidRecord, "record key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "record key contains invalid control characters")
		}
	}

	if strings.TrimSpace(key) != key {
		return New(ErrCodeInvalidRecord, "record key %q has surrounding whitespace", key)
	}

	return nil
}

// ValidatePath validates an output path given to the CLI or stored in config.
// It prevents path traversal sequences and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidatePositive checks that a named layout dimension is strictly positive.
func ValidatePositive(name string, v float64) error {
	if !(v > 0) {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative checks that a named spacing value is zero or positive.
func ValidateNonNegative(name string, v float64) error {
	if !(v >= 0) {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", name, v)
	}
	return nil
}
