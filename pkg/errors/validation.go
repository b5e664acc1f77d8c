package errors

import (
	"strings"
	"unicode"

	"golang.org/x/image/colornames"
)

// maxLabelLength bounds feature labels; longer strings are almost always a
// misparsed attribute column rather than a real label.
const maxLabelLength = 512

// ValidateLabel validates a feature label for rendering.
// Empty labels are allowed (the feature is simply not annotated).
//
// Validation rules:
//   - Maximum length of 512 characters
//   - No control characters (newlines break SVG text)
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateColor validates a CSS colour used as a glyph fill.
// Hex colours (#rgb, #rrggbb, #rrggbbaa) and SVG 1.1 colour keywords are
// accepted; anything that could break out of an SVG attribute is rejected.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if strings.ContainsAny(color, "\"'<>&;{}") {
		return New(ErrCodeInvalidInput, "invalid color: %q", color)
	}
	if strings.HasPrefix(color, "#") {
		hex := color[1:]
		if len(hex) != 3 && len(hex) != 6 && len(hex) != 8 {
			return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
			}
		}
		return nil
	}
	if _, ok := colornames.Map[strings.ToLower(color)]; !ok {
		return New(ErrCodeInvalidInput, "unknown color name: %q", color)
	}
	return nil
}

// ValidatePath validates a file path served or written by the CLI.
// It prevents path traversal and ensures reasonable path length.
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
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
