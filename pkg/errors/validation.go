package errors

import (
	"strings"
	"unicode"
)

// ValidateURL validates a hyperlink target for a diagram box.
//
// Relative targets ("page1.html") are allowed because the rendered SVG is
// often published next to the pages it links to. Rejected:
//   - Empty targets
//   - Control characters and null bytes
//   - Script-capable schemes (javascript:, data:, vbscript:)
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "URL contains invalid control characters")
		}
	}

	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(lower, scheme) {
			return New(ErrCodeInvalidInput, "URL scheme not allowed: %q", scheme)
		}
	}

	return nil
}

// ValidatePath validates a user supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}
