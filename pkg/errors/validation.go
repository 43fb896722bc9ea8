package errors

import (
	"strings"
	"unicode"
)

// ValidateScale checks that scale lies in [1, max].
//
// A scale of zero would produce an empty lattice and a negative color range,
// so it is rejected before any construction work begins. The upper bound keeps
// the per-axis color range within a byte.
func ValidateScale(scale, max int) error {
	if scale < 1 {
		return New(ErrCodeInvalidScale, "scale must be at least 1, got %d", scale)
	}
	if scale > max {
		return New(ErrCodeInvalidScale, "scale must be at most %d, got %d", max, scale)
	}
	return nil
}

// ValidateZoom checks that an integer upscale factor lies in [1, max].
func ValidateZoom(zoom, max int) error {
	if zoom < 1 || zoom > max {
		return New(ErrCodeInvalidZoom, "zoom must be between 1 and %d, got %d", max, zoom)
	}
	return nil
}

// ValidateDir validates an output directory path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
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

// ValidateToken checks that s is one of allowed, case-sensitively, and
// returns an error carrying code otherwise.
func ValidateToken(code Code, kind, s string, allowed []string) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, s, strings.Join(allowed, ", "))
}
