package errors

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MaxViewport is the largest accepted viewport extent on either axis.
const MaxViewport = 1 << 20

// ValidateViewport checks that a viewport is finite, non-negative and not
// larger than MaxViewport on either axis.
func ValidateViewport(width, height float64) error {
	for _, v := range []struct {
		axis  string
		value float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return New(ErrCodeInvalidViewport, "viewport %s must be finite", v.axis)
		}
		if v.value < 0 {
			return New(ErrCodeInvalidViewport, "viewport %s must not be negative: %g", v.axis, v.value)
		}
		if v.value > MaxViewport {
			return New(ErrCodeInvalidViewport, "viewport %s too large (max %d): %g", v.axis, MaxViewport, v.value)
		}
	}
	return nil
}

// nodeNameRegex matches names usable as node names in tree documents.
var nodeNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateNodeName validates a node name from a tree document.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, dot, dash and underscore only
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "node name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidDocument, "node name too long (max 128 characters)")
	}
	if !nodeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDocument, "invalid node name: %q", name)
	}
	return nil
}

// ValidateDocumentFilename validates the filename of a tree document.
// It must be a simple basename with a .toml or .json extension.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidDocument, "document filename cannot contain path separators")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml", ".json":
		return nil
	}
	return New(ErrCodeUnsupported, "unsupported document type: %q (want .toml or .json)", filename)
}

// ValidatePath validates an output path for safety.
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
