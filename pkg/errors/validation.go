package errors

import (
	"strings"
	"unicode"
)

// ValidateDatasetPath validates a dataset file path supplied by a caller
// (CLI flag, manifest entry, or API request) before any file is opened.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No path traversal sequences (..)
//   - Maximum length of 500 characters
//
// Absolute paths are allowed: the CLI legitimately points at data files
// anywhere on disk. Manifest-relative entries are resolved by the caller.
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "dataset path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "dataset path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "dataset path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateTitle validates a viewer title string.
// Titles end up in window chrome and exported metadata, so control
// characters are rejected and length is capped.
func ValidateTitle(title string) error {
	const maxTitleLength = 256
	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}
	return nil
}
