package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that cannot be made into a safe
// storage key.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded resume name into a flat storage
// key segment. Traversal patterns and NUL bytes are rejected; path
// separators are flattened so the key stays inside its namespace.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") || strings.ContainsRune(name, 0) {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
