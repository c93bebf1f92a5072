package catalog

import (
	"fmt"
	"strings"
)

// ErrInvalidName marks user-supplied names that fail validation
var ErrInvalidName = fmt.Errorf("invalid name")

// ErrNotFound marks catalog items absent from storage
var ErrNotFound = fmt.Errorf("not found")

// SanitizeName validates a single folder or file name. Slashes are stripped
// from the edges; names containing path traversal sequences or embedded
// separators are rejected.
func SanitizeName(name string) (string, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: path traversal in %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("%w: separator in %q", ErrInvalidName, name)
	}
	return name, nil
}

// SanitizePath validates a relative path that may span several directory
// levels, as accepted by the delete endpoint.
func SanitizePath(path string) (string, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidName)
	}
	if strings.Contains(path, "..") || strings.Contains(path, "\\") {
		return "", fmt.Errorf("%w: path traversal in %q", ErrInvalidName, path)
	}
	return path, nil
}
