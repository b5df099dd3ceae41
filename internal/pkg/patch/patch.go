// Package patch resolves optional request fields against their defaults.
package patch

import "strings"

func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Text returns the trimmed value of an optional text field, or "" when absent.
func Text(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return strings.TrimSpace(*ptr)
}
