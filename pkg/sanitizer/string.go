package sanitizer

import "strings"

// NormalizeID trims an identifier taken from a path or body.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
