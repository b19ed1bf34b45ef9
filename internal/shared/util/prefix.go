package util

import "regexp"

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9_\-/]+$`)

// ValidPrefix reports whether prefix is a non-empty blob partition key made
// of letters, digits, "_", "-" and "/".
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}
