package storage

import (
	"regexp"
	"strings"
)

var unsafeSegmentChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Sanitize turns an arbitrary human-provided name into a filesystem-safe
// path segment: every character outside [A-Za-z0-9_-] becomes "_" and the
// result is lowercased. It never fails and is idempotent, but not injective
// ("Q1" and "q1" collide); colliding names merge folders, which is harmless
// because stored filenames carry a random prefix.
func Sanitize(name string) string {
	return strings.ToLower(unsafeSegmentChars.ReplaceAllString(name, "_"))
}
