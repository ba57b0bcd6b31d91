package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName lower-cases s and collapses everything that is not [a-z0-9] into
// single dashes. An empty result falls back to def.
func FromName(s, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("&", " and ", "'", "").Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return def
	}
	return s
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && FromName(s, "") == s
}
