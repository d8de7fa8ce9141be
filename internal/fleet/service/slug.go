package service

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_]+`)
	slugEdgeDashes   = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns free text into a URL-safe slug: lowercase, word characters
// and dashes only, whitespace and underscores collapsed to single dashes.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugEdgeDashes.ReplaceAllString(s, "")
	return s
}
