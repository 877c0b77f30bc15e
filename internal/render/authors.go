package render

import (
	"html"
	"regexp"
	"strings"

	"pubsite/internal/latex"
)

// NoAuthorFallback is shown when a record has no usable author field.
const NoAuthorFallback = "No author specified"

// andSeparator splits a BibTeX author list on the word "and". Whitespace on
// both sides is required so names like "Anderson" are never split.
var andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

var innerSpace = regexp.MustCompile(`\s+`)

// FormatAuthors converts a raw BibTeX author string into a comma-separated,
// HTML-escaped display list. "Family, Given" names are reordered to
// "Given Family" on the first comma.
func FormatAuthors(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoAuthorFallback
	}

	var names []string
	for _, part := range andSeparator.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = latex.ToUnicode(part)
		part = strings.TrimSpace(innerSpace.ReplaceAllString(part, " "))

		if i := strings.Index(part, ","); i >= 0 {
			family := strings.TrimSpace(part[:i])
			given := strings.TrimSpace(part[i+1:])
			if family != "" && given != "" {
				part = given + " " + family
			}
		}
		names = append(names, html.EscapeString(part))
	}

	if len(names) == 0 {
		return NoAuthorFallback
	}
	return strings.Join(names, ", ")
}
