package sanitize

import (
	"regexp"
	"strings"
)

var (
	// tagClassReplacer handles common replacements for CSS class tokens
	tagClassReplacer = strings.NewReplacer(
		" ", "_",
	)

	// nonTokenRegex matches characters not valid in a CSS class token
	nonTokenRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

	// multiDashRegex matches multiple consecutive dashes
	multiDashRegex = regexp.MustCompile(`-+`)

	// multiUnderscoreRegex matches multiple consecutive underscores
	multiUnderscoreRegex = regexp.MustCompile(`_+`)
)

// ForTagClass sanitizes a page tag for use as a CSS class token.
// Spaces become underscores ("a b" -> "tag_a_b") and anything outside
// [a-zA-Z0-9_-] is dropped. Case is preserved so stylesheets can target
// the tag exactly as written in front-matter. Returns "" for a tag with
// no usable characters.
func ForTagClass(tag string) string {
	if tag == "" {
		return ""
	}

	s := tagClassReplacer.Replace(tag)

	// Remove any remaining invalid characters
	s = nonTokenRegex.ReplaceAllString(s, "")

	// Collapse multiple underscores
	s = multiUnderscoreRegex.ReplaceAllString(s, "_")

	// Trim underscores from start and end
	s = strings.Trim(s, "_")

	if s == "" {
		return ""
	}
	return "tag_" + s
}

// ForSlug sanitizes a string for use in a filename or URL segment (kebab-case).
func ForSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	// Remove non-alphanumeric characters, except hyphens
	s = regexp.MustCompile(`[^a-z0-9-]+`).ReplaceAllString(s, "")
	// Collapse multiple hyphens
	s = multiDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 { // Truncate long names
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}

// ForSectionID sanitizes a string for use as a section identifier.
// Section ids must contain only lowercase letters, numbers, and hyphens.
func ForSectionID(s string) string {
	return ForSlug(s)
}
