package utils

import (
	"regexp"
	"strings"
)

var spaceRegex = regexp.MustCompile(`\s+`)

const Ellipsis = "..."

// Trail shortens s to at most n characters, replacing the tail with an
// ellipsis when something was cut off. Widths too small for the ellipsis
// get a plain cut.
func Trail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	if n <= len(Ellipsis) {
		return string(runes[:n])
	}
	return string(runes[:n-len(Ellipsis)]) + Ellipsis
}

// CleanText collapses runs of whitespace left over from nested markup.
func CleanText(text string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(text, " "))
}
