// ABOUTME: HTML helpers for feed text that may carry markup or entities
// ABOUTME: Used to clean trend titles and news headlines from RSS payloads

package html

import (
	stdhtml "html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	scriptStyleBlocks = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// StripHTML removes tags, decodes entities and collapses whitespace
func StripHTML(s string) string {
	text := scriptStyleBlocks.ReplaceAllString(s, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	return CleanText(stdhtml.UnescapeString(text))
}

// CleanText trims and collapses runs of whitespace to one space
func CleanText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
