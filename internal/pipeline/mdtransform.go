package pipeline

import (
	"regexp"
	"strings"
)

// Placeholder sentinels use Unicode Private Use Area characters.
// Escaping leaves them untouched, and any occurrence in user input is
// replaced by U+FFFD before extraction, so a placeholder built from them
// can never collide with user content.
const (
	PlaceholderStart = "\uE000" // U+E000: Private Use Area start
	PlaceholderEnd   = "\uE001" // U+E001: Private Use Area end
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	sentinelScrubber = strings.NewReplacer(
		PlaceholderStart, "\uFFFD",
		PlaceholderEnd, "\uFFFD",
	)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// scrubSentinels removes placeholder sentinels from user input.
func scrubSentinels(content string) string {
	if !strings.ContainsAny(content, PlaceholderStart+PlaceholderEnd) {
		return content
	}
	return sentinelScrubber.Replace(content)
}

// Escape applies the five-entity HTML scheme used by every stage:
// & < > " and '. It has no memory of earlier passes, so escaping
// already-escaped text escapes the ampersands again.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// nl2br escapes text and converts newlines to <br> line breaks,
// keeping the newline after each break.
func nl2br(s string) string {
	return strings.ReplaceAll(Escape(normalizeLineEndings(s)), "\n", "<br>\n")
}
