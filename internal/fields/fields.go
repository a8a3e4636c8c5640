// Package fields turns unstructured receipt text into structured values: a
// monetary amount in cents, a UTC timestamp, and a short title/recipient.
// Every extractor is a pure function over the text and is total: a wrong
// guess or an empty default is always preferred over an error, because a
// reviewable-but-wrong record beats a lost upload.
package fields

import (
	"regexp"
	"strings"
)

var lineSplitter = regexp.MustCompile(`\r?\n`)

// splitLines returns the trimmed, non-empty lines of text. Line indices used
// by the extractors refer to positions in this filtered slice.
func splitLines(text string) []string {
	raw := lineSplitter.Split(text, -1)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
