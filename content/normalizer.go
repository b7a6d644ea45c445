// Package content holds the text normalization helpers and the named
// pipeline that chains them.
package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSummaryLength is the word budget used by Summarize when a pipeline
// references it by name only.
const DefaultSummaryLength = 100

// TruncationMarker is appended to summaries that dropped words.
const TruncationMarker = "..."

// Clean replaces every run of whitespace with a single space and trims the ends.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Lowercase case-folds s to lower case.
func Lowercase(s string) string {
	// Casers carry state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// RemoveSpecialChars deletes every character that is not an ASCII letter,
// an ASCII digit, or whitespace.
func RemoveSpecialChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
}

// Tokenize splits s on whitespace runs. Empty or blank input yields an empty slice.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Summarize keeps the first maxLength words of s. Input that already fits is
// returned unchanged; otherwise the kept words are joined by single spaces and
// TruncationMarker is appended.
func Summarize(s string, maxLength int) string {
	words := strings.Fields(s)
	if len(words) <= maxLength {
		return s
	}
	if maxLength < 0 {
		maxLength = 0
	}
	return strings.Join(words[:maxLength], " ") + TruncationMarker
}
