// Package textnorm canonicalizes free-form user text for case, accent and
// punctuation insensitive comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "ç" compares
// equal to "c".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the input, removes diacritic marks and every
// character outside letters, digits and whitespace, and trims surrounding
// whitespace. Total over all inputs and idempotent.
func Normalize(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Invalid UTF-8 sequences are kept as-is; the rune filter below
		// drops them anyway.
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokens returns the whitespace-delimited tokens of the normalized form.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
