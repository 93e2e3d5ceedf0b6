// Package normalize canonicalizes text for case- and whitespace-insensitive
// comparison.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Separator replaces every whitespace run in normalized text
const Separator = "  "

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)

// Text normalizes s: Unicode NFC, every whitespace run (newlines included)
// replaced by Separator, lower case, no leading or trailing whitespace.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = whitespaceRun.ReplaceAllString(s, Separator)
	s = cases.Lower(language.Und).String(s)
	return strings.TrimSpace(s)
}

// Equal reports whether a and b normalize to the same text
func Equal(a, b string) bool {
	return Text(a) == Text(b)
}

// Collapse replaces every whitespace run with a single space and trims the
// result. Case is preserved.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
