package resolve

import (
	"regexp"
	"strings"
)

// whitespace matches one Unicode whitespace character, including NBSP and NEL
const whitespace = `[\s\p{Z}\x{85}]`

// Pattern compiles anchor text into a pattern that tolerates the layout
// differences between a rendered PDF and its transcript: every space matches
// zero or more whitespace characters and every hyphen matches either a
// hyphen or a single whitespace character. All other characters match
// literally.
func Pattern(anchor string) (*regexp.Regexp, error) {
	return compile(anchor, false)
}

func compile(anchor string, caseInsensitive bool) (*regexp.Regexp, error) {
	return regexp.Compile(patternSource(anchor, caseInsensitive))
}

func patternSource(anchor string, caseInsensitive bool) string {
	var sb strings.Builder
	if caseInsensitive {
		sb.WriteString("(?i)")
	}
	for _, r := range anchor {
		switch r {
		case ' ':
			sb.WriteString(whitespace + "*")
		case '-':
			sb.WriteString(`(?:-|` + whitespace + `)`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}
