package intent

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRE   = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Leading articles carry no signal for command matching.
var stopWords = map[string]bool{"the": true, "a": true, "an": true}

// Normalize lowers the input, strips everything that is not a letter,
// digit, or space, collapses whitespace, and drops leading articles.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonAlnumRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	for {
		first, rest, ok := strings.Cut(s, " ")
		if !ok {
			if stopWords[s] {
				return ""
			}
			return s
		}
		if !stopWords[first] {
			return s
		}
		s = rest
	}
}

// NormalizeCommandName normalizes a catalog name or alias, mapping the
// usual - and _ separators to spaces so "open-app" matches "open app".
func NormalizeCommandName(name string) string {
	s := strings.ReplaceAll(name, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return Normalize(s)
}
