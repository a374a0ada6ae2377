package intent

import (
	"regexp"
	"strings"
)

// connectorRE matches spoken connectors between steps. "and then" comes
// first so it wins over its own substrings; \b keeps words like "android"
// and "athens" intact.
var connectorRE = regexp.MustCompile(`(?i)\b(?:and then|and|then)\b`)

// Split breaks a compound utterance into ordered steps. Input without
// connectors comes back as a single step; blank input yields none.
func Split(input string) []string {
	parts := connectorRE.Split(input, -1)
	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}
	return steps
}
