package safety

import (
	"strings"

	"github.com/shahar-caura/sayso/internal/intent"
)

// DefaultDangerous is the built-in set of command names that always
// require confirmation before running.
var DefaultDangerous = []string{"quit", "shutdown", "restart", "delete", "remove", "format"}

// ListClassifier flags commands whose name appears in a fixed set.
type ListClassifier struct {
	names map[string]bool
}

// NewListClassifier builds a classifier over the given command names,
// matched case-insensitively. An empty list flags nothing.
func NewListClassifier(names []string) *ListClassifier {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return &ListClassifier{names: set}
}

// Dangerous reports whether the intent resolved to a listed command.
// Unresolved intents carry no command and are never dangerous.
func (c *ListClassifier) Dangerous(in intent.Intent) bool {
	cmd, ok := in.Command()
	if !ok {
		return false
	}
	return c.names[strings.ToLower(cmd.Name)]
}
