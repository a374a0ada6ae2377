package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListClassifier_DefaultSet(t *testing.T) {
	c := NewListClassifier(DefaultDangerous)

	for _, name := range []string{"quit", "shutdown", "restart", "delete", "remove", "format"} {
		assert.True(t, c.Dangerous(resolvedIntent(name, 1.0)), name)
	}
	assert.True(t, c.Dangerous(resolvedIntent("Shutdown", 1.0)))
	assert.False(t, c.Dangerous(resolvedIntent("list-files", 1.0)))
}

func TestListClassifier_UnresolvedNeverDangerous(t *testing.T) {
	c := NewListClassifier(DefaultDangerous)

	assert.False(t, c.Dangerous(unresolvedIntent(1.0)))
}

func TestListClassifier_CustomSet(t *testing.T) {
	c := NewListClassifier([]string{"Reboot"})

	assert.True(t, c.Dangerous(resolvedIntent("reboot", 1.0)))
	assert.False(t, c.Dangerous(resolvedIntent("shutdown", 1.0)))
}

func TestListClassifier_EmptySet(t *testing.T) {
	c := NewListClassifier(nil)

	assert.False(t, c.Dangerous(resolvedIntent("shutdown", 1.0)))
}
