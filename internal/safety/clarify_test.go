package safety

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/sayso/internal/catalog"
)

func clarifyWith(t *testing.T, answer string) (catalog.Command, bool, string) {
	t.Helper()
	cands := []catalog.Command{{Name: "list-files"}, {Name: "list-tiles"}}
	var out bytes.Buffer
	c := NewClarifier(bufio.NewScanner(strings.NewReader(answer)), &out)
	cmd, ok := c.Clarify(cands)
	return cmd, ok, out.String()
}

func TestClarifier_PicksByNumber(t *testing.T) {
	cmd, ok, _ := clarifyWith(t, "2\n")
	require.True(t, ok)
	assert.Equal(t, "list-tiles", cmd.Name)
}

func TestClarifier_PicksByName(t *testing.T) {
	cmd, ok, _ := clarifyWith(t, "List-Files\n")
	require.True(t, ok)
	assert.Equal(t, "list-files", cmd.Name)
}

func TestClarifier_RejectsOutOfRange(t *testing.T) {
	for _, answer := range []string{"0\n", "3\n", "-1\n"} {
		_, ok, _ := clarifyWith(t, answer)
		assert.False(t, ok, "answer %q", answer)
	}
}

func TestClarifier_RejectsUnknownAnswer(t *testing.T) {
	_, ok, _ := clarifyWith(t, "neither\n")
	assert.False(t, ok)
}

func TestClarifier_RejectsOnEOF(t *testing.T) {
	_, ok, _ := clarifyWith(t, "")
	assert.False(t, ok)
}

func TestClarifier_ListsCandidates(t *testing.T) {
	_, _, out := clarifyWith(t, "1\n")
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "1. list-files")
	assert.Contains(t, out, "2. list-tiles")
}

func TestClarifier_EmptyCandidates(t *testing.T) {
	var out bytes.Buffer
	c := NewClarifier(bufio.NewScanner(strings.NewReader("1\n")), &out)

	_, ok := c.Clarify(nil)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}
