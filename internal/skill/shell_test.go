package skill

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/executor"
	"github.com/shahar-caura/sayso/internal/intent"
)

func shellIntent(cmd catalog.Command) intent.Intent {
	return intent.ForTesting(cmd.Name, cmd.Name, &cmd, 1.0, nil)
}

func TestShell_CanHandle(t *testing.T) {
	s := NewShell(executor.New(&bytes.Buffer{}, discardLogger()), discardLogger())

	assert.True(t, s.CanHandle(shellIntent(catalog.Command{Name: "list-files", Exec: "ls"})))
	assert.False(t, s.CanHandle(shellIntent(catalog.Command{Name: "open-app"})))
	assert.False(t, s.CanHandle(shellIntent(catalog.Command{Name: "noop", Exec: "   "})))
	assert.False(t, s.CanHandle(intent.ForTesting("x", "x", nil, 0.2, nil)))
}

func TestShell_ExecuteRuns(t *testing.T) {
	var out bytes.Buffer
	s := NewShell(executor.New(&out, discardLogger()), discardLogger())

	err := s.Execute(context.Background(), shellIntent(catalog.Command{
		Name: "greet",
		Exec: "echo hello",
	}))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestShell_ExecuteReportsNonzeroExit(t *testing.T) {
	s := NewShell(executor.New(&bytes.Buffer{}, discardLogger()), discardLogger())

	err := s.Execute(context.Background(), shellIntent(catalog.Command{
		Name: "boom",
		Exec: "exit 3",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom exited with code 3")
}

func TestShell_ExecuteNeedsResolvedCommand(t *testing.T) {
	s := NewShell(executor.New(&bytes.Buffer{}, discardLogger()), discardLogger())

	err := s.Execute(context.Background(), intent.ForTesting("x", "x", nil, 0.2, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolved command")
}
