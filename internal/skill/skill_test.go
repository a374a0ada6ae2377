package skill

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
)

// TestHelperProcess stands in for launched programs. It exits with code 1
// when HELPER_EXIT_CODE is set, 0 otherwise.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("HELPER_EXIT_CODE") == "1" {
		os.Exit(1)
	}
	os.Exit(0)
}

// fakeCommand records every invocation and substitutes the helper process.
func fakeCommand(calls *[][]string, fail bool) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		*calls = append(*calls, append([]string{name}, args...))
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		if fail {
			cmd.Env = append(cmd.Env, "HELPER_EXIT_CODE=1")
		}
		return cmd
	}
}

type fakeSkill struct {
	name    string
	claims  bool
	execErr error
	ran     int
}

func (f *fakeSkill) Name() string                 { return f.name }
func (f *fakeSkill) CanHandle(intent.Intent) bool { return f.claims }
func (f *fakeSkill) Execute(context.Context, intent.Intent) error {
	f.ran++
	return f.execErr
}

func launchIntent(params map[string]string) intent.Intent {
	cmd := catalog.Command{Name: catalog.LaunchCommand}
	return intent.ForTesting("open x", "open x", &cmd, 1.0, params)
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	first := &fakeSkill{name: "first", claims: true}
	second := &fakeSkill{name: "second", claims: true}
	r := NewRegistry(first, second)

	s, ok := r.Find(launchIntent(nil))
	require.True(t, ok)
	assert.Equal(t, "first", s.Name())
}

func TestRegistry_SkipsNonClaimants(t *testing.T) {
	first := &fakeSkill{name: "first", claims: false}
	second := &fakeSkill{name: "second", claims: true}
	r := NewRegistry(first, second)

	s, ok := r.Find(launchIntent(nil))
	require.True(t, ok)
	assert.Equal(t, "second", s.Name())
}

func TestRegistry_NoneFound(t *testing.T) {
	r := NewRegistry(&fakeSkill{claims: false})

	_, ok := r.Find(launchIntent(nil))
	assert.False(t, ok)
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Find(launchIntent(nil))
	assert.False(t, ok)
}
