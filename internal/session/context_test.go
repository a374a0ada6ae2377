package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
)

type fakeSkill struct{ name string }

func (f *fakeSkill) Name() string                                 { return f.name }
func (f *fakeSkill) CanHandle(intent.Intent) bool                 { return true }
func (f *fakeSkill) Execute(context.Context, intent.Intent) error { return nil }

func launchTurn(app string) (intent.Intent, catalog.Command) {
	cmd := catalog.Command{Name: "open-app"}
	in := intent.ForTesting("open "+app, "open "+app, &cmd, 1.0, map[string]string{"app": app})
	return in, cmd
}

func TestContext_StartsEmpty(t *testing.T) {
	c := New()

	assert.False(t, c.HasContext())
	assert.False(t, c.LastIntent().Resolved())
	assert.Empty(t, c.LastCommand().Name)
	assert.Nil(t, c.LastSkill())
}

func TestContext_UpdateAndRead(t *testing.T) {
	c := New()
	in, cmd := launchTurn("chrome")
	sk := &fakeSkill{name: "app-launcher"}

	require.NoError(t, c.Update(in, cmd, sk))

	assert.True(t, c.HasContext())
	assert.Equal(t, "chrome", c.LastIntent().Param("app"))
	assert.Equal(t, "open-app", c.LastCommand().Name)
	assert.Equal(t, "app-launcher", c.LastSkill().Name())
}

func TestContext_UpdateReplacesWholeTurn(t *testing.T) {
	c := New()

	in1, cmd1 := launchTurn("chrome")
	require.NoError(t, c.Update(in1, cmd1, &fakeSkill{name: "first"}))

	quit := catalog.Command{Name: "quit"}
	in2 := intent.ForTesting("quit", "quit", &quit, 1.0, nil)
	require.NoError(t, c.Update(in2, quit, &fakeSkill{name: "second"}))

	assert.Equal(t, "quit", c.LastCommand().Name)
	assert.Equal(t, "second", c.LastSkill().Name())
	assert.Empty(t, c.LastIntent().Param("app"))
}

func TestContext_UpdateRejectsBadArguments(t *testing.T) {
	c := New()
	in, cmd := launchTurn("chrome")
	sk := &fakeSkill{name: "app-launcher"}

	unresolved := intent.ForTesting("gibberish", "gibberish", nil, 0.2, nil)
	assert.Error(t, c.Update(unresolved, cmd, sk))
	assert.Error(t, c.Update(in, catalog.Command{}, sk))
	assert.Error(t, c.Update(in, cmd, nil))

	// Failed updates leave nothing behind.
	assert.False(t, c.HasContext())
}

func TestContext_FailedUpdateKeepsPreviousTurn(t *testing.T) {
	c := New()
	in, cmd := launchTurn("chrome")
	require.NoError(t, c.Update(in, cmd, &fakeSkill{name: "app-launcher"}))

	require.Error(t, c.Update(in, cmd, nil))

	assert.True(t, c.HasContext())
	assert.Equal(t, "open-app", c.LastCommand().Name)
}

func TestContext_Clear(t *testing.T) {
	c := New()
	in, cmd := launchTurn("chrome")
	require.NoError(t, c.Update(in, cmd, &fakeSkill{name: "app-launcher"}))

	c.Clear()

	assert.False(t, c.HasContext())
	assert.Nil(t, c.LastSkill())
	assert.Empty(t, c.LastCommand().Name)
}
