package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/sayso/internal/catalog"
)

type stubSession struct {
	has  bool
	last Intent
	cmd  catalog.Command
}

func (s *stubSession) HasContext() bool             { return s.has }
func (s *stubSession) LastIntent() Intent           { return s.last }
func (s *stubSession) LastCommand() catalog.Command { return s.cmd }

// afterLaunch is a session whose previous turn launched the given app.
func afterLaunch(app string) *stubSession {
	openApp := catalog.Command{Name: "open-app"}
	return &stubSession{
		has:  true,
		last: ForTesting("open "+app, "open "+app, &openApp, 1.0, map[string]string{"app": app}),
		cmd:  openApp,
	}
}

func newContextual(sess Session) *ContextualResolver {
	return NewContextualResolver(sess,
		[]string{"chrome", "firefox"},
		[]string{"youtube", "google", "github"},
		discardLogger())
}

func TestContextual_WebsiteUpgrade(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	original := r.Resolve("open youtube")
	require.Equal(t, BandHigh, original.Band())

	out, ok := c.Resolve("open youtube", original)
	require.True(t, ok)

	cmd, resolved := out.Command()
	require.True(t, resolved)
	assert.Equal(t, "open-app", cmd.Name)
	assert.Equal(t, "chrome", out.Param("app"))
	// The url parameter carries the spoken site name; the browser skill
	// turns it into an address at launch time.
	assert.Equal(t, "youtube", out.Param("url"))
	assert.Equal(t, 1.0, out.Confidence())

	// The original is left exactly as it was.
	assert.Equal(t, "youtube", original.Param("app"))
	assert.Empty(t, original.Param("url"))
}

func TestContextual_WebsiteUpgradeNeedsBrowserContext(t *testing.T) {
	r := newTestResolver(t)
	original := r.Resolve("open youtube")

	// Last launch was not a browser.
	_, ok := newContextual(afterLaunch("files")).Resolve("open youtube", original)
	assert.False(t, ok)

	// No context at all.
	_, ok = newContextual(&stubSession{}).Resolve("open youtube", original)
	assert.False(t, ok)
}

func TestContextual_WebsiteUpgradeUnknownSite(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	original := r.Resolve("open myspace")
	out, ok := c.Resolve("open myspace", original)
	assert.False(t, ok)
	assert.Equal(t, "myspace", out.Param("app"))
}

func TestContextual_HighBandUntouched(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	original := r.Resolve("quit")
	out, ok := c.Resolve("quit", original)
	assert.False(t, ok)

	cmd, resolved := out.Command()
	require.True(t, resolved)
	assert.Equal(t, "quit", cmd.Name)
}

func TestContextual_ResolvedMediumUntouched(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	original := r.Resolve("java virsion")
	require.Equal(t, BandMedium, original.Band())
	require.True(t, original.Resolved())

	_, ok := c.Resolve("java virsion", original)
	assert.False(t, ok)
}

func TestContextual_RepeatPhrases(t *testing.T) {
	c := newContextual(afterLaunch("chrome"))

	phrases := []string{
		"again", "repeat", "do it again", "do that again",
		"same", "one more time", "repeat that", "run it again",
	}
	for _, phrase := range phrases {
		original := ForTesting(phrase, phrase, nil, 0, nil)

		out, ok := c.Resolve(phrase, original)
		require.True(t, ok, phrase)

		cmd, resolved := out.Command()
		require.True(t, resolved, phrase)
		assert.Equal(t, "open-app", cmd.Name, phrase)
		assert.Equal(t, "chrome", out.Param("app"), phrase)
		assert.Equal(t, 1.0, out.Confidence(), phrase)

		// Replaying never mutates the unresolved original.
		assert.False(t, original.Resolved(), phrase)
	}
}

func TestContextual_RepeatUnlistedPhraseMisses(t *testing.T) {
	// The repeat set is fixed; near-misses fall through to the other
	// strategies and come back unhandled.
	c := newContextual(afterLaunch("chrome"))

	for _, phrase := range []string{"once more", "same again", "another time"} {
		original := ForTesting(phrase, phrase, nil, 0, nil)
		_, ok := c.Resolve(phrase, original)
		assert.False(t, ok, phrase)
	}
}

func TestContextual_RepeatNormalizesCase(t *testing.T) {
	c := newContextual(afterLaunch("chrome"))
	original := ForTesting("  AGAIN ", "again", nil, 0.1, nil)

	out, ok := c.Resolve("  AGAIN ", original)
	require.True(t, ok)
	assert.True(t, out.Resolved())
}

func TestContextual_CloseFollowUp(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	for _, phrase := range []string{"close", "close it", "close that"} {
		original := r.Resolve(phrase)
		out, ok := c.Resolve(phrase, original)
		require.True(t, ok, phrase)

		assert.Equal(t, "chrome", out.Param("app"), phrase)
		assert.Equal(t, "close", out.Param("action"), phrase)
	}
}

func TestContextual_ClosePunctuationMisses(t *testing.T) {
	// Follow-up phrases match verbatim: punctuation is not stripped.
	c := newContextual(afterLaunch("chrome"))
	original := ForTesting("close it!", "close it", nil, 0.2, nil)

	_, ok := c.Resolve("close it!", original)
	assert.False(t, ok)
}

func TestContextual_CloseNeedsLaunchContext(t *testing.T) {
	quit := catalog.Command{Name: "quit"}
	sess := &stubSession{
		has:  true,
		last: ForTesting("quit", "quit", &quit, 1.0, nil),
		cmd:  quit,
	}
	c := newContextual(sess)
	original := ForTesting("close it", "close it", nil, 0.2, nil)

	_, ok := c.Resolve("close it", original)
	assert.False(t, ok)
}

func TestContextual_Navigation(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	cases := map[string]string{
		"go to github":       "github",
		"navigate to google": "google",
	}
	for phrase, target := range cases {
		original := r.Resolve(phrase)
		require.False(t, original.Resolved(), phrase)

		out, ok := c.Resolve(phrase, original)
		require.True(t, ok, phrase)
		assert.Equal(t, "chrome", out.Param("app"), phrase)
		assert.Equal(t, target, out.Param("url"), phrase)
	}
}

func TestContextual_NavigationVerb(t *testing.T) {
	// Without a launch command in the catalog, "open youtube" reaches the
	// contextual pass unresolved and still navigates.
	c := newContextual(afterLaunch("chrome"))
	original := ForTesting("open youtube", "open youtube", nil, 0.3, nil)

	out, ok := c.Resolve("open youtube", original)
	require.True(t, ok)
	assert.Equal(t, "youtube", out.Param("url"))
}

func TestContextual_NavigationForwardsAnyTarget(t *testing.T) {
	// Navigation does not vet the destination; the target rides along
	// verbatim and the skills decide what to do with it.
	c := newContextual(afterLaunch("chrome"))
	original := ForTesting("go to gmail", "go to gmail", nil, 0.3, nil)

	out, ok := c.Resolve("go to gmail", original)
	require.True(t, ok)
	assert.Equal(t, "chrome", out.Param("app"))
	assert.Equal(t, "gmail", out.Param("url"))
}

func TestContextual_NavigationSkipsResolvedOriginal(t *testing.T) {
	// A resolver configured below the default threshold can hand back
	// resolved LOW-band intents; navigation must leave those alone.
	c := newContextual(afterLaunch("chrome"))
	listFiles := catalog.Command{Name: "list-files", Exec: "ls"}
	original := ForTesting("open youtube", "open youtube", &listFiles, 0.6, nil)
	require.Equal(t, BandLow, original.Band())

	out, ok := c.Resolve("open youtube", original)
	assert.False(t, ok)

	cmd, resolved := out.Command()
	require.True(t, resolved)
	assert.Equal(t, "list-files", cmd.Name)
}

func TestContextual_NoMatchReturnsOriginal(t *testing.T) {
	r := newTestResolver(t)
	c := newContextual(afterLaunch("chrome"))

	original := r.Resolve("completely unrelated gibberish")
	out, ok := c.Resolve("completely unrelated gibberish", original)
	assert.False(t, ok)
	assert.Equal(t, original.Raw(), out.Raw())
	assert.False(t, out.Resolved())
}
