package intent

import (
	"log/slog"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// Session is the read side of the conversation context consulted for
// follow-up resolution.
type Session interface {
	HasContext() bool
	LastIntent() Intent
	LastCommand() catalog.Command
}

var repeatPhrases = map[string]bool{
	"again":         true,
	"repeat":        true,
	"do it again":   true,
	"do that again": true,
	"same":          true,
	"one more time": true,
	"repeat that":   true,
	"run it again":  true,
}

var closePhrases = map[string]bool{"close": true, "close it": true, "close that": true}

// navVerbs lead follow-up navigations; "go to" and "navigate to" are
// matched as phrase prefixes instead.
var navVerbs = map[string]bool{"open": true, "launch": true, "start": true}

// ContextualResolver rewrites follow-up utterances ("again", "close it",
// "go to youtube") into fully resolved intents using the previous turn.
type ContextualResolver struct {
	session  Session
	browsers map[string]bool
	websites map[string]bool
	logger   *slog.Logger
}

// NewContextualResolver builds a ContextualResolver. browsers lists app
// names treated as web browsers; websites lists the spoken site names
// eligible for the website upgrade.
func NewContextualResolver(session Session, browsers, websites []string, logger *slog.Logger) *ContextualResolver {
	return &ContextualResolver{
		session:  session,
		browsers: lowerSet(browsers),
		websites: lowerSet(websites),
		logger:   logger,
	}
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// Resolve returns a context-enriched replacement for original and true, or
// original unchanged and false. The original Intent is never modified.
//
// The website upgrade runs first because it corrects even a fully resolved
// launch; every other strategy only fires for utterances the Resolver
// could not settle on its own.
func (c *ContextualResolver) Resolve(raw string, original Intent) (Intent, bool) {
	phrase := lightNormalize(raw)

	if in, ok := c.upgradeWebsiteLaunch(raw, original); ok {
		return in, true
	}

	if original.Band() == BandHigh {
		return original, false
	}
	if !c.session.HasContext() {
		return original, false
	}
	if original.Resolved() && original.Band().AtLeast(BandMedium) {
		return original, false
	}

	if in, ok := c.repeatLast(raw, phrase, original); ok {
		return in, true
	}
	if in, ok := c.closeLast(raw, phrase, original); ok {
		return in, true
	}
	if in, ok := c.navigateFromContext(raw, phrase, original); ok {
		return in, true
	}

	return original, false
}

// lightNormalize is deliberately weaker than Normalize: follow-up phrases
// are matched verbatim apart from case and whitespace, so "close it!"
// stays "close it!" and misses.
func lightNormalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// upgradeWebsiteLaunch turns "open youtube" straight after a browser
// launch into a navigation inside that browser. The url parameter carries
// the spoken site name; mapping it to an address is the browser skill's
// concern.
func (c *ContextualResolver) upgradeWebsiteLaunch(raw string, original Intent) (Intent, bool) {
	if !c.session.HasContext() {
		return Intent{}, false
	}
	cmd, ok := original.Command()
	if !ok || !strings.EqualFold(cmd.Name, catalog.LaunchCommand) {
		return Intent{}, false
	}
	site := strings.ToLower(original.Param("app"))
	if !c.websites[site] {
		return Intent{}, false
	}

	last := c.session.LastCommand()
	if !strings.EqualFold(last.Name, catalog.LaunchCommand) {
		return Intent{}, false
	}
	browser := c.session.LastIntent().Param("app")
	if !c.browsers[strings.ToLower(browser)] {
		return Intent{}, false
	}

	c.logger.Debug("upgraded website launch", "site", site, "browser", browser)
	return newIntent(raw, original.Normalized(), &last, 1.0, map[string]string{"app": browser, "url": site}), true
}

// repeatLast replays the previous command with its original parameters.
func (c *ContextualResolver) repeatLast(raw, phrase string, original Intent) (Intent, bool) {
	if !repeatPhrases[phrase] {
		return Intent{}, false
	}
	last := c.session.LastCommand()
	c.logger.Debug("repeating last command", "command", last.Name)
	return newIntent(raw, original.Normalized(), &last, 1.0, c.session.LastIntent().Parameters()), true
}

// closeLast maps "close" / "close it" / "close that" onto the app opened
// in the previous turn.
func (c *ContextualResolver) closeLast(raw, phrase string, original Intent) (Intent, bool) {
	if !closePhrases[phrase] {
		return Intent{}, false
	}
	last := c.session.LastCommand()
	if !strings.EqualFold(last.Name, catalog.LaunchCommand) {
		return Intent{}, false
	}
	app := c.session.LastIntent().Param("app")
	if app == "" {
		return Intent{}, false
	}
	c.logger.Debug("closing last app", "app", app)
	return newIntent(raw, original.Normalized(), &last, 1.0, map[string]string{"app": app, "action": "close"}), true
}

// navigateFromContext forwards a spoken destination to the app opened in
// the previous turn ("go to github" after "open chrome"). It never
// second-guesses a resolved intent. The target is passed through
// verbatim; vetting it is the skills' concern.
func (c *ContextualResolver) navigateFromContext(raw, phrase string, original Intent) (Intent, bool) {
	if original.Resolved() {
		return Intent{}, false
	}
	target := navTarget(phrase)
	if target == "" {
		return Intent{}, false
	}
	last := c.session.LastCommand()
	if !strings.EqualFold(last.Name, catalog.LaunchCommand) {
		return Intent{}, false
	}
	app := c.session.LastIntent().Param("app")
	if app == "" {
		return Intent{}, false
	}
	c.logger.Debug("contextual navigation", "target", target, "app", app)
	return newIntent(raw, original.Normalized(), &last, 1.0, map[string]string{"app": app, "url": target}), true
}

// navTarget extracts the destination from "open youtube", "go to github",
// "navigate to google". Empty when the phrase is not a navigation.
func navTarget(phrase string) string {
	for _, prefix := range []string{"go to ", "navigate to "} {
		if rest, ok := strings.CutPrefix(phrase, prefix); ok {
			return rest
		}
	}
	verb, rest, ok := strings.Cut(phrase, " ")
	if ok && navVerbs[verb] {
		return rest
	}
	return ""
}
