package skill

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
)

// Browser navigates whitelisted browsers to known websites. It claims
// launch intents whose url parameter names a site it knows, so plain
// launches and unknown destinations fall through to the AppLauncher.
type Browser struct {
	browsers map[string]string // spoken name → executable
	websites map[string]string // spoken name → address
	logger   *slog.Logger

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewBrowser builds a Browser over the whitelists mapping spoken browser
// names to executables and spoken site names to addresses.
func NewBrowser(browsers, websites map[string]string, logger *slog.Logger) *Browser {
	return &Browser{
		browsers:       browsers,
		websites:       websites,
		logger:         logger,
		commandContext: exec.CommandContext,
	}
}

func (b *Browser) Name() string { return "browser" }

// CanHandle claims navigation intents: a launch command, a whitelisted
// browser, and a url naming a known site.
func (b *Browser) CanHandle(in intent.Intent) bool {
	cmd, ok := in.Command()
	if !ok || !strings.EqualFold(cmd.Name, catalog.LaunchCommand) {
		return false
	}
	if in.Param("url") == "" || in.Param("action") == "close" {
		return false
	}
	if _, known := b.browsers[strings.ToLower(in.Param("app"))]; !known {
		return false
	}
	_, known := b.websites[strings.ToLower(in.Param("url"))]
	return known
}

// Execute opens the site named by the intent's url in the resolved
// browser, detached. The spoken site name becomes an address here, at the
// last moment before launch.
func (b *Browser) Execute(ctx context.Context, in intent.Intent) error {
	browser := strings.ToLower(in.Param("app"))
	path, ok := b.browsers[browser]
	if !ok {
		return fmt.Errorf("browser %q is not whitelisted", browser)
	}
	site := strings.ToLower(in.Param("url"))
	url, ok := b.websites[site]
	if !ok {
		return fmt.Errorf("site %q is not in the website list", site)
	}

	cmd := b.commandContext(ctx, path, url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s in %s: %w", site, browser, err)
	}
	b.logger.Info("opened site", "browser", browser, "site", site, "url", url)

	go func() { _ = cmd.Wait() }()
	return nil
}
