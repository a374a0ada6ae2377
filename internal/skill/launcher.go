package skill

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
)

// AppLauncher starts and stops whitelisted desktop applications.
type AppLauncher struct {
	apps   map[string]string // spoken name → executable
	logger *slog.Logger

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewAppLauncher builds an AppLauncher over the whitelist mapping spoken
// app names to executables.
func NewAppLauncher(apps map[string]string, logger *slog.Logger) *AppLauncher {
	return &AppLauncher{
		apps:           apps,
		logger:         logger,
		commandContext: exec.CommandContext,
	}
}

func (a *AppLauncher) Name() string { return "app-launcher" }

// CanHandle claims launch-command intents whose app is whitelisted.
func (a *AppLauncher) CanHandle(in intent.Intent) bool {
	cmd, ok := in.Command()
	if !ok || !strings.EqualFold(cmd.Name, catalog.LaunchCommand) {
		return false
	}
	_, known := a.apps[strings.ToLower(in.Param("app"))]
	return known
}

// Execute starts the app detached, or kills it for action=close intents.
func (a *AppLauncher) Execute(ctx context.Context, in intent.Intent) error {
	app := strings.ToLower(in.Param("app"))
	path, ok := a.apps[app]
	if !ok {
		return fmt.Errorf("app %q is not whitelisted", app)
	}

	if in.Param("action") == "close" {
		return a.close(ctx, app, path)
	}

	var args []string
	if url := in.Param("url"); url != "" {
		args = append(args, url)
	}

	cmd := a.commandContext(ctx, path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", app, err)
	}
	a.logger.Info("launched app", "app", app, "pid", cmd.Process.Pid)

	// Reap the child when it exits; the launcher does not wait for it.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (a *AppLauncher) close(ctx context.Context, app, path string) error {
	out, err := a.commandContext(ctx, "pkill", "-f", filepath.Base(path)).CombinedOutput()
	if err != nil {
		// pkill exits 1 when nothing matched.
		return fmt.Errorf("closing %s: %w: %s", app, err, strings.TrimSpace(string(out)))
	}
	a.logger.Info("closed app", "app", app)
	return nil
}
