package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// Executor runs catalog exec lines through the shell, streaming merged
// stdout and stderr to a single writer.
type Executor struct {
	out    io.Writer
	logger *slog.Logger

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New builds an Executor writing command output to out.
func New(out io.Writer, logger *slog.Logger) *Executor {
	return &Executor{
		out:            out,
		logger:         logger,
		commandContext: exec.CommandContext,
	}
}

// Run executes the command's exec line via "sh -c". The process exit code
// is returned; err is non-nil only when the command could not run at all.
func (e *Executor) Run(ctx context.Context, cmd catalog.Command) (int, error) {
	line := strings.TrimSpace(cmd.Exec)
	if line == "" {
		return 0, fmt.Errorf("command %q has no exec line", cmd.Name)
	}

	proc := e.commandContext(ctx, "sh", "-c", line)
	if cmd.WorkDir != "" {
		info, err := os.Stat(cmd.WorkDir)
		if err != nil || !info.IsDir() {
			return 0, fmt.Errorf("workdir %q is not a directory", cmd.WorkDir)
		}
		proc.Dir = cmd.WorkDir
	}
	proc.Stdout = e.out
	proc.Stderr = e.out

	e.logger.Info("running command", "name", cmd.Name, "exec", line)

	err := proc.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.logger.Warn("command exited nonzero", "name", cmd.Name, "code", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("running %s: %w", cmd.Name, err)
}
