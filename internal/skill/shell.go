package skill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shahar-caura/sayso/internal/executor"
	"github.com/shahar-caura/sayso/internal/intent"
)

// Shell runs any resolved command that carries an exec line. It sits last
// in the registry, behind the skills with more specific claims.
type Shell struct {
	exec   *executor.Executor
	logger *slog.Logger
}

// NewShell builds a Shell skill over the executor.
func NewShell(exec *executor.Executor, logger *slog.Logger) *Shell {
	return &Shell{exec: exec, logger: logger}
}

func (s *Shell) Name() string { return "shell" }

// CanHandle claims resolved commands with a non-empty exec line.
func (s *Shell) CanHandle(in intent.Intent) bool {
	cmd, ok := in.Command()
	return ok && strings.TrimSpace(cmd.Exec) != ""
}

// Execute runs the command and treats a nonzero exit as failure.
func (s *Shell) Execute(ctx context.Context, in intent.Intent) error {
	cmd, ok := in.Command()
	if !ok {
		return fmt.Errorf("shell skill needs a resolved command")
	}

	code, err := s.exec.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%s exited with code %d", cmd.Name, code)
	}
	s.logger.Debug("command succeeded", "name", cmd.Name)
	return nil
}
