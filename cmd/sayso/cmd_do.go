package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/shahar-caura/sayso/internal/assistant"
	"github.com/shahar-caura/sayso/internal/intent"
	"github.com/shahar-caura/sayso/internal/safety"
	"github.com/spf13/cobra"
)

func newDoCmd(logger *slog.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "do <phrase>...",
		Short: "Run a single command phrase and exit",
		Args:  cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeCommandNames(configPath, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdDo(cmd, logger, configPath, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "path to sayso.yaml")
	return cmd
}

// cmdDo resolves and runs an utterance without prompting. Verdicts that
// need a follow-up answer (confirm, clarify) fail with a pointer to the
// interactive session instead.
func cmdDo(cmd *cobra.Command, logger *slog.Logger, configPath, utterance string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	c, err := wireComponents(configPath, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	steps := intent.Split(utterance)
	if len(steps) == 0 {
		return fmt.Errorf("no command in %q", utterance)
	}
	if len(steps) > assistant.MaxSteps {
		return fmt.Errorf("%d steps is too many for one shot (max %d)", len(steps), assistant.MaxSteps)
	}

	for i, step := range steps {
		if err := doStep(ctx, c, step, logger); err != nil {
			if len(steps) > 1 {
				return fmt.Errorf("step %d of %d (%q): %w", i+1, len(steps), step, err)
			}
			return err
		}
	}
	return nil
}

// doStep runs one utterance step. There is no prior turn in a one-shot
// invocation, so follow-up resolution never applies here.
func doStep(ctx context.Context, c *components, raw string, logger *slog.Logger) error {
	in := resolveOneShot(c, raw)

	switch c.gate.Evaluate(in) {
	case safety.VerdictReject:
		if !in.Resolved() {
			return fmt.Errorf("no command matches %q", raw)
		}
		entry, _ := in.Command()
		return fmt.Errorf("not confident enough to run %q (%.0f%% match)", entry.Name, in.Confidence()*100)
	case safety.VerdictClarify:
		var names []string
		for _, cand := range in.Candidates() {
			names = append(names, cand.Name)
		}
		return fmt.Errorf("%q is ambiguous (%s); use 'sayso listen' to pick interactively", raw, strings.Join(names, " or "))
	case safety.VerdictConfirm:
		entry, _ := in.Command()
		return fmt.Errorf("%q needs confirmation; run it from 'sayso listen'", entry.Name)
	}

	entry, _ := in.Command()
	sk, ok := c.skills.Find(in)
	if !ok {
		return fmt.Errorf("nothing can handle %q", entry.Name)
	}
	if err := sk.Execute(ctx, in); err != nil {
		return err
	}
	if err := c.session.Update(in, entry, sk); err != nil {
		logger.Warn("session update failed", "error", err)
	}
	return nil
}

// resolveOneShot matches a step against the catalog. A bare number picks
// the catalog entry at that position, as in the numbered listing, and
// works in any step of a multi-step phrase.
func resolveOneShot(c *components, raw string) intent.Intent {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if entry, ok := c.cat.Get(n); ok {
			return c.resolver.ResolveByCommand(raw, entry)
		}
	}
	return c.resolver.Resolve(raw)
}
