package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/shahar-caura/sayso/internal/assistant"
	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/config"
	"github.com/shahar-caura/sayso/internal/executor"
	"github.com/shahar-caura/sayso/internal/intent"
	"github.com/shahar-caura/sayso/internal/safety"
	"github.com/shahar-caura/sayso/internal/session"
	"github.com/shahar-caura/sayso/internal/skill"
	"github.com/shahar-caura/sayso/internal/speech"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "sayso.yaml"

// components are the wired collaborators shared by the subcommands.
type components struct {
	cfg        *config.Config
	cat        *catalog.Catalog
	resolver   *intent.Resolver
	contextual *intent.ContextualResolver
	gate       *safety.Gate
	skills     *skill.Registry
	session    *session.Context
}

func wireComponents(configPath string, out io.Writer, logger *slog.Logger) (*components, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	resolver, err := intent.NewResolver(cat.Commands, cfg.Resolver.Threshold, logger)
	if err != nil {
		return nil, fmt.Errorf("building resolver: %w", err)
	}

	sess := session.New()

	danger := cfg.Danger
	if len(danger) == 0 {
		danger = safety.DefaultDangerous
	}

	return &components{
		cfg:        cfg,
		cat:        cat,
		resolver:   resolver,
		contextual: intent.NewContextualResolver(sess, sortedNames(cfg.Browsers), sortedNames(cfg.Websites), logger),
		gate: safety.NewGate(
			safety.NewListClassifier(danger),
			safety.NewScoreGapDetector(safety.DefaultScoreGap),
		),
		// Order matters: the browser skill claims launches naming a known
		// website before the plain app launcher sees them.
		skills: skill.NewRegistry(
			skill.NewBrowser(cfg.Browsers, cfg.Websites, logger),
			skill.NewAppLauncher(cfg.Apps, logger),
			skill.NewShell(executor.New(out, logger), logger),
		),
		session: sess,
	}, nil
}

func buildAssistant(ctx context.Context, cmd *cobra.Command, configPath string, voice bool, logger *slog.Logger) (*assistant.Assistant, error) {
	c, err := wireComponents(configPath, cmd.OutOrStdout(), logger)
	if err != nil {
		return nil, err
	}

	deps := assistant.Deps{
		Catalog:    c.cat,
		Resolver:   c.resolver,
		Contextual: c.contextual,
		Gate:       c.gate,
		Skills:     c.skills,
		Session:    c.session,
		Threshold:  c.cfg.Resolver.Threshold,
	}

	if voice {
		sp, err := newSpeech(c.cfg, logger)
		if err != nil {
			return nil, err
		}
		deps.Speech = sp
	}

	if c.cfg.Catalog.Watch {
		reloads, err := catalog.Watch(ctx, c.cfg.Catalog.Path, logger)
		if err != nil {
			logger.Warn("catalog watching unavailable", "error", err)
		} else {
			deps.Reloads = reloads
		}
	}

	return assistant.New(deps, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// newSpeech assembles the recorder/transcriber pair, or nil when speech
// is disabled in config so the assistant stays on keyboard input.
func newSpeech(cfg *config.Config, logger *slog.Logger) (assistant.SpeechInput, error) {
	if !cfg.Speech.Enabled {
		logger.Warn("voice requested but speech is disabled in config")
		return nil, nil
	}

	rec, err := speech.NewRecorder(cfg.Speech.RecordCmd, logger)
	if err != nil {
		return nil, fmt.Errorf("speech recorder: %w", err)
	}
	client := speech.NewClient(cfg.Speech.ServerURL, cfg.Speech.Timeout.Duration)
	return speech.NewWhisper(rec, client, logger), nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// --- Dynamic completions ---

func completeCommandNames(configPath, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, c := range cat.Commands {
		if strings.HasPrefix(c.Name, toComplete) {
			names = append(names, c.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
