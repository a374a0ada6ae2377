package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shahar-caura/sayso/internal/config"
	"github.com/spf13/cobra"
)

// version is stamped at release time via -ldflags.
var version = "dev"

// logLevel is shared with newRootCmd so --verbose can raise it after
// flag parsing.
var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config.LoadEnvFiles()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("sayso failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:     "sayso",
		Short:   "Deterministic command assistant for voice and typed input",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare "sayso" starts an interactive session; anything else
			// is treated as a one-shot utterance ("sayso open chrome").
			if len(args) == 0 {
				return cmdListen(cmd, logger, defaultConfigPath, false)
			}
			return cmdDo(cmd, logger, defaultConfigPath, strings.Join(args, " "))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListenCmd(logger),
		newDoCmd(logger),
		newCommandsCmd(),
		newInitCmd(),
		newCompletionCmd(),
	)
	return root
}
