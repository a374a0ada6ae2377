package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newListenCmd(logger *slog.Logger) *cobra.Command {
	var configPath string
	var voice bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Start an interactive assistant session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdListen(cmd, logger, configPath, voice)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "path to sayso.yaml")
	cmd.Flags().BoolVar(&voice, "voice", false, "take input from the microphone via the speech server")
	return cmd
}

func cmdListen(cmd *cobra.Command, logger *slog.Logger, configPath string, voice bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := buildAssistant(ctx, cmd, configPath, voice, logger)
	if err != nil {
		return err
	}

	// Ctrl-C is a normal way to leave the session, not a failure.
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
