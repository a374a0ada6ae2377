package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/config"
	"github.com/spf13/cobra"
)

func newCommandsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "commands [filter]",
		Short: "List catalog commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return cmdCommands(cmd.OutOrStdout(), configPath, filter)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "path to sayso.yaml")
	return cmd
}

func cmdCommands(out io.Writer, configPath, filter string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	indexes := matchCommands(cat.Commands, filter)
	if len(indexes) == 0 {
		fmt.Fprintf(out, "No commands match %q.\n", filter)
		return nil
	}

	for _, i := range indexes {
		entry := cat.Commands[i]
		fmt.Fprintf(out, "  %2d. %s", i+1, entry.Name)
		if len(entry.Aliases) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(entry.Aliases, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// matchCommands returns catalog indexes to display: file order when the
// filter is empty, fuzzy rank order otherwise. Aliases are searched too;
// a command appears once, under its best match. The filter only shapes
// the listing, it never feeds resolution.
func matchCommands(cmds []catalog.Command, filter string) []int {
	if filter == "" {
		indexes := make([]int, len(cmds))
		for i := range indexes {
			indexes[i] = i
		}
		return indexes
	}

	var targets []string
	var owner []int
	for i, c := range cmds {
		targets = append(targets, c.Name)
		owner = append(owner, i)
		for _, alias := range c.Aliases {
			targets = append(targets, alias)
			owner = append(owner, i)
		}
	}

	seen := make(map[int]bool)
	var indexes []int
	for _, m := range fuzzy.Find(filter, targets) {
		i := owner[m.Index]
		if seen[i] {
			continue
		}
		seen[i] = true
		indexes = append(indexes, i)
	}
	return indexes
}
