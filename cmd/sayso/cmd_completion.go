package main

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "completion <bash|zsh|fish|powershell>",
		Short:  "Generate shell completion script",
		Hidden: true,
		Long: `Generate a shell completion script for sayso.

To load completions:

  bash:
    source <(sayso completion bash)

  zsh:
    echo 'source <(sayso completion zsh)' >> ~/.zshrc

  fish:
    sayso completion fish | source
    # To load on startup:
    sayso completion fish > ~/.config/fish/completions/sayso.fish
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return cmd.Help()
			}
		},
	}
	return cmd
}
