// Package completion provides the shell completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// NewCommand creates the completion command. Scripts are written to stdout.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Example: `  # Load completions in the current bash session
  source <(ardoq-adapter completion bash)

  # Install for zsh
  ardoq-adapter completion zsh > "${fpath[1]}/_ardoq-adapter"`,
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case ShellBash:
				return root.GenBashCompletionV2(out, true)
			case ShellZsh:
				return root.GenZshCompletion(out)
			case ShellFish:
				return root.GenFishCompletion(out, true)
			case ShellPowerShell:
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q", args[0])
			}
		},
	}
}
