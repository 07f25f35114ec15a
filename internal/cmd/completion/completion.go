// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// generators writes the completion script of each supported shell.
var generators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	},
	"zsh": func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	},
	"fish": func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	},
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for sitehl.

The script completes commands, flags and language names for --lang.

To load completions in your current shell session:

  # bash or zsh
  source <(sitehl completion bash)

  # fish
  sitehl completion fish | source

  # PowerShell
  sitehl completion powershell | Out-String | Invoke-Expression

To load completions for every new session, write the script to your
shell's completion directory, for example:

  sitehl completion bash > /etc/bash_completion.d/sitehl
  sitehl completion zsh > "${fpath[1]}/_sitehl"
  sitehl completion fish > ~/.config/fish/completions/sitehl.fish`,
		Example: `  # Load in current session
  source <(sitehl completion zsh)`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := generators[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
