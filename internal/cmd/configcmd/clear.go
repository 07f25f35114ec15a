package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
)

// envVars are the variables that override the config file.
var envVars = []string{"SITEHL_PUBLIC_DIR", "SITEHL_MINIFY", "SITEHL_CHROMA_STYLE"}

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long: `Delete the sitehl configuration file in use: ./sitehl.yml if present,
otherwise the user-level file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  sitehl config clear

  # Clear a specific file
  sitehl config clear --config site/sitehl.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.GlobalsFrom(cmd)
			return runClear(cmd.OutOrStdout(), g.ResolvedConfigPath(), g.NoColor)
		},
	}

	return cmd
}

func runClear(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(w, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(w, "✓ Configuration cleared from %s\n", configPath)
	}

	var activeVars []string
	for _, v := range envVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		_, _ = dim.Fprintf(w, "\nNote: Environment variables will still be used: %v\n", activeVars)
	}

	return nil
}
