// Package root provides the root command for the sitehl CLI.
package root

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/cmd/completion"
	"github.com/open-cli-collective/sitehl/internal/cmd/configcmd"
	"github.com/open-cli-collective/sitehl/internal/cmd/highlight"
	initcmd "github.com/open-cli-collective/sitehl/internal/cmd/init"
	"github.com/open-cli-collective/sitehl/internal/cmd/lang"
	"github.com/open-cli-collective/sitehl/internal/cmd/render"
	"github.com/open-cli-collective/sitehl/internal/cmd/tokens"
	"github.com/open-cli-collective/sitehl/internal/version"
)

// NewCmdRoot creates the root command for sitehl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitehl",
		Short: "Syntax highlighting for static sites",
		Long: `sitehl highlights the code blocks of statically generated sites.

It rewrites built HTML pages so that <code class="language-*"> blocks
carry Prism-compatible token markup, with optional line numbers. templ
components are highlighted by a native grammar, and most other
languages through chroma lexers.

Get started by running: sitehl init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.GlobalsFrom(cmd)
			cmdutil.SetupLogging(os.Stderr, g.Verbose, g.NoColor)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./sitehl.yml, then ~/.config/sitehl/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "show debug logging")

	// Set version template
	cmd.SetVersionTemplate("sitehl version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(highlight.NewCmdHighlight())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(lang.NewCmdLang())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
