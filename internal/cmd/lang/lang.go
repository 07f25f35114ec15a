// Package lang provides commands that list the languages and styles sitehl
// can highlight with.
package lang

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/internal/view"
	"github.com/open-cli-collective/sitehl/pkg/highlight"
)

// NewCmdLang creates the lang command.
func NewCmdLang() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "List supported languages and styles",
	}

	cmd.AddCommand(newCmdList())
	cmd.AddCommand(newCmdStyles())

	return cmd
}

type listOptions struct {
	all     bool
	globals cmdutil.Globals
	out     io.Writer
}

func newCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List languages with a native grammar",
		Long: `List the languages highlighted by a native grammar. With --all, the
chroma lexers used as fallback are listed too.`,
		Example: `  # Native grammars
  sitehl lang list

  # Everything that can be highlighted
  sitehl lang list --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			opts.out = cmd.OutOrStdout()

			cfg, err := cmdutil.LoadConfig(opts.globals.ResolvedConfigPath())
			if err != nil {
				return err
			}
			return runList(opts, cfg)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Include chroma fallback lexers")

	return cmd
}

func runList(opts *listOptions, cfg *config.Config) error {
	renderer, err := cmdutil.NewRenderer(opts.globals, cfg, opts.out)
	if err != nil {
		return err
	}

	h := cmdutil.NewHighlighter(cfg)
	var rows [][]string
	for _, l := range h.Registry().Languages() {
		rows = append(rows, []string{l.Name, strings.Join(l.Aliases, ", "), string(highlight.EnginePrism)})
	}

	if opts.all {
		for _, name := range lexers.Names(false) {
			if h.Engine(name) != highlight.EngineChroma {
				continue
			}
			rows = append(rows, []string{name, "", string(highlight.EngineChroma)})
		}
	}

	renderer.RenderTable([]string{"NAME", "ALIASES", "ENGINE"}, rows)

	if opts.all && !cfg.ChromaFallback && renderer.Format() == view.FormatTable {
		renderer.RenderText("")
		renderer.Warning("chroma_fallback is off: only native grammars are used")
	}
	return nil
}

type stylesOptions struct {
	globals cmdutil.Globals
	out     io.Writer
}

func newCmdStyles() *cobra.Command {
	opts := &stylesOptions{}

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the color styles available for stylesheets",
		Example: `  sitehl lang styles
  sitehl render post.md --standalone --style dracula`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.globals = cmdutil.GlobalsFrom(cmd)
			opts.out = cmd.OutOrStdout()

			cfg, err := cmdutil.LoadConfig(opts.globals.ResolvedConfigPath())
			if err != nil {
				return err
			}
			return runStyles(opts, cfg)
		},
	}

	return cmd
}

func runStyles(opts *stylesOptions, cfg *config.Config) error {
	renderer, err := cmdutil.NewRenderer(opts.globals, cfg, opts.out)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, name := range highlight.StyleNames() {
		current := ""
		if strings.EqualFold(name, cfg.ChromaStyle) {
			current = "*"
		}
		rows = append(rows, []string{name, current})
	}
	renderer.RenderTable([]string{"STYLE", "CURRENT"}, rows)
	return nil
}
