// Package cmdutil holds the plumbing shared by sitehl commands: global
// flags, config loading, logging and the highlighter they all use.
package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/internal/view"
	"github.com/open-cli-collective/sitehl/pkg/highlight"
	"github.com/open-cli-collective/sitehl/pkg/prism/languages"
)

// Globals holds the persistent flags of the root command.
type Globals struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// GlobalsFrom reads the persistent flags visible to cmd.
func GlobalsFrom(cmd *cobra.Command) Globals {
	var g Globals
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Verbose, _ = cmd.Flags().GetBool("verbose")
	return g
}

// ResolvedConfigPath returns the config file for g, looking for a project
// file in the working directory.
func (g Globals) ResolvedConfigPath() string {
	return config.ResolvePath(g.ConfigPath, ".")
}

// LoadConfig loads and validates the configuration at path.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'sitehl init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'sitehl init' to configure)", err)
	}
	return cfg, nil
}

// NewHighlighter builds the highlighter described by cfg.
func NewHighlighter(cfg *config.Config) *highlight.Highlighter {
	return highlight.New(languages.NewRegistry(), highlight.Options{ChromaFallback: cfg.ChromaFallback})
}

// NewRenderer builds the output renderer. The --output flag wins over the
// configured format.
func NewRenderer(g Globals, cfg *config.Config, w io.Writer) (*view.Renderer, error) {
	format := g.Output
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}
	r := view.NewRenderer(view.Format(format), g.NoColor)
	if w != nil {
		r.SetWriter(w)
	}
	return r, nil
}

// SetupLogging points the global logger at w. Debug messages are shown
// only when verbose is set.
func SetupLogging(w io.Writer, verbose, noColor bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// CompleteLanguages completes --lang values with the native grammars and
// their aliases.
func CompleteLanguages(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, l := range languages.NewRegistry().Languages() {
		for _, name := range append([]string{l.Name}, l.Aliases...) {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
