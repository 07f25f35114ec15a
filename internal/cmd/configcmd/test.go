package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/pkg/highlight"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration against the site",
		Long: `Check that the configuration is valid, that the public directory exists,
that the include patterns match pages and that the style is known.`,
		Example: `  # Test configuration
  sitehl config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.GlobalsFrom(cmd)
			cfg, err := cmdutil.LoadConfig(g.ResolvedConfigPath())
			if err != nil {
				return err
			}
			return runTest(cmd.OutOrStdout(), g.NoColor, cfg)
		},
	}

	return cmd
}

func runTest(w io.Writer, noColor bool, cfg *config.Config) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(w, "Checking %s...\n", cfg.PublicDir)

	info, err := os.Stat(cfg.PublicDir)
	if err != nil || !info.IsDir() {
		_, _ = red.Fprintf(w, "✗ Public directory not found: %s\n", cfg.PublicDir)
		fmt.Fprintln(w, "\nBuild your site first, or reconfigure with: sitehl init")
		return fmt.Errorf("public directory not found: %s", cfg.PublicDir)
	}
	_, _ = green.Fprintln(w, "✓ Public directory exists")

	fsys := os.DirFS(cfg.PublicDir)
	total := 0
	for _, pattern := range cfg.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		total += len(matches)
		fmt.Fprintf(w, "  %s: %d files\n", pattern, len(matches))
	}
	if total == 0 {
		_, _ = yellow.Fprintln(w, "! No pages match the include patterns")
	} else {
		_, _ = green.Fprintln(w, "✓ Include patterns match pages")
	}

	if _, err := highlight.CSS(cfg.ChromaStyle); err != nil {
		_, _ = red.Fprintf(w, "✗ Unknown style: %s\n", cfg.ChromaStyle)
		fmt.Fprintln(w, "\nList styles with: sitehl lang styles")
		return err
	}
	_, _ = green.Fprintf(w, "✓ Style %s is available\n", cfg.ChromaStyle)

	h := cmdutil.NewHighlighter(cfg)
	fallback := "off"
	if cfg.ChromaFallback {
		fallback = "on"
	}
	fmt.Fprintf(w, "\n%d native grammars, chroma fallback %s\n", len(h.Registry().Languages()), fallback)

	return nil
}
