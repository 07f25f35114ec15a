// Package init provides the init command for sitehl.
package init

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/pkg/highlight"
)

type initOptions struct {
	publicDir string
	include   string
	style     string
	minify    bool
	global    bool
	yes       bool
	out       io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize sitehl configuration",
		Long: `Initialize sitehl for a site.

This command will guide you through choosing the directory of built
pages, which pages to highlight and the color style used for
stylesheets. The configuration is saved to ./sitehl.yml, or with
--global to ~/.config/sitehl/config.yml.`,
		Example: `  # Interactive setup
  sitehl init

  # Accept the defaults for a Hugo site
  sitehl init --public-dir public --yes

  # Configure every project of this user
  sitehl init --global`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.publicDir, "public-dir", "", "Directory of built HTML pages (default: public)")
	cmd.Flags().StringVar(&opts.include, "include", "", "Comma-separated glob patterns of pages to highlight")
	cmd.Flags().StringVar(&opts.style, "style", "", "Chroma style for stylesheets")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify pages after highlighting")
	cmd.Flags().BoolVar(&opts.global, "global", false, "Write the user-level config instead of ./sitehl.yml")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip prompts and use flags or defaults")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := targetPath(opts.global)

	if _, err := os.Stat(configPath); err == nil && !opts.yes {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := prefill(opts)

	if !opts.yes {
		if err := runForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := highlight.CSS(cfg.ChromaStyle); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(opts.out, "Configuration saved to %s\n", configPath)
	if info, err := os.Stat(cfg.PublicDir); err != nil || !info.IsDir() {
		fmt.Fprintf(opts.out, "\nNote: %s does not exist yet. Build your site before highlighting.\n", cfg.PublicDir)
	}
	fmt.Fprintln(opts.out, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.out, "  sitehl config test")
	fmt.Fprintln(opts.out, "  sitehl highlight --dry-run")

	return nil
}

func targetPath(global bool) string {
	if global {
		return config.DefaultConfigPath()
	}
	return config.ProjectFile
}

// prefill starts from the defaults and applies the flags that were set.
func prefill(opts *initOptions) *config.Config {
	cfg := config.Default()
	if opts.publicDir != "" {
		cfg.PublicDir = opts.publicDir
	}
	if patterns := splitPatterns(opts.include); len(patterns) > 0 {
		cfg.Include = patterns
	}
	if opts.style != "" {
		cfg.ChromaStyle = opts.style
	}
	cfg.Minify = opts.minify
	return cfg
}

func runForm(cfg *config.Config) error {
	include := strings.Join(cfg.Include, ", ")

	styleOptions := huh.NewOptions(highlight.StyleNames()...)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Public directory").
				Description("Where your site generator writes HTML pages").
				Placeholder("public").
				Value(&cfg.PublicDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("public directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Pages").
				Description("Comma-separated glob patterns, relative to the public directory").
				Placeholder("**/*.html").
				Value(&include).
				Validate(func(s string) error {
					if len(splitPatterns(s)) == 0 {
						return fmt.Errorf("at least one pattern is required")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Minify pages after highlighting?").
				Value(&cfg.Minify),

			huh.NewConfirm().
				Title("Use chroma for languages without a native grammar?").
				Value(&cfg.ChromaFallback),

			huh.NewSelect[string]().
				Title("Stylesheet style").
				Options(styleOptions...).
				Value(&cfg.ChromaStyle),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.PublicDir = strings.TrimSpace(cfg.PublicDir)
	cfg.Include = splitPatterns(include)
	return nil
}

// splitPatterns splits a comma-separated list, dropping empty entries.
func splitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
