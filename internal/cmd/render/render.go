// Package render provides the command that renders a markdown post to
// HTML with highlighted code blocks.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/pkg/highlight"
	"github.com/open-cli-collective/sitehl/pkg/markdown"
	"github.com/open-cli-collective/sitehl/pkg/page"
)

type renderOptions struct {
	file       string
	outFile    string
	standalone bool
	style      string
	minify     bool
	globals    cmdutil.Globals
	in         io.Reader
	out        io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Render a markdown post to HTML",
		Long: `Render a markdown file to HTML with its fenced code blocks highlighted.

A fence whose info string is followed by a JSON object gets numbered
lines, for example:

  ` + "```templ {\"linenostart\": 10, \"highlighted\": [12]}" + `

Use - as the file to read from standard input.`,
		Example: `  # Render a post to stdout
  sitehl render posts/hello.md

  # Write a complete page with an inline stylesheet
  sitehl render posts/hello.md --file hello.html --standalone

  # Use another color scheme for the stylesheet
  sitehl render posts/hello.md --standalone --style dracula`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.globals = cmdutil.GlobalsFrom(cmd)
			opts.in = cmd.InOrStdin()
			opts.out = cmd.OutOrStdout()

			cfg, err := cmdutil.LoadConfig(opts.globals.ResolvedConfigPath())
			if err != nil {
				return err
			}
			return runRender(opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.outFile, "file", "f", "", "Write the HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.standalone, "standalone", false, "Wrap the output in a complete HTML page with CSS")
	cmd.Flags().StringVar(&opts.style, "style", "", "Chroma style for --standalone (default: from config)")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify the output")

	return cmd
}

func runRender(opts *renderOptions, cfg *config.Config) error {
	var src []byte
	var err error
	if opts.file == "-" {
		src, err = io.ReadAll(opts.in)
	} else {
		src, err = os.ReadFile(opts.file)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	conv := markdown.New(cmdutil.NewHighlighter(cfg))
	html, err := conv.Convert(src)
	if err != nil {
		return err
	}

	if opts.standalone {
		style := opts.style
		if style == "" {
			style = cfg.ChromaStyle
		}
		css, err := highlight.CSS(style)
		if err != nil {
			return fmt.Errorf("%w (see 'sitehl lang styles')", err)
		}
		title := conv.Title(src)
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(opts.file), filepath.Ext(opts.file))
		}
		html = markdown.Standalone(title, html, css)
	}

	if opts.minify {
		if html, err = page.Minify(html); err != nil {
			return err
		}
	}

	if opts.outFile == "" {
		_, err := opts.out.Write(html)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.outFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(opts.outFile, html, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.outFile, err)
	}
	log.Info().Str("file", opts.outFile).Int("bytes", len(html)).Msg("rendered")
	return nil
}
