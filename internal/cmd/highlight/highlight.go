// Package highlight provides the command that highlights code blocks in
// a directory of built HTML pages.
package highlight

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/internal/view"
	"github.com/open-cli-collective/sitehl/pkg/page"
)

type highlightOptions struct {
	dir    string
	minify bool
	dryRun bool
	watch  bool
	jobs   int

	// minifySet is true when --minify was given, overriding the config.
	minifySet bool
	globals   cmdutil.Globals
	out       io.Writer
}

// NewCmdHighlight creates the highlight command.
func NewCmdHighlight() *cobra.Command {
	opts := &highlightOptions{}

	cmd := &cobra.Command{
		Use:   "highlight [dir]",
		Short: "Highlight code blocks in built HTML pages",
		Long: `Highlight every <code class="language-*"> block of the HTML pages in a
directory, rewriting the pages in place.

Pages are selected with the include and exclude glob patterns of the
config (default: **/*.html under public_dir). Blocks inside a
<pre class="line-numbers"> get numbered lines, using the JSON in the
pre's data-meta attribute for the first line number and the
highlighted lines.`,
		Example: `  # Highlight the configured public directory
  sitehl highlight

  # Highlight another directory and minify the pages
  sitehl highlight dist --minify

  # Show what would change without writing
  sitehl highlight --dry-run

  # Keep highlighting pages as they are rebuilt
  sitehl highlight --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.dir = args[0]
			}
			opts.minifySet = cmd.Flags().Changed("minify")
			opts.globals = cmdutil.GlobalsFrom(cmd)
			opts.out = cmd.OutOrStdout()

			cfg, err := cmdutil.LoadConfig(opts.globals.ResolvedConfigPath())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHighlight(ctx, opts, cfg)
		},
	}

	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify pages after highlighting (overrides config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing files")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-highlight pages when they change")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "Number of files to process at once")

	return cmd
}

func runHighlight(ctx context.Context, opts *highlightOptions, cfg *config.Config) error {
	renderer, err := cmdutil.NewRenderer(opts.globals, cfg, opts.out)
	if err != nil {
		return err
	}

	root := opts.dir
	if root == "" {
		root = cfg.PublicDir
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("directory not found: %s", root)
	}

	minify := cfg.Minify
	if opts.minifySet {
		minify = opts.minify
	}

	files, err := findFiles(root, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}

	proc := newProcessor(cmdutil.NewHighlighter(cfg), page.Options{Minify: minify}, opts.dryRun)

	if len(files) == 0 {
		renderer.RenderText(fmt.Sprintf("No pages found in %s.", root))
	} else {
		log.Debug().Str("dir", root).Int("files", len(files)).Bool("minify", minify).Msg("highlighting")
		results := proc.processAll(ctx, files, opts.jobs)
		renderSummary(renderer, results, opts.dryRun)
		if failed := countFailed(results); failed > 0 && !opts.watch {
			return fmt.Errorf("failed to highlight %d of %d files", failed, len(results))
		}
	}

	if !opts.watch {
		return nil
	}
	w := &watcher{
		root:    root,
		include: cfg.Include,
		exclude: cfg.Exclude,
		proc:    proc,
		jobs:    opts.jobs,
	}
	return w.run(ctx)
}

func countFailed(results []result) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}

func renderSummary(renderer *view.Renderer, results []result, dryRun bool) {
	headers := []string{"FILE", "BLOCKS", "HIGHLIGHTED", "NUMBERED", "UNKNOWN", "STATUS"}
	var rows [][]string
	var total page.Stats
	changed := 0

	for _, r := range results {
		total.Add(r.stats)
		status := "unchanged"
		switch {
		case r.err != nil:
			status = "failed"
		case r.changed && dryRun:
			status = "would change"
			changed++
		case r.changed:
			status = "updated"
			changed++
		}
		rows = append(rows, []string{
			r.path,
			strconv.Itoa(r.stats.Blocks),
			strconv.Itoa(r.stats.Highlighted),
			strconv.Itoa(r.stats.Numbered),
			unknownList(r.stats.Unknown),
			status,
		})
	}

	renderer.RenderTable(headers, rows)
	if renderer.Format() != view.FormatTable {
		return
	}

	renderer.RenderText("")
	verb := "updated"
	if dryRun {
		verb = "would change"
	}
	renderer.RenderText(fmt.Sprintf("%d files, %d blocks, %d highlighted, %d %s",
		len(results), total.Blocks, total.Highlighted, changed, verb))
	if len(total.Unknown) > 0 {
		renderer.Warning("no highlighter for: " + unknownList(total.Unknown))
	}
	if failed := countFailed(results); failed > 0 {
		renderer.Error(fmt.Sprintf("%d files failed", failed))
	}
}

// unknownList formats per-language counts as "bash(2), yaml(1)".
func unknownList(unknown map[string]int) string {
	langs := make([]string, 0, len(unknown))
	for lang := range unknown {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for i, lang := range langs {
		langs[i] = fmt.Sprintf("%s(%d)", lang, unknown[lang])
	}
	return strings.Join(langs, ", ")
}
