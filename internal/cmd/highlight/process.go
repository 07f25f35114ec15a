package highlight

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/sitehl/pkg/page"
)

// result is the outcome of processing one file.
type result struct {
	path    string
	stats   page.Stats
	changed bool
	err     error
}

// processor rewrites pages in place and remembers what it wrote, so the
// watcher can tell its own writes from edits.
type processor struct {
	h      page.Highlighter
	opts   page.Options
	dryRun bool

	mu      sync.Mutex
	written map[string][]byte
}

func newProcessor(h page.Highlighter, opts page.Options, dryRun bool) *processor {
	return &processor{
		h:       h,
		opts:    opts,
		dryRun:  dryRun,
		written: make(map[string][]byte),
	}
}

// processFile highlights one page. The file is only rewritten when the
// output differs from its content.
func (p *processor) processFile(path string) result {
	res := result{path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("failed to read file: %w", err)
		return res
	}

	out, stats, err := page.ProcessHTML(src, p.h, p.opts)
	res.stats = stats
	if err != nil {
		res.err = err
		return res
	}

	res.changed = !bytes.Equal(src, out)
	if !res.changed || p.dryRun {
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		res.err = fmt.Errorf("failed to stat file: %w", err)
		return res
	}
	p.remember(path, out)
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		p.forget(path)
		res.err = fmt.Errorf("failed to write file: %w", err)
	}
	return res
}

// ownWrite reports whether the current content of path is what the
// processor last wrote there.
func (p *processor) ownWrite(path string) bool {
	p.mu.Lock()
	last, ok := p.written[path]
	p.mu.Unlock()
	if !ok {
		return false
	}
	current, err := os.ReadFile(path)
	return err == nil && bytes.Equal(current, last)
}

func (p *processor) remember(path string, content []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written[path] = content
}

func (p *processor) forget(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.written, path)
}

// processAll processes files with at most jobs running at once. Results
// keep the order of files. A failing file never stops the others.
func (p *processor) processAll(ctx context.Context, files []string, jobs int) []result {
	results := make([]result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = result{path: path, err: err}
				return nil
			}
			results[i] = p.processFile(path)
			if err := results[i].err; err != nil {
				log.Error().Err(err).Str("file", path).Msg("failed to highlight file")
			} else {
				log.Debug().Str("file", path).Int("blocks", results[i].stats.Blocks).Bool("changed", results[i].changed).Msg("processed")
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
