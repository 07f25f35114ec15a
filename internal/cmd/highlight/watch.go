package highlight

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounceDelay groups the bursts of events a single save produces.
const debounceDelay = 100 * time.Millisecond

// watcher re-processes pages under root when they change.
type watcher struct {
	root    string
	include []string
	exclude []string
	proc    *processor
	jobs    int

	// onBatch, if set, receives the results of every batch.
	onBatch func([]result)
}

// run blocks until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := addRecursive(fsw, w.root); err != nil {
		return err
	}
	log.Info().Str("dir", w.root).Msg("watching for changes")

	pending := make(map[string]bool)
	timer := time.NewTimer(debounceDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch directory")
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !matches(w.root, event.Name, w.include, w.exclude) || w.proc.ownWrite(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounceDelay)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for path := range pending {
				files = append(files, path)
			}
			clear(pending)
			sort.Strings(files)

			results := w.proc.processAll(ctx, files, w.jobs)
			for _, r := range results {
				if r.err == nil {
					log.Info().Str("file", r.path).Int("blocks", r.stats.Blocks).Msg("highlighted")
				}
			}
			if w.onBatch != nil {
				w.onBatch(results)
			}
		}
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
