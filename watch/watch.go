// Package watch reloads a layout file whenever it changes on disk.
package watch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"flo.znkr.io/tabdiff/layout"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Func is called with the previously loaded and the newly loaded layout.
type Func func(prev, next *layout.Layout)

// Run loads the layout at path and then watches it until ctx is done. Every time the file changes
// to a valid layout with different content, fn is called. Invalid layouts are logged and skipped;
// the next valid layout is compared against the last valid one.
//
// The directory containing the file is watched rather than the file itself, so that editors that
// save by replacing the file are picked up.
func Run(ctx context.Context, path string, log zerolog.Logger, fn Func) error {
	return run(ctx, path, log, fn, nil)
}

func run(ctx context.Context, path string, log zerolog.Logger, fn Func, ready chan<- struct{}) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %v", path, err)
	}

	cur, err := layout.Load(path)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("starting watch: %v", err)
	}
	log.Info().Str("layout", path).Msg("watching")
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case event := <-watcher.Events:
			// Absolutely no need to react to chmod.
			if event.Has(fsnotify.Chmod) || filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Debug().Str("layout", path).Msg("layout removed, waiting for it to reappear")
				continue
			}

			next, err := layout.Load(path)
			if err != nil {
				log.Warn().Err(err).Msg("failed to reload layout")
				continue
			}
			if bytes.Equal(next.Source, cur.Source) {
				continue
			}
			fn(cur, next)
			cur = next
		case err := <-watcher.Errors:
			return fmt.Errorf("watching: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
