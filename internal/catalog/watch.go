package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever the file at path changes and delivers
// each successfully validated catalog on the returned channel. Invalid or
// partially written files are skipped, so the previous catalog stays live.
// The channel carries at most the newest pending catalog and closes when
// ctx is cancelled.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan *Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating catalog watcher: %w", err)
	}

	// Watch the directory, not the file: editors and atomic writers replace
	// the file by rename, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching catalog dir: %w", err)
	}

	out := make(chan *Catalog, 1)
	go func() {
		defer close(out)
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Base(event.Name) != filepath.Base(abs) {
					continue
				}

				c, err := Load(abs)
				if err != nil {
					// Transient read during an atomic write, or a bad edit.
					logger.Warn("catalog reload skipped", "path", abs, "err", err)
					continue
				}
				logger.Info("catalog reloaded", "path", abs, "commands", len(c.Commands))

				// Keep only the newest catalog if the consumer is behind.
				select {
				case out <- c:
				default:
					select {
					case <-out:
					default:
					}
					out <- c
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("catalog watcher error", "err", err)
			}
		}
	}()

	return out, nil
}
