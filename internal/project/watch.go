package project

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch notifies on the returned channel whenever local.properties is
// created, written, renamed or removed. The channel is closed when ctx is
// done or the watcher fails.
func Watch(ctx context.Context, p *Project) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory; editors replace files atomically.
	if err := w.Add(p.Path()); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", p.Path(), err)
	}

	target := filepath.Base(p.PropertiesPath())
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != target || ev.Op == fsnotify.Chmod {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("project watcher", "path", p.Path(), "err", err)
			}
		}
	}()
	return ch, nil
}
