package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ivlev/sceneanim/internal/scene"
)

// settle coalesces the bursts of events an editor produces for one save.
const settle = 50 * time.Millisecond

// Watch calls fn with the freshly read scene every time the file at path changes, until
// ctx ends. Read errors are passed to fn as well; a broken save should not end the
// session. The directory is watched rather than the file so atomic renames are seen.
func Watch(ctx context.Context, path string, fn func(*scene.Scene, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			s, err := scene.ReadScene(path)
			if err != nil {
				slog.Warn("scene reload failed", "path", path, "err", err)
			} else {
				slog.Debug("scene reloaded", "path", path, "assets", len(s.Assets))
			}
			fn(s, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("scene watcher error", "path", path, "err", err)
		}
	}
}
