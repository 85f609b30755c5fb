package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadOps are the file events that can change a prompt.
const reloadOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch reloads the library whenever prompt files in its directory change,
// until ctx is cancelled. Bursts of events within Config.Debounce trigger a
// single reload. A failed reload is logged and the previous prompts stay
// active. Watch returns nil when ctx is cancelled.
//
// New starts the same loop in the background when Config.Watch is set.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := l.newWatcher()
	if err != nil {
		return err
	}
	return l.watchLoop(ctx, watcher)
}

func (l *Library) newWatcher() (*fsnotify.Watcher, error) {
	if l.cfg.Dir == "" {
		return nil, ErrNoDir
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(l.cfg.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", l.cfg.Dir, err)
	}
	return watcher, nil
}

func (l *Library) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsPromptFile(event.Name) || event.Op&reloadOps == 0 {
				continue
			}
			l.logger.Debug("prompt file changed",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()))
			pending = time.After(l.cfg.Debounce)

		case <-pending:
			pending = nil
			if err := l.Reload(ctx); err != nil {
				l.logger.Warn("prompt library reload failed, keeping previous prompts",
					slog.String("dir", l.cfg.Dir),
					slog.Any("error", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("prompt watcher error", slog.Any("error", err))
		}
	}
}
