package preset

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// changeOps are the events that may leave a preset with new content.
const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename

// Watch calls fn with the preset name each time a preset file in the store
// directory is created, written or renamed. It blocks until ctx is done and
// then returns nil.
//
// fn runs on the calling goroutine, one event at a time. Editors commonly
// write a file in several steps, so fn may be called more than once for a
// single save.
func (s *Store) Watch(ctx context.Context, fn func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch preset directory: %w", err)
	}
	s.logger.Debug("watching presets", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&changeOps == 0 {
				continue
			}
			name, ok := NameOf(ev.Name)
			if !ok {
				continue
			}
			s.logger.Debug("preset changed", "name", name, "op", ev.Op.String())
			fn(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("preset watcher error", "error", err)
		}
	}
}
