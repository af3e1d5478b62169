// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.FileWatcher.
package filewatcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
)

// FSNotifyWatcher implements ports.FileWatcher using fsnotify.
// It watches the target's parent directory rather than the file itself:
// editors and atomic writers replace files by rename, which would silently
// detach a direct file watch.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// NewFSNotifyWatcher creates a new file watcher.
func NewFSNotifyWatcher(logger *zap.Logger) (*FSNotifyWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{watcher: w, logger: logger}, nil
}

// Watch starts monitoring the file and emits events until ctx ends.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileEvent, error) {
	target := filepath.Clean(path)
	if err := w.watcher.Add(filepath.Dir(target)); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}

				var op ports.FileOperation
				switch {
				case event.Op&fsnotify.Create == fsnotify.Create:
					op = ports.FileCreated
				case event.Op&fsnotify.Write == fsnotify.Write:
					op = ports.FileModified
				case event.Op&fsnotify.Rename == fsnotify.Rename:
					op = ports.FileModified
				case event.Op&fsnotify.Remove == fsnotify.Remove:
					op = ports.FileDeleted
				default:
					continue
				}

				select {
				case events <- ports.FileEvent{Path: event.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("file watch error", zap.String("path", target), zap.Error(err))
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}
