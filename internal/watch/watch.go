// Package watch re-runs a callback whenever a file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the bursts of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange after path is written, created or renamed into
// place. The parent directory is watched so atomic saves are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	onChange func() error
	debounce time.Duration
}

// New watches path. A nil logger discards log output.
func New(path string, logger *zap.Logger, onChange func() error) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: nil callback")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("error watching %s: %w", path, err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		logger:   logger,
		onChange: onChange,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period before OnChange runs.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run blocks until ctx is done, then closes the underlying watcher.
// Errors returned by OnChange are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		case <-timer.C:
			if err := w.onChange(); err != nil {
				w.logger.Error("reload failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
