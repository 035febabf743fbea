package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/editcore/internal/logging"
)

// DefaultReloadDebounce coalesces the burst of events editors produce
// when saving a file.
const DefaultReloadDebounce = 50 * time.Millisecond

// ReloadFunc receives a freshly loaded config.
type ReloadFunc func(cfg Config)

// WatchOption configures Watch.
type WatchOption func(*watchState)

// WithWatchLogger sets the logger used for reload failures.
func WithWatchLogger(l *logging.Logger) WatchOption {
	return func(w *watchState) {
		if l != nil {
			w.log = l
		}
	}
}

// WithReloadDebounce sets the debounce window.
func WithReloadDebounce(d time.Duration) WatchOption {
	return func(w *watchState) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

type watchState struct {
	path     string
	fn       ReloadFunc
	log      *logging.Logger
	debounce time.Duration
}

// Watch reloads the config at path whenever it is written, created or
// renamed into place, and hands the result to fn. Files that fail to load
// are logged and skipped. The parent directory is watched so atomic saves
// are seen. Watch returns once the watcher is running; it stops when ctx
// is done.
func Watch(ctx context.Context, path string, fn ReloadFunc, opts ...WatchOption) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w := &watchState{
		path:     abs,
		fn:       fn,
		log:      logging.Nop(),
		debounce: DefaultReloadDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	go w.processLoop(ctx, fsw)
	return nil
}

// processLoop handles incoming fsnotify events until ctx is done.
func (w *watchState) processLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher: %v", err)
		}
	}
}

func (w *watchState) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("config reload failed: %v", err)
		return
	}
	w.log.Info("config reloaded from %s", w.path)
	w.fn(cfg)
}
