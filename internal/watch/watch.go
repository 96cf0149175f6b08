// Package watch re-loads and re-validates a site configuration file whenever
// it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/logger"
	"github.com/oakwood-commons/docsite/pkg/site"
)

// DefaultDebounce coalesces the burst of events editors emit per save.
const DefaultDebounce = 300 * time.Millisecond

// Event is delivered after every (re)load.
type Event struct {
	// Config is the last valid configuration; it is unchanged when Err is set.
	Config *site.Config
	// Changes lists differences from the previous valid configuration.
	Changes []site.Change
	// Err is the load or validation failure, if any.
	Err error
}

// Rule is an extra check run after built-in validation.
type Rule func(*site.Config) error

// Watcher holds the last valid configuration loaded from Path.
type Watcher struct {
	Path     string
	Options  loader.Options
	Debounce time.Duration
	Rules    []Rule

	mu      sync.RWMutex
	current *site.Config
}

// New returns a watcher for the configuration file at path.
func New(path string, opts loader.Options) *Watcher {
	return &Watcher{Path: path, Options: opts, Debounce: DefaultDebounce}
}

// Current returns the last valid configuration, or nil if none loaded yet.
func (w *Watcher) Current() *site.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Reload loads and validates the file. On success the new configuration
// replaces the current one; on failure the current one is kept.
func (w *Watcher) Reload(ctx context.Context) Event {
	lgr := logger.FromContext(ctx).WithValues(logger.FileKey, w.Path)

	cfg, err := loader.Load(ctx, w.Path, w.Options)
	if err == nil {
		err = cfg.Validate()
	}
	for _, rule := range w.Rules {
		if err != nil {
			break
		}
		err = rule(cfg)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		lgr.V(1).Info("reload rejected", "error", err.Error())
		return Event{Config: w.current, Err: err}
	}

	changes := site.Diff(w.current, cfg)
	if w.current == nil {
		changes = nil
	}
	w.current = cfg
	lgr.V(1).Info("reload applied", "changes", len(changes))
	return Event{Config: cfg, Changes: changes}
}

// Run performs an initial load, then watches the file's directory and
// reloads after each debounced burst of changes to the file. fn is called
// with every result. Run blocks until ctx is cancelled, returning nil, or the
// watcher fails.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	lgr := logger.FromContext(ctx).WithValues(logger.FileKey, w.Path)

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	// Watch the directory so atomic rename-on-save keeps being observed.
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	fn(w.Reload(ctx))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			lgr.V(1).Info("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			lgr.V(1).Info("config file changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(w.Reload(ctx))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.Path, err)
		}
	}
}
