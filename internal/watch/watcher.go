// Package watch rebuilds stylesheets when their sources change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
)

// DefaultDebounce is how long the watcher waits after the last change before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// DefaultExtensions are the file types that trigger a rebuild.
var DefaultExtensions = []string{".scss", ".sass", ".css"}

// RebuildFunc runs after a debounced burst of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors directories and calls a RebuildFunc once per burst of changes.
type Watcher struct {
	dirs       []string
	exts       map[string]struct{}
	rebuild    RebuildFunc
	debounce   time.Duration
	logger     *slog.Logger
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	buildMu    sync.Mutex
	stopChan   chan struct{}
	stopOnce   sync.Once
	reloadChan chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtensions overrides DefaultExtensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			w.exts[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher over dirs. Duplicate directories are watched once.
func New(dirs []string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		rebuild:    rebuild,
		debounce:   DefaultDebounce,
		logger:     slog.Default(),
		watcher:    fw,
		stopChan:   make(chan struct{}),
		reloadChan: make(chan struct{}, 1),
	}
	WithExtensions(DefaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}

	seen := map[string]struct{}{}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", d, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		w.dirs = append(w.dirs, abs)
	}
	return w, nil
}

// Dirs returns the directories being watched.
func (w *Watcher) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

// Start begins monitoring. The loops exit when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, d := range w.dirs {
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", d, err)
		}
	}

	w.logger.Info("Watching stylesheet sources", logfields.Count(len(w.dirs)))

	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Stylesheet change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			w.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(event.Name))]
	return ok
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.reloadChan:
			stop()
			timer = time.AfterFunc(w.debounce, func() { w.run(ctx) })
		}
	}
}

// trigger requests a debounced rebuild.
func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
	}
}

// run serializes rebuilds.
func (w *Watcher) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	w.buildMu.Lock()
	defer w.buildMu.Unlock()

	start := time.Now()
	if err := w.rebuild(ctx); err != nil {
		w.logger.Error("Rebuild failed", logfields.Error(err))
		return
	}
	w.logger.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}
