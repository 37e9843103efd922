package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherStarted is returned by Start and Run on a watcher that already ran.
var ErrWatcherStarted = errors.New("settings watcher already started")

// Watcher reloads a settings file into a Store whenever it is written. Bursts of events are
// debounced into one reload, and a file that fails to load leaves the store untouched.
type Watcher struct {
	mu      sync.Mutex
	started bool

	fsw      *fsnotify.Watcher
	path     string
	store    *Store
	debounce time.Duration
	onReload func(s *Settings, graphicsChanged bool)
	logger   *zap.Logger

	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

// WatcherOption is a functional option for configuring a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Non-positive values are ignored.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnReload registers a callback run after each successful reload.
func WithOnReload(fn func(s *Settings, graphicsChanged bool)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for the settings file at path. The file's directory is watched
// so editors that replace the file on save are seen.
//
// Parameters:
//   - path: the settings file
//   - store: the store reloads are written to
//   - options: functional options
//
// Returns:
//   - *Watcher: the watcher
//   - error: an error creating the fsnotify watcher
func NewWatcher(path string, store *Store, options ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("settings watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		path:     filepath.Clean(path),
		store:    store,
		debounce: 250 * time.Millisecond,
		logger:   zap.NewNop(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrWatcherStarted
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("settings watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true
	w.logger.Info("watching settings", zap.String("path", w.path))
	return nil
}

// Start watches in a background goroutine until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.begin(); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

// Run watches on the calling goroutine until ctx is done or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.begin(); err != nil {
		return err
	}
	w.loop(ctx)
	return nil
}

// Stop ends the watch loop, waits for it to exit and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.doneCh
		return
	}
	w.close()
}

func (w *Watcher) close() {
	w.closeOnce.Do(func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("closing settings watcher", zap.Error(err))
		}
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	defer w.close()

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
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.logger.Warn("settings reload failed, keeping current settings", zap.Error(err))
		return
	}
	changed := w.store.Replace(s)
	w.logger.Info("settings reloaded", zap.Bool("graphics_changed", changed))
	if w.onReload != nil {
		w.onReload(s, changed)
	}
}
