package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/textlayout/internal/logging"
)

// DefaultDebounce is how long a file must stay quiet before it is
// reloaded.
const DefaultDebounce = 100 * time.Millisecond

// ReloadHandler receives the reloaded configuration, or the error that
// prevented loading it. It runs on a timer goroutine and must not call
// the watcher's Close.
type ReloadHandler func(cfg *Config, err error)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen.
type Watcher struct {
	mu sync.Mutex

	path     string
	handler  ReloadHandler
	debounce time.Duration
	log      *logging.Logger

	fsw   *fsnotify.Watcher
	timer *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWatcher starts watching the config file at path.
func NewWatcher(path string, handler ReloadHandler, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := FormatOf(absPath); err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		handler:  handler,
		debounce: DefaultDebounce,
		log:      logging.Nop(),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithComponent("config")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.processLoop()

	w.log.Debug("watching %s", absPath)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. A pending reload is dropped and a running
// handler is waited for, so the handler is never called after Close
// returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("reload %s: %v", w.path, err)
	} else {
		w.log.Info("reloaded %s", w.path)
	}
	if w.handler != nil {
		w.handler(cfg, err)
	}
}
