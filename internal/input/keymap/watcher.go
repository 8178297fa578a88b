package keymap

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher errors.
var (
	ErrWatcherClosed = errors.New("keymap watcher closed")
)

// ReloadFunc receives a freshly built table after the watched file changes.
// It runs on the watcher goroutine; implementations must hand the table to
// the input thread (e.g. through a message queue) rather than swap state
// shared with it directly.
type ReloadFunc func(*Table)

// ErrorFunc receives reload failures. The previous table stays in effect.
type ErrorFunc func(error)

// Watcher reloads a keymap file when it changes on disk. Rebinding never
// touches the hot input path: each change builds a complete new Table which
// the owner swaps in between key events.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	path     string
	onReload ReloadFunc
	onError  ErrorFunc

	// debounce collapses editor write bursts into one reload.
	debounce time.Duration

	closed bool
	done   chan struct{}
}

// WatchFile starts watching a keymap file. onError may be nil.
func WatchFile(path string, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	// Watch the directory: many editors replace files by rename, which
	// drops a watch set on the file itself.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		onReload: onReload,
		onError:  onError,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
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
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reload() {
	table, err := LoadTableFile(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.onReload(table)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
