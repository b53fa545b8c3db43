package store

import (
	"os"
	"sync"
	"time"
)

// Watcher polls a store file and reports when its modification time moves
// forward. A file that appears after the watcher started counts as a change.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func()

	mu       sync.Mutex
	baseline time.Time
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for path. onChange runs on the watcher's
// goroutine.
func NewWatcher(path string, interval time.Duration, onChange func()) *Watcher {
	w := &Watcher{path: path, interval: interval, onChange: onChange}
	w.baseline, _ = w.modTime()
	return w
}

func (w *Watcher) modTime() (time.Time, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Start begins polling in a background goroutine. Starting a running
// watcher does nothing.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.stopCh != nil {
		w.mu.Unlock()
		return
	}
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()
	go w.loop(stop)
}

// Stop ends polling. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
}

func (w *Watcher) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if w.Check() && w.onChange != nil {
				w.onChange()
			}
		}
	}
}

// Check reports whether the file changed since the last check and moves
// the baseline forward.
func (w *Watcher) Check() bool {
	mt, err := w.modTime()
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !mt.After(w.baseline) {
		return false
	}
	w.baseline = mt
	return true
}
