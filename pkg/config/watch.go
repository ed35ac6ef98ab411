package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fivemoreminix/moledit/pkg/log"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a keyword record made outside the editor, such
// as another editor saving it or `moledit keywords add` running in a shell.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// NewWatcher creates a watcher for the record at path. A zero debounce uses
// DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(path),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directory holding the record, since Save replaces the
// file by renaming over it. The returned channel receives one value per burst
// of changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching keywords", "path", w.path)

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
			pending = true

		case <-timerC:
			timerC = nil
			if pending {
				// Drop the signal if one is already queued
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
