package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/lectern/lectern/logging"
)

// Watcher watches directory trees recursively and invokes a callback after
// changes settle. fsnotify only watches single directories, so every
// subdirectory is added individually and newly created ones are picked up
// from Create events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	ignore   []string
	debounce time.Duration
	onChange func()
	log      *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher sets up recursive watches on every directory under roots,
// skipping hidden directories and anything under an ignore prefix.
func NewWatcher(roots []string, ignore []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		ignore:   ignore,
		debounce: debounce,
		onChange: onChange,
		log:      logging.NewLogger("watcher"),
	}

	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(p) || (p != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.log.WithError(err).Warnf("Failed to watch %s", p)
		}
		return nil
	})
}

func (w *Watcher) ignored(p string) bool {
	for _, prefix := range w.ignore {
		if p == prefix || strings.HasPrefix(p, prefix+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// Start processes events until the context is cancelled. Call it from a
// goroutine; it blocks.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) || strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
					}
				}
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

// schedule resets the debounce timer so a burst of saves produces one
// callback.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
