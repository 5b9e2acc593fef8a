// Package watch reports changed unit files in a directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for further events before
// reporting a batch.
const DefaultDebounce = 100 * time.Millisecond

// Batch is the set of files changed during one quiet period.
type Batch struct {
	// Paths is sorted.
	Paths []string
	// Created is set when any path was newly created, which can change
	// what other units link to.
	Created bool
}

// Watcher watches one directory for writes to files with a given extension.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	log      logrus.FieldLogger
	onChange func(Batch)
}

// New creates a watcher that calls onChange with the files changed since
// the previous call.
func New(dir, ext string, log logrus.FieldLogger, onChange func(Batch)) *Watcher {
	return &Watcher{dir: dir, ext: ext, debounce: DefaultDebounce, log: log, onChange: onChange}
}

// SetDebounce changes the quiet period before a batch is reported.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run watches until ctx is cancelled. onChange runs on the calling
// goroutine, so batches never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.log.WithField("file", w.dir).Info("Watching for changes")

	pending := make(map[string]bool)
	created := false
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.WithField("file", event.Name).Debug("Change detected")
			pending[event.Name] = true
			created = created || event.Has(fsnotify.Create)
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watcher error")
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			batch := Batch{Paths: paths, Created: created}
			clear(pending)
			created = false
			w.onChange(batch)
		}
	}
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return false
	}
	return strings.HasSuffix(filepath.Base(e.Name), w.ext)
}
