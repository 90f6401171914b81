package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for after the last change
// before running.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-runs a function whenever one of a set of files changes.
type Watcher struct {
	files    []string
	debounce time.Duration
	log      *slog.Logger
}

// NewWatcher returns a watcher over files. A zero debounce means
// DefaultDebounce.
func NewWatcher(files []string, debounce time.Duration, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.Default()
	}
	abs := make([]string, 0, len(files))
	for _, f := range files {
		if p, err := filepath.Abs(f); err == nil {
			f = p
		}
		abs = append(abs, filepath.Clean(f))
	}
	return &Watcher{files: abs, debounce: debounce, log: log}
}

// Run calls fn once, then again after every burst of changes to the watched
// files, until ctx is done. Errors returned by fn are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gqlgo: watch: %w", err)
	}
	defer fw.Close()
	// Directories are watched so that files replaced by editors are seen.
	var dirs []string
	for _, f := range w.files {
		if dir := filepath.Dir(f); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("gqlgo: watch %s: %w", dir, err)
		}
	}

	w.run(ctx, fn)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-timer.C:
			w.run(ctx, fn)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(w.files, filepath.Clean(ev.Name))
}

func (w *Watcher) run(ctx context.Context, fn func(context.Context) error) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		w.log.Error("generation failed", "error", err)
		return
	}
	w.log.Info("generation succeeded", "duration", time.Since(start))
}
