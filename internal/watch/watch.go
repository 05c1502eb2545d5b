// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package watch reconciles files as they change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"go.astrophena.name/credit/internal/discover"
	"go.astrophena.name/credit/logger"
)

// DefaultDebounce is how long a file must stay unchanged before it is
// handled.
const DefaultDebounce = 300 * time.Millisecond

// Func handles a changed file.
type Func func(ctx context.Context, path string)

// Watcher watches a directory tree and calls a [Func] for every changed
// file selected by its [discover.Options]. Files are handled one at a time
// in path order after they stop changing for the debounce period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	opts     discover.Options
	debounce time.Duration
	fn       Func

	pending map[string]time.Time
}

// New starts watching dir. The caller must call [Watcher.Run] to process
// events, or [Watcher.Close] to release the watcher.
func New(dir string, opts discover.Options, debounce time.Duration, fn Func) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		opts:     opts,
		debounce: debounce,
		fn:       fn,
		pending:  make(map[string]time.Time),
	}
	if err := w.add(dir, false, time.Time{}); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// add watches dir and, in recursive mode, its subdirectories. When enqueue
// is set, matching files already present are queued as changed at t.
func (w *Watcher) add(dir string, enqueue bool, t time.Time) error {
	if !w.opts.Recursive {
		return w.fsw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && discover.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		if enqueue && d.Type().IsRegular() && w.opts.Match(path) {
			w.pending[path] = t
		}
		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run processes events until ctx is canceled. It closes the watcher before
// returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev, time.Now())
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error(ctx, "watch error", logger.Err(err))
		case now := <-tick.C:
			w.flush(ctx, now)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event, now time.Time) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if ev.Has(fsnotify.Create) && w.opts.Recursive {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if discover.SkipDir(fi.Name()) {
				return
			}
			if err := w.add(ev.Name, true, now); err != nil {
				logger.Warn(ctx, "cannot watch directory", slog.String("path", ev.Name), logger.Err(err))
			}
			return
		}
	}
	if !w.opts.Match(ev.Name) {
		return
	}
	logger.Debug(ctx, "file changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
	w.pending[ev.Name] = now
}

// flush handles the files that have not changed for the debounce period.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	slices.Sort(ready)
	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		w.fn(ctx, path)
	}
}
