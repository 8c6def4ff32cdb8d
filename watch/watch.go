// Package watch invalidates the compiled template cache when template
// sources change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jmgilman/go/errors"
	fsbilly "github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// DefaultDebounce is the quiet period after the last source change before
// the cache is invalidated.
const DefaultDebounce = 100 * time.Millisecond

// Invalidator drops every cached artifact. store.Store satisfies it.
type Invalidator interface {
	DeleteAll(ctx context.Context) error
}

// InvalidatorFunc adapts a function, such as env.Environment.ClearCache, to
// the Invalidator interface.
type InvalidatorFunc func(ctx context.Context) error

// DeleteAll calls f(ctx).
func (f InvalidatorFunc) DeleteAll(ctx context.Context) error {
	return f(ctx)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions limits invalidation to files ending in one of the given
// extensions, with or without the leading dot. Without extensions every
// file change counts.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = w.extensions[:0]
		for _, ext := range exts {
			if ext = strings.TrimPrefix(ext, "."); ext != "" {
				w.extensions = append(w.extensions, "."+ext)
			}
		}
	}
}

// WithDebounce sets the quiet period. Non-positive values disable
// debouncing.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches template source trees and invalidates the cache after
// changes settle.
type Watcher struct {
	inv        Invalidator
	fsys       core.FS
	watcher    *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
	logger     *slog.Logger
}

// New starts watching paths, and every directory below them, for changes.
// Directories created later are watched as they appear. Events are delivered
// once Run is called.
func New(inv Invalidator, paths []string, opts ...Option) (*Watcher, error) {
	if inv == nil {
		return nil, errors.New(errors.CodeInvalidInput, "invalidator is required")
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "at least one watch path is required")
	}

	w := &Watcher{
		inv:      inv,
		fsys:     fsbilly.NewLocal(),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create file watcher")
	}
	w.watcher = watcher

	for _, p := range paths {
		if err := w.addTree(p); err != nil {
			_ = watcher.Close()
			return nil, errors.WrapWithContext(err, errors.CodeNotFound, "failed to watch template sources", map[string]interface{}{
				"path": p,
			})
		}
	}

	return w, nil
}

// Run delivers events until ctx is cancelled or the watcher is closed.
// Invalidation failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
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
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "template source changed", "path", event.Name, "op", event.Op.String())

			if w.debounce <= 0 {
				w.invalidate(ctx)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", "error", err)

		case <-fire:
			fire = nil
			w.invalidate(ctx)
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// relevant reports whether event should trigger an invalidation. New
// directories are added to the watch set as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := w.fsys.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	if len(w.extensions) == 0 {
		return true
	}
	for _, ext := range w.extensions {
		if strings.HasSuffix(event.Name, ext) {
			return true
		}
	}
	return false
}

func (w *Watcher) invalidate(ctx context.Context) {
	if err := w.inv.DeleteAll(ctx); err != nil {
		w.logger.WarnContext(ctx, "cache invalidation failed", "error", err)
		return
	}
	w.logger.InfoContext(ctx, "cache invalidated after source change")
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	info, err := w.fsys.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(root)
	}

	return w.fsys.Walk(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entries can vanish while walking.
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				w.logger.Warn("failed to watch directory", "path", p, "error", err)
			}
		}
		return nil
	})
}
