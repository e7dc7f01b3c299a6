package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Config configures a Watcher.
type Config struct {
	// Debounce is the window used to coalesce changes; <= 0 uses domain.DefaultDebounceWindow.
	Debounce time.Duration
	// Skip lists directory names that are not watched.
	Skip []string
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	log       ports.Logger
	skip      []string
	debouncer *Debouncer
	events    chan domain.ResourceChanged
	ctx       context.Context
	done      chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a new file system watcher.
func NewWatcher(log ports.Logger, cfg Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}

	window := cfg.Debounce
	if window <= 0 {
		window = domain.DefaultDebounceWindow
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		log:       log,
		skip:      slices.Clone(cfg.Skip),
		events:    make(chan domain.ResourceChanged, eventChannelBuffer),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w, nil
}

// Start watches root recursively until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.ctx = ctx
	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator over debounced changes. It ends once the watcher stops.
func (w *Watcher) Events() iter.Seq[domain.ResourceChanged] {
	return func(yield func(domain.ResourceChanged) bool) {
		for evt := range w.events {
			if !yield(evt) {
				return
			}
		}
	}
}

func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.shouldSkip(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) shouldSkip(name string) bool {
	return slices.Contains(w.skip, name)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			w.debouncer.Flush()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				w.debouncer.Flush()
				return
			}
			evt, ok := convertEvent(event)
			if !ok {
				continue
			}
			w.debouncer.Add(evt)

			if evt.Op == domain.ResourceCreated {
				w.watchCreated(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				continue
			}
			w.log.Warn("file watcher error: " + err.Error())
		}
	}
}

func (w *Watcher) watchCreated(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.shouldSkip(info.Name()) {
		return
	}
	for dir := range w.watchRecursively(path) {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.log.Warn("failed to watch " + dir + ": " + err.Error())
		}
	}
}

func (w *Watcher) emit(batch []domain.ResourceChanged) {
	for _, evt := range batch {
		select {
		case w.events <- evt:
			continue
		default:
		}
		select {
		case w.events <- evt:
		case <-w.done:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func convertEvent(event fsnotify.Event) (domain.ResourceChanged, bool) {
	var op domain.ResourceOp
	switch {
	case event.Has(fsnotify.Write):
		op = domain.ResourceWritten
	case event.Has(fsnotify.Create):
		op = domain.ResourceCreated
	case event.Has(fsnotify.Remove):
		op = domain.ResourceRemoved
	case event.Has(fsnotify.Rename):
		op = domain.ResourceRenamed
	default:
		return domain.ResourceChanged{}, false
	}
	return domain.ResourceChanged{Path: event.Name, Op: op}, true
}
