// Package watcher turns file system notifications into debounced resource-changed events.
package watcher

import (
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/oracle/internal/core/domain"
)

// Debouncer coalesces rapid resource changes into batches.
// Within a window each path is reported once, with the last operation seen for it.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]domain.ResourceOp
	timer    *time.Timer
	window   time.Duration
	callback func([]domain.ResourceChanged)
	stopped  bool
	inflight sync.WaitGroup
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func([]domain.ResourceChanged)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]domain.ResourceOp),
		window:   window,
		callback: callback,
	}
}

// Add records a change and restarts the debounce window.
func (d *Debouncer) Add(evt domain.ResourceChanged) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[evt.Path] = evt.Op

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.drain()
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	if d.callback != nil {
		d.callback(batch)
	}
}

// Flush delivers all pending changes immediately and blocks until the callback returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// The timer already fired; its batch is being delivered.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.drain()
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(batch)
	}
}

// Stop drops pending changes, rejects new ones, and waits for an in-flight batch.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
	d.mu.Unlock()

	d.inflight.Wait()
}

// drain must be called with d.mu held.
func (d *Debouncer) drain() []domain.ResourceChanged {
	batch := make([]domain.ResourceChanged, 0, len(d.pending))
	for path, op := range d.pending {
		batch = append(batch, domain.ResourceChanged{Path: path, Op: op})
	}
	clear(d.pending)
	slices.SortFunc(batch, func(a, b domain.ResourceChanged) int { return strings.Compare(a.Path, b.Path) })
	return batch
}
