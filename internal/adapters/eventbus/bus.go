// Package eventbus provides an in-process publish/subscribe channel for resource changes.
package eventbus

import (
	"sync"

	"go.trai.ch/oracle/internal/core/domain"
)

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 64

// Bus implements ports.EventSource. Every subscriber owns a buffered queue and a
// goroutine, so handlers never run on the publisher's stack and a slow handler
// only delays its own queue.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	next   uint64
	closed bool
	buffer int
	wg     sync.WaitGroup
}

type subscription struct {
	ch   chan domain.ResourceChanged
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// New creates a Bus. A buffer <= 0 uses DefaultBuffer.
func New(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		subs:   make(map[uint64]*subscription),
		buffer: buffer,
	}
}

// Subscribe registers handler and returns a function that removes it.
// Events already queued for the handler are still delivered after cancel.
func (b *Bus) Subscribe(handler func(domain.ResourceChanged)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.next
	b.next++
	sub := &subscription{ch: make(chan domain.ResourceChanged, b.buffer)}
	b.subs[id] = sub

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for evt := range sub.ch {
			handler(evt)
		}
	}()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		sub.close()
	}
}

// Publish queues evt for every subscriber. It blocks while a subscriber's queue is full.
func (b *Bus) Publish(evt domain.ResourceChanged) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return domain.ErrEventBusClosed
	}
	for _, sub := range b.subs {
		sub.ch <- evt
	}
	return nil
}

// Close stops accepting events and waits until every queued event was handled.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.close()
	}
	b.mu.Unlock()

	b.wg.Wait()
}
