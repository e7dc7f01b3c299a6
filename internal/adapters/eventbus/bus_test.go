package eventbus_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/internal/adapters/eventbus"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

var _ ports.EventSource = (*eventbus.Bus)(nil)

type recorder struct {
	mu     sync.Mutex
	events []domain.ResourceChanged
}

func (r *recorder) handle(evt domain.ResourceChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) snapshot() []domain.ResourceChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ResourceChanged(nil), r.events...)
}

func TestBus_DeliversInOrderToEverySubscriber(t *testing.T) {
	bus := eventbus.New(1)
	var a, b recorder
	bus.Subscribe(a.handle)
	bus.Subscribe(b.handle)

	events := []domain.ResourceChanged{
		{Path: "/work/acme/x/foo.go", Op: domain.ResourceWritten},
		{Path: "/work/acme/x/bar.go", Op: domain.ResourceCreated},
		{Path: "/work/acme/x/baz.go", Op: domain.ResourceRemoved},
	}
	for _, evt := range events {
		require.NoError(t, bus.Publish(evt))
	}
	bus.Close()

	assert.Equal(t, events, a.snapshot())
	assert.Equal(t, events, b.snapshot())
}

func TestBus_HandlerRunsOffPublisherGoroutine(t *testing.T) {
	bus := eventbus.New(4)
	defer bus.Close()

	release := make(chan struct{})
	handled := make(chan struct{})
	bus.Subscribe(func(domain.ResourceChanged) {
		<-release
		close(handled)
	})

	require.NoError(t, bus.Publish(domain.ResourceChanged{Path: "/a"}))
	close(release)

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestBus_Cancel(t *testing.T) {
	bus := eventbus.New(4)
	var rec recorder
	cancel := bus.Subscribe(rec.handle)

	require.NoError(t, bus.Publish(domain.ResourceChanged{Path: "/before"}))
	cancel()
	cancel()
	require.NoError(t, bus.Publish(domain.ResourceChanged{Path: "/after"}))
	bus.Close()

	assert.Equal(t, []domain.ResourceChanged{{Path: "/before"}}, rec.snapshot())
}

func TestBus_Closed(t *testing.T) {
	bus := eventbus.New(0)
	bus.Close()
	bus.Close()

	err := bus.Publish(domain.ResourceChanged{Path: "/late"})
	require.ErrorContains(t, err, domain.ErrEventBusClosed.Error())

	cancel := bus.Subscribe(func(domain.ResourceChanged) { t.Fatal("closed bus delivered an event") })
	cancel()
}
