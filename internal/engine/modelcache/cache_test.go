package modelcache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/oracle/internal/core/ports/mocks"
	"go.trai.ch/oracle/internal/engine/modelcache"
	"go.uber.org/mock/gomock"
)

func acmeWorld() *world {
	return newWorld().
		class("com.acme.x", "Foo", domain.TypeMeta{Kind: "struct"}).
		class("com.acme.x", "Bar", domain.TypeMeta{Kind: "struct", Event: true})
}

func TestCache_AssertReturnsCachedModel(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})
	ctx := context.Background()

	first, err := cache.Assert(ctx, project("acme"))
	require.NoError(t, err)
	second, err := cache.Assert(ctx, project("acme"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), w.builds.Load())
	assert.Equal(t, modelcache.Stats{Hits: 1, Misses: 1, Builds: 1}, cache.Stats())
	assert.Equal(t, []string{"com.acme.x.Bar"}, names(first.EventTypes()))
}

func TestCache_InvalidateThenAssertRebuilds(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})
	ctx := context.Background()

	first, err := cache.Assert(ctx, project("acme"))
	require.NoError(t, err)

	cache.Invalidate(project("acme"))
	_, cached := cache.Peek(project("acme"))
	assert.False(t, cached)

	second, err := cache.Assert(ctx, project("acme"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Types(), second.Types())
	assert.Equal(t, first.Packages(), second.Packages())
	assert.Equal(t, int64(2), w.builds.Load())
}

func TestCache_InvalidateAbsentIsNoop(t *testing.T) {
	cache := newCache(t, acmeWorld(), quietLogger(t), modelcache.Config{})

	cache.Invalidate(project("never-built"))

	assert.Zero(t, cache.Len())
	assert.Equal(t, uint64(1), cache.Stats().Invalidations)
}

func TestCache_ConcurrentAssertBuildsOnce(t *testing.T) {
	w := acmeWorld()
	w.gate = make(chan struct{})
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})

	const callers = 16
	results := make([]*domain.DerivedModel, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = cache.Assert(context.Background(), project("acme"))
		}()
	}

	require.Eventually(t, func() bool { return w.builds.Load() == 1 }, 5*time.Second, time.Millisecond)
	assert.Never(t, func() bool { return w.builds.Load() > 1 }, 20*time.Millisecond, time.Millisecond,
		"callers arriving during a build join it")
	close(w.gate)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, 2, results[i].Len(), "every caller sees a complete model")
	}
	// A caller that missed the cache just as the shared build finished may start one more.
	assert.LessOrEqual(t, w.builds.Load(), int64(2))
	assert.Equal(t, int64(1), w.peak.Load())
}

func TestCache_DifferentProjectsBuildIndependently(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})
	ctx := context.Background()

	a, err := cache.Assert(ctx, project("a"))
	require.NoError(t, err)
	b, err := cache.Assert(ctx, project("b"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.True(t, a.Project().Equal(project("a")))
	assert.True(t, b.Project().Equal(project("b")))
	assert.Equal(t, 2, cache.Len())
}

func TestCache_BuildFailureIsNotCached(t *testing.T) {
	w := acmeWorld()
	w.buildErr = errors.New("go list failed")
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})
	ctx := context.Background()

	_, err := cache.Assert(ctx, project("acme"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrModuleBuildFailed.Error())
	assert.Zero(t, cache.Len())

	w.buildErr = nil
	model, err := cache.Assert(ctx, project("acme"))
	require.NoError(t, err)
	assert.Equal(t, 2, model.Len())
	assert.Equal(t, int64(2), w.builds.Load())
	assert.Equal(t, uint64(1), cache.Stats().BuildFailures)
}

func TestCache_NoImportsMeansNoDependencyTypes(t *testing.T) {
	cache := newCache(t, acmeWorld(), quietLogger(t), modelcache.Config{})

	model, err := cache.Assert(context.Background(), project("acme"))
	require.NoError(t, err)

	assert.Empty(t, model.DependencyTypes())
	assert.Len(t, model.ProjectTypes(), 2)
}

func TestCache_UnreadableImportsAreLoggedAndSkipped(t *testing.T) {
	w := acmeWorld()
	w.importsErr = domain.ErrImportsParseFailed
	log := quietLogger(t)
	log.EXPECT().Error(gomock.Any()).Times(1)
	cache := newCache(t, w, log, modelcache.Config{})

	model, err := cache.Assert(context.Background(), project("acme"))
	require.NoError(t, err)
	assert.Empty(t, model.DependencyTypes())
}

func TestCache_EvictsLeastRecentlyAsserted(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{Capacity: 2})
	ctx := context.Background()

	for _, name := range []string{"a", "b", "a", "c"} {
		_, err := cache.Assert(ctx, project(name))
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), w.builds.Load(), "asserting a within capacity never rebuilds")

	_, cached := cache.Peek(project("b"))
	assert.False(t, cached, "b was the least recently asserted")
	_, cached = cache.Peek(project("a"))
	assert.True(t, cached)
	assert.Equal(t, 2, cache.Len())

	_, err := cache.Assert(ctx, project("b"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), w.builds.Load(), "evicted projects are rebuilt on access")
	assert.Equal(t, uint64(2), cache.Stats().Evictions)
}

func TestCache_InvalidateDuringBuild(t *testing.T) {
	w := acmeWorld()
	w.gate = make(chan struct{})
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})

	assertAsync := func() <-chan *domain.DerivedModel {
		done := make(chan *domain.DerivedModel, 1)
		go func() {
			model, err := cache.Assert(context.Background(), project("acme"))
			assert.NoError(t, err)
			done <- model
		}()
		return done
	}

	first := assertAsync()
	require.Eventually(t, func() bool { return w.builds.Load() == 1 }, 5*time.Second, time.Millisecond)
	cache.Invalidate(project("acme"))

	second := assertAsync()
	assert.Never(t, func() bool { return w.builds.Load() > 1 }, 20*time.Millisecond, time.Millisecond,
		"an Assert after Invalidate joins the running build")
	close(w.gate)

	for _, done := range []<-chan *domain.DerivedModel{first, second} {
		model := <-done
		require.NotNil(t, model, "callers of the racing build still receive a complete model")
		assert.Equal(t, 2, model.Len())
	}
	assert.Equal(t, int64(1), w.peak.Load(), "never more than one build of a project in flight")
	assert.Zero(t, cache.InFlight())

	_, cached := cache.Peek(project("acme"))
	assert.False(t, cached, "a model invalidated while building is not cached")

	builds := w.builds.Load()
	_, err := cache.Assert(context.Background(), project("acme"))
	require.NoError(t, err)
	assert.Equal(t, builds+1, w.builds.Load(), "the next Assert rebuilds")
	_, cached = cache.Peek(project("acme"))
	assert.True(t, cached)
}

func TestCache_TracksOnlyRunningBuilds(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})

	for i := range 50 {
		name := fmt.Sprintf("p%d", i)
		cache.Invalidate(project(name))
		_, err := cache.Assert(context.Background(), project(name))
		require.NoError(t, err)
		cache.Invalidate(project(name))
	}
	assert.Zero(t, cache.InFlight())

	w.buildErr = errors.New("go list failed")
	_, err := cache.Assert(context.Background(), project("broken"))
	require.Error(t, err)
	assert.Zero(t, cache.InFlight(), "failed builds are forgotten too")
}

func TestCache_CallerCancellationDoesNotAbortBuild(t *testing.T) {
	w := acmeWorld()
	w.gate = make(chan struct{})
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() {
		_, err := cache.Assert(ctx, project("acme"))
		errCh <- err
	}()

	require.Eventually(t, func() bool { return w.builds.Load() == 1 }, 5*time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(w.gate)
	require.Eventually(t, func() bool {
		_, ok := cache.Peek(project("acme"))
		return ok
	}, 5*time.Second, time.Millisecond)
}

func TestCache_Purge(t *testing.T) {
	w := acmeWorld()
	cache := newCache(t, w, quietLogger(t), modelcache.Config{})
	ctx := context.Background()

	_, err := cache.Assert(ctx, project("a"))
	require.NoError(t, err)
	_, err = cache.Assert(ctx, project("b"))
	require.NoError(t, err)

	cache.Purge()
	assert.Zero(t, cache.Len())

	_, err = cache.Assert(ctx, project("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), w.builds.Load())
}

func TestCache_RecordsTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	built := mocks.NewMockVertex(ctrl)
	hit := mocks.NewMockVertex(ctrl)

	gomock.InOrder(
		tel.EXPECT().Record(gomock.Any(), "model acme").DoAndReturn(
			func(ctx context.Context, _ string) (context.Context, ports.Vertex) { return ctx, built }),
		tel.EXPECT().Record(gomock.Any(), "model acme").DoAndReturn(
			func(ctx context.Context, _ string) (context.Context, ports.Vertex) { return ctx, hit }),
	)
	built.EXPECT().Log(domain.LogLevelInfo, "1 packages, 2 types")
	built.EXPECT().Complete(nil)
	hit.EXPECT().Cached()
	hit.EXPECT().Complete(nil)

	w := acmeWorld()
	log := quietLogger(t)
	assembler := modelcache.NewAssembler(w, w, w, log, modelcache.AssemblerConfig{})
	cache, err := modelcache.New(w, assembler, w, tel, log, modelcache.Config{})
	require.NoError(t, err)

	for range 2 {
		_, err := cache.Assert(context.Background(), project("acme"))
		require.NoError(t, err)
	}
}
