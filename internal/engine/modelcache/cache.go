// Package modelcache implements the derived project model cache: it compiles
// projects on demand, assembles their type catalogs, and drops them when their
// sources change.
package modelcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the number of models kept when Config.Capacity is not positive.
const DefaultCapacity = domain.DefaultModelCapacity

// Config configures a Cache.
type Config struct {
	// Capacity is the maximum number of cached models.
	Capacity int
	// Filter restricts the packages scanned for every model.
	Filter domain.PackageFilter
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Builds        uint64 `json:"builds"`
	BuildFailures uint64 `json:"buildFailures"`
	Evictions     uint64 `json:"evictions"`
	Invalidations uint64 `json:"invalidations"`
}

// Cache maps projects to their derived models.
//
// At most one build runs per project at a time; callers asserting a project that
// is being built wait for that build, even when it was invalidated after it started.
// Builds of different projects run in parallel. A build only stores its model if
// the project was not invalidated while it ran.
type Cache struct {
	builds    ports.BuildCache
	assembler *Assembler
	imports   ports.ImportLoader
	telemetry ports.Telemetry
	log       ports.Logger
	filter    domain.PackageFilter

	entries *lru.Cache[string, *domain.DerivedModel]
	flight  singleflight.Group

	mu sync.Mutex
	// building holds the projects with a build in flight; true once invalidated.
	building map[string]bool

	hits          atomic.Uint64
	misses        atomic.Uint64
	buildCount    atomic.Uint64
	failures      atomic.Uint64
	evictions     atomic.Uint64
	invalidations atomic.Uint64
}

// New creates a new Cache.
func New(
	builds ports.BuildCache,
	assembler *Assembler,
	imports ports.ImportLoader,
	telemetry ports.Telemetry,
	log ports.Logger,
	cfg Config,
) (*Cache, error) {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	entries, err := lru.New[string, *domain.DerivedModel](capacity)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "capacity", capacity)
	}

	return &Cache{
		builds:      builds,
		assembler:   assembler,
		imports:     imports,
		telemetry:   telemetry,
		log:         log,
		filter:      cfg.Filter,
		entries:     entries,
		building:    make(map[string]bool),
	}, nil
}

// Assert returns the derived model of project, building it if it is not cached.
// A failing module build is returned as domain.ErrModuleBuildFailed and nothing is cached.
//
// The build itself is not canceled with ctx, since other callers may be waiting
// for it; ctx only bounds how long this caller waits.
func (c *Cache) Assert(ctx context.Context, project domain.ProjectIdentity) (*domain.DerivedModel, error) {
	ctx, vertex := c.telemetry.Record(ctx, "model "+project.Name())
	key := project.Key()

	if model, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		vertex.Cached()
		vertex.Complete(nil)
		return model, nil
	}
	c.misses.Add(1)

	buildCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (any, error) {
		return c.build(buildCtx, project, vertex)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			vertex.Complete(res.Err)
			return nil, res.Err
		}
		vertex.Complete(nil)
		return res.Val.(*domain.DerivedModel), nil
	case <-ctx.Done():
		vertex.Complete(ctx.Err())
		return nil, ctx.Err()
	}
}

func (c *Cache) build(ctx context.Context, project domain.ProjectIdentity, vertex ports.Vertex) (*domain.DerivedModel, error) {
	key := project.Key()
	c.begin(key)
	c.buildCount.Add(1)

	module, err := c.builds.GetOrBuild(ctx, project)
	if err != nil {
		c.failures.Add(1)
		c.finish(key, nil)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrModuleBuildFailed.Error()), "project", project.Root())
	}

	imports, err := c.imports.LoadImports(project)
	if err != nil {
		c.log.Error(zerr.With(err, "project", project.Root()))
		imports = nil
	}

	model, err := c.assembler.Assemble(ctx, module, c.filter, imports)
	if err != nil {
		c.failures.Add(1)
		c.finish(key, nil)
		return nil, zerr.With(err, "project", project.Root())
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d packages, %d types", len(model.Packages()), model.Len()))

	c.finish(key, model)
	return model, nil
}

func (c *Cache) begin(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.building[key] = false
}

// finish ends the build of key and caches model unless the build was invalidated.
func (c *Cache) finish(key string, model *domain.DerivedModel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := c.building[key]
	delete(c.building, key)
	if model == nil {
		return
	}
	if stale {
		c.log.Debug("model of " + model.Project().Name() + " was invalidated while building, not caching it")
		return
	}
	if evicted := c.entries.Add(key, model); evicted {
		c.evictions.Add(1)
	}
}

// InFlight returns the number of projects with a build in flight.
func (c *Cache) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.building)
}

// Invalidate drops the cached model of project. It never waits for builds.
// A build of project that is running concurrently still completes for the
// callers waiting on it, including callers that arrive after the invalidation,
// but its model is not cached and the next Assert after it starts a new build.
func (c *Cache) Invalidate(project domain.ProjectIdentity) {
	key := project.Key()

	c.mu.Lock()
	if _, ok := c.building[key]; ok {
		c.building[key] = true
	}
	removed := c.entries.Remove(key)
	c.mu.Unlock()

	c.invalidations.Add(1)
	if removed {
		c.log.Debug("invalidated model of " + project.Name())
	}
}

// Peek returns the cached model of project without building it or updating its recency.
func (c *Cache) Peek(project domain.ProjectIdentity) (*domain.DerivedModel, bool) {
	return c.entries.Peek(project.Key())
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge invalidates every project.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.building {
		c.building[key] = true
	}
	c.entries.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Builds:        c.buildCount.Load(),
		BuildFailures: c.failures.Load(),
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
	}
}
