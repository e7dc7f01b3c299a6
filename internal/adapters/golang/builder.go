package golang

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Capacity is the number of compiled modules kept; <= 0 uses domain.DefaultBuildCapacity.
	Capacity int
	// Tests includes _test.go files in the compiled packages.
	Tests bool
}

// Builder implements ports.BuildCache. Compiled modules are kept in an LRU and
// reused as long as the project's source fingerprint is unchanged.
type Builder struct {
	fingerprinter ports.Fingerprinter
	log           ports.Logger
	tests         bool

	cache  *lru.Cache[string, *domain.ModuleArtifact]
	flight singleflight.Group
	builds atomic.Uint64
}

// NewBuilder creates a new Builder.
func NewBuilder(fingerprinter ports.Fingerprinter, log ports.Logger, cfg BuilderConfig) (*Builder, error) {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = domain.DefaultBuildCapacity
	}

	cache, err := lru.New[string, *domain.ModuleArtifact](capacity)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "capacity", capacity)
	}

	return &Builder{
		fingerprinter: fingerprinter,
		log:           log,
		tests:         cfg.Tests,
		cache:         cache,
	}, nil
}

// GetOrBuild returns the compiled module of project, compiling it when the cached
// module is missing or was built from different sources.
func (b *Builder) GetOrBuild(ctx context.Context, project domain.ProjectIdentity) (*domain.ModuleArtifact, error) {
	fingerprint, err := b.fingerprinter.Fingerprint(project.Root())
	if err != nil {
		return nil, zerr.With(err, "project", project.Root())
	}

	key := project.Key()
	if cached, ok := b.cache.Get(key); ok {
		if cached.Fingerprint == fingerprint {
			return cached, nil
		}
		b.log.Debug("sources of " + project.Name() + " changed, recompiling")
	}

	v, err, _ := b.flight.Do(key, func() (any, error) {
		artifact, err := b.build(ctx, project, fingerprint)
		if err != nil {
			return nil, err
		}
		b.cache.Add(key, artifact)
		return artifact, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ModuleArtifact), nil
}

func (b *Builder) build(ctx context.Context, project domain.ProjectIdentity, fingerprint string) (*domain.ModuleArtifact, error) {
	b.builds.Add(1)
	start := time.Now()

	cfg := &packages.Config{
		Context: ctx,
		Dir:     project.Root(),
		Mode:    loadMode,
		Tests:   b.tests,
	}
	loaded, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load packages"), "project", project.Root())
	}
	if len(loaded) == 0 {
		return nil, zerr.With(domain.ErrModuleEmpty, "project", project.Root())
	}

	// Packages with type errors are kept; their well-typed declarations stay usable.
	var broken int
	packages.Visit(loaded, nil, func(pkg *packages.Package) {
		broken += len(pkg.Errors)
	})
	if broken > 0 {
		b.log.Warn(fmt.Sprintf("%s compiled with %d package errors, continuing", project.Name(), broken))
	}

	modulePath := project.Name()
	for _, pkg := range loaded {
		if pkg.Module != nil && pkg.Module.Main {
			modulePath = pkg.Module.Path
			break
		}
	}

	module := newModule(modulePath, loaded)
	b.log.Debug(fmt.Sprintf("compiled %d packages of %s in %s",
		len(module.order), modulePath, time.Since(start).Round(time.Millisecond)))

	return &domain.ModuleArtifact{
		Project:     project,
		ModulePath:  modulePath,
		Fingerprint: fingerprint,
		BuiltAt:     time.Now(),
		Payload:     module,
	}, nil
}

// ClassSource reports whether class was compiled from the project or comes from a dependency.
func (b *Builder) ClassSource(artifact *domain.ModuleArtifact, pkgPath, class string) (domain.SourceOrigin, error) {
	module, err := moduleOf(artifact)
	if err != nil {
		return domain.OriginUnknown, err
	}
	pkg, err := module.pkg(pkgPath)
	if err != nil {
		return domain.OriginUnknown, err
	}
	if pkg.Types == nil || pkg.Types.Scope().Lookup(class) == nil {
		return domain.OriginUnknown, zerr.With(zerr.With(domain.ErrTypeNotFound, "package", pkgPath), "class", class)
	}

	if pkg.Module != nil && (pkg.Module.Main || pkg.Module.Path == module.path) {
		return domain.OriginProject, nil
	}
	return domain.OriginDependency, nil
}

// Invalidate drops the compiled module of project. A compile already running is
// left alone; the fingerprint check rejects its module once the sources differ.
func (b *Builder) Invalidate(project domain.ProjectIdentity) {
	key := project.Key()
	if b.cache.Remove(key) {
		b.log.Debug("dropped compiled module of " + project.Name())
	}
}

// Builds returns how many times a module was compiled.
func (b *Builder) Builds() uint64 {
	return b.builds.Load()
}
