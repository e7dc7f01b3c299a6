package modelcache_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"go.trai.ch/oracle/internal/adapters/telemetry"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/oracle/internal/core/ports/mocks"
	"go.trai.ch/oracle/internal/engine/modelcache"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var (
	_ ports.BuildCache   = (*world)(nil)
	_ ports.Introspector = (*world)(nil)
	_ ports.TypeLoader   = (*world)(nil)
	_ ports.ImportLoader = (*world)(nil)
)

// world is an in-memory stand-in for a compiler, introspector and type loader.
type world struct {
	packages    map[string]map[string]domain.TypeMeta
	failing     map[string]error
	panicking   map[string]bool
	brokenPkgs  map[string]bool
	imports     []string
	importsErr  error
	resolvable  map[string]domain.TypeRef
	buildErr    error
	gate        chan struct{}
	builds      atomic.Int64
	inFlight    atomic.Int64
	peak        atomic.Int64
	mu          sync.Mutex
	invalidated []string
}

func newWorld() *world {
	return &world{
		packages:   make(map[string]map[string]domain.TypeMeta),
		failing:    make(map[string]error),
		panicking:  make(map[string]bool),
		brokenPkgs: make(map[string]bool),
		resolvable: make(map[string]domain.TypeRef),
	}
}

func (w *world) class(pkg, name string, meta domain.TypeMeta) *world {
	if w.packages[pkg] == nil {
		w.packages[pkg] = make(map[string]domain.TypeMeta)
	}
	w.packages[pkg][name] = meta
	return w
}

func (w *world) GetOrBuild(_ context.Context, project domain.ProjectIdentity) (*domain.ModuleArtifact, error) {
	w.builds.Add(1)
	running := w.inFlight.Add(1)
	defer w.inFlight.Add(-1)
	for {
		peak := w.peak.Load()
		if running <= peak || w.peak.CompareAndSwap(peak, running) {
			break
		}
	}
	if w.gate != nil {
		<-w.gate
	}
	if w.buildErr != nil {
		return nil, w.buildErr
	}
	return &domain.ModuleArtifact{Project: project, ModulePath: project.Name(), Fingerprint: "f", Payload: w}, nil
}

func (w *world) ClassSource(_ *domain.ModuleArtifact, _, _ string) (domain.SourceOrigin, error) {
	return domain.OriginProject, nil
}

func (w *world) Invalidate(project domain.ProjectIdentity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.invalidated = append(w.invalidated, project.Key())
}

func (w *world) Packages(_ *domain.ModuleArtifact) []string {
	return slices.Sorted(maps.Keys(w.packages))
}

func (w *world) Classes(_ *domain.ModuleArtifact, pkg string) ([]string, error) {
	if w.brokenPkgs[pkg] {
		return nil, zerr.With(zerr.New("package does not type-check"), "package", pkg)
	}
	return slices.Sorted(maps.Keys(w.packages[pkg])), nil
}

func (w *world) TypeMeta(_ *domain.ModuleArtifact, pkg, class string) (domain.TypeMeta, error) {
	name := pkg + "." + class
	if w.panicking[name] {
		panic("cannot load " + name)
	}
	if err := w.failing[name]; err != nil {
		return domain.TypeMeta{}, err
	}
	return w.packages[pkg][class], nil
}

func (w *world) ResolveType(_ context.Context, _ *domain.ModuleArtifact, name string) (domain.TypeRef, error) {
	ref, ok := w.resolvable[name]
	if !ok {
		return domain.TypeRef{}, zerr.With(domain.ErrTypeNotFound, "type", name)
	}
	return ref, nil
}

func (w *world) LoadImports(_ domain.ProjectIdentity) ([]string, error) {
	return w.imports, w.importsErr
}

// quietLogger accepts debug, info and warn messages and fails the test on errors.
func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func newCache(t *testing.T, w *world, log ports.Logger, cfg modelcache.Config) *modelcache.Cache {
	t.Helper()
	assembler := modelcache.NewAssembler(w, w, w, log, modelcache.AssemblerConfig{Workers: 2})
	cache, err := modelcache.New(w, assembler, w, telemetry.NewNoop(), log, cfg)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return cache
}

func project(name string) domain.ProjectIdentity {
	return domain.NewProjectIdentity("/work/"+name, name)
}

func names(entries []domain.TypeEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
