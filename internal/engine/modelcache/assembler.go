package modelcache

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// AssemblerConfig configures an Assembler.
type AssemblerConfig struct {
	// Workers bounds how many packages are scanned concurrently; <= 0 uses GOMAXPROCS.
	Workers int
}

// Assembler turns a compiled module into a derived model.
//
// Failures of single classes, packages, or imports are logged and the item is
// left out of the model. Only context cancellation aborts an assembly.
type Assembler struct {
	introspector ports.Introspector
	builds       ports.BuildCache
	types        ports.TypeLoader
	log          ports.Logger
	workers      int
}

// NewAssembler creates a new Assembler.
func NewAssembler(
	introspector ports.Introspector,
	builds ports.BuildCache,
	types ports.TypeLoader,
	log ports.Logger,
	cfg AssemblerConfig,
) *Assembler {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Assembler{
		introspector: introspector,
		builds:       builds,
		types:        types,
		log:          log,
		workers:      workers,
	}
}

// Assemble builds the derived model of module. Packages the filter rejects are
// neither registered nor scanned. Imports are added as dependency-sourced,
// non-event entries after all classes, so an import naming a project class replaces it.
func (a *Assembler) Assemble(
	ctx context.Context,
	module *domain.ModuleArtifact,
	filter domain.PackageFilter,
	imports []string,
) (*domain.DerivedModel, error) {
	builder := domain.NewModelBuilder(module.Project).WithFingerprint(module.Fingerprint)

	var retained []string
	for _, pkg := range a.introspector.Packages(module) {
		if filter.Allows(pkg) {
			retained = append(retained, pkg)
		}
	}
	builder.AddPackages(retained...)

	scanned := make([][]domain.TypeEntry, len(retained))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, pkg := range retained {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scanned[i] = a.scanPackage(gctx, module, pkg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, entries := range scanned {
		for _, entry := range entries {
			builder.AddType(entry)
		}
	}

	for _, name := range imports {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref, err := a.resolveImport(ctx, module, name)
		if err != nil {
			a.log.Error(zerr.With(zerr.Wrap(err, domain.ErrImportResolutionFailed.Error()), "import", name))
			continue
		}
		builder.AddType(domain.TypeEntry{
			Name:       ref.Qualified(),
			Package:    ref.Package,
			SimpleName: ref.Name,
			Origin:     domain.OriginDependency,
		})
	}

	return builder.Build(), nil
}

func (a *Assembler) scanPackage(ctx context.Context, module *domain.ModuleArtifact, pkg string) []domain.TypeEntry {
	classes, err := a.classes(module, pkg)
	if err != nil {
		a.log.Error(zerr.With(zerr.Wrap(err, domain.ErrPackageScanFailed.Error()), "package", pkg))
		return nil
	}

	entries := make([]domain.TypeEntry, 0, len(classes))
	for _, class := range classes {
		if ctx.Err() != nil {
			return entries
		}
		entry, err := a.introspect(module, pkg, class)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrClassIntrospectionFailed.Error()), "package", pkg)
			a.log.Error(zerr.With(err, "class", class))
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (a *Assembler) classes(module *domain.ModuleArtifact, pkg string) (classes []string, err error) {
	defer recoverInto(&err)
	return a.introspector.Classes(module, pkg)
}

func (a *Assembler) introspect(module *domain.ModuleArtifact, pkg, class string) (entry domain.TypeEntry, err error) {
	defer recoverInto(&err)

	meta, err := a.introspector.TypeMeta(module, pkg, class)
	if err != nil {
		return domain.TypeEntry{}, err
	}
	origin, err := a.builds.ClassSource(module, pkg, class)
	if err != nil {
		return domain.TypeEntry{}, err
	}

	return domain.TypeEntry{
		Name:       pkg + "." + class,
		Package:    pkg,
		SimpleName: class,
		Kind:       meta.Kind,
		Event:      meta.Event,
		Origin:     origin,
	}, nil
}

func (a *Assembler) resolveImport(ctx context.Context, module *domain.ModuleArtifact, name string) (ref domain.TypeRef, err error) {
	defer recoverInto(&err)
	return a.types.ResolveType(ctx, module, name)
}

// recoverInto turns a panic in a collaborator into an error for the current item.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = zerr.With(zerr.New("collaborator panicked"), "panic", fmt.Sprint(r))
	}
}
