package golang

import (
	"context"
	"go/types"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/tools/go/packages"
)

// TypeLoader implements ports.TypeLoader. Packages outside the compiled module
// are loaded from the project directory, so the project's go.mod decides their version.
type TypeLoader struct{}

// NewTypeLoader creates a new TypeLoader.
func NewTypeLoader() *TypeLoader {
	return &TypeLoader{}
}

// ResolveType resolves a fully-qualified type name such as "math/big.Int".
func (l *TypeLoader) ResolveType(ctx context.Context, artifact *domain.ModuleArtifact, name string) (domain.TypeRef, error) {
	ref, err := domain.ParseTypeRef(name)
	if err != nil {
		return domain.TypeRef{}, err
	}
	module, err := moduleOf(artifact)
	if err != nil {
		return domain.TypeRef{}, err
	}

	pkg, err := l.lookupPackage(ctx, artifact.Project.Root(), module, ref.Package)
	if err != nil {
		return domain.TypeRef{}, zerr.With(err, "type", name)
	}

	obj := pkg.Scope().Lookup(ref.Name)
	if obj == nil {
		return domain.TypeRef{}, zerr.With(domain.ErrTypeNotFound, "type", name)
	}
	if _, ok := obj.(*types.TypeName); !ok {
		return domain.TypeRef{}, zerr.With(domain.ErrNotAType, "type", name)
	}
	return domain.TypeRef{Package: pkg.Path(), Name: obj.Name()}, nil
}

func (l *TypeLoader) lookupPackage(ctx context.Context, dir string, module *Module, path string) (*types.Package, error) {
	if pkg, ok := module.pkgs[path]; ok && pkg.Types != nil {
		return pkg.Types, nil
	}
	if pkg, ok := module.cachedExternal(path); ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedTypes,
	}
	loaded, err := packages.Load(cfg, path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImportResolutionFailed.Error())
	}
	if len(loaded) == 0 {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", path)
	}

	pkg := loaded[0]
	if len(pkg.Errors) > 0 {
		return nil, zerr.With(zerr.Wrap(pkg.Errors[0], domain.ErrImportResolutionFailed.Error()), "package", path)
	}
	if pkg.Types == nil {
		return nil, zerr.With(domain.ErrImportResolutionFailed, "package", path)
	}

	module.storeExternal(pkg.Types)
	return pkg.Types, nil
}
