package golang

import (
	"go/types"
	"slices"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Introspector implements ports.Introspector over modules compiled by Builder.
// A class is an exported, non-alias named type declared at package level.
type Introspector struct{}

// NewIntrospector creates a new Introspector.
func NewIntrospector() *Introspector {
	return &Introspector{}
}

// Packages returns the package import paths of the module.
func (i *Introspector) Packages(artifact *domain.ModuleArtifact) []string {
	module, err := moduleOf(artifact)
	if err != nil {
		return nil
	}
	return module.Packages()
}

// Classes returns the names of the classes declared in pkgPath, sorted.
func (i *Introspector) Classes(artifact *domain.ModuleArtifact, pkgPath string) ([]string, error) {
	module, err := moduleOf(artifact)
	if err != nil {
		return nil, err
	}
	pkg, err := module.pkg(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil {
		return nil, zerr.With(domain.ErrPackageScanFailed, "package", pkgPath)
	}

	scope := pkg.Types.Scope()
	var classes []string
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		classes = append(classes, name)
	}
	slices.Sort(classes)
	return classes, nil
}

// TypeMeta returns the kind and event flag of a class.
func (i *Introspector) TypeMeta(artifact *domain.ModuleArtifact, pkgPath, class string) (domain.TypeMeta, error) {
	module, err := moduleOf(artifact)
	if err != nil {
		return domain.TypeMeta{}, err
	}
	pkg, err := module.pkg(pkgPath)
	if err != nil {
		return domain.TypeMeta{}, err
	}
	if pkg.Types == nil {
		return domain.TypeMeta{}, zerr.With(domain.ErrPackageScanFailed, "package", pkgPath)
	}

	obj := pkg.Types.Scope().Lookup(class)
	if obj == nil {
		return domain.TypeMeta{}, zerr.With(zerr.With(domain.ErrTypeNotFound, "package", pkgPath), "class", class)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return domain.TypeMeta{}, zerr.With(zerr.With(domain.ErrNotAType, "package", pkgPath), "class", class)
	}

	return domain.TypeMeta{
		Kind:  KindOf(tn.Type()),
		Event: module.isEvent(pkgPath, class),
	}, nil
}

// KindOf names the kind of the underlying type of t.
func KindOf(t types.Type) string {
	switch u := t.Underlying().(type) {
	case *types.Struct:
		return "struct"
	case *types.Interface:
		return "interface"
	case *types.Signature:
		return "func"
	case *types.Map:
		return "map"
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Chan:
		return "chan"
	case *types.Pointer:
		return "pointer"
	case *types.Basic:
		if u.Kind() == types.Invalid {
			return "invalid"
		}
		return u.Name()
	default:
		return "type"
	}
}
