// Package golang compiles Go projects with golang.org/x/tools/go/packages and
// answers type questions about the compiled result.
package golang

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/tools/go/packages"
)

// Module is the payload of the artifacts produced by Builder.
type Module struct {
	path   string
	order  []string
	pkgs   map[string]*packages.Package
	events map[string]map[string]struct{}

	mu       sync.Mutex
	external map[string]*types.Package
}

func newModule(path string, loaded []*packages.Package) *Module {
	m := &Module{
		path:     path,
		pkgs:     make(map[string]*packages.Package),
		events:   make(map[string]map[string]struct{}),
		external: make(map[string]*types.Package),
	}

	for _, pkg := range loaded {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		// With tests enabled a package appears both plain and as "p [p.test]";
		// the test variant is a superset, so it wins.
		if _, seen := m.pkgs[pkg.PkgPath]; seen && !strings.Contains(pkg.ID, "[") {
			continue
		}
		m.pkgs[pkg.PkgPath] = pkg
	}

	for path, pkg := range m.pkgs {
		m.order = append(m.order, path)
		m.events[path] = eventTypes(pkg)
	}
	slices.Sort(m.order)
	return m
}

// Packages returns the import paths of the compiled packages in sorted order.
func (m *Module) Packages() []string {
	return slices.Clone(m.order)
}

func (m *Module) pkg(path string) (*packages.Package, error) {
	pkg, ok := m.pkgs[path]
	if !ok {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", path)
	}
	return pkg, nil
}

func (m *Module) isEvent(pkgPath, name string) bool {
	_, ok := m.events[pkgPath][name]
	return ok
}

func (m *Module) cachedExternal(path string) (*types.Package, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pkg, ok := m.external[path]
	return pkg, ok
}

func (m *Module) storeExternal(pkg *types.Package) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.external[pkg.Path()] = pkg
}

// moduleOf unwraps the payload of an artifact built by Builder.
func moduleOf(artifact *domain.ModuleArtifact) (*Module, error) {
	if artifact == nil {
		return nil, domain.ErrForeignModule
	}
	m, ok := artifact.Payload.(*Module)
	if !ok || m == nil {
		return nil, zerr.With(domain.ErrForeignModule, "project", artifact.Project.Root())
	}
	return m, nil
}

// eventTypes collects the names of type declarations documented with the event directive.
func eventTypes(pkg *packages.Package) map[string]struct{} {
	out := make(map[string]struct{})
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				if hasDirective(doc, domain.EventDirective) {
					out[ts.Name.Name] = struct{}{}
				}
			}
		}
	}
	return out
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == directive {
			return true
		}
	}
	return false
}
