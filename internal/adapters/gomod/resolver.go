// Package gomod resolves filesystem paths to the Go projects that contain them.
package gomod

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/oracle/internal/core/domain"
	"golang.org/x/mod/modfile"
)

// Resolver implements ports.ProjectResolver by walking up to the nearest go.mod.
type Resolver struct {
	boundary string
}

// NewResolver creates a resolver. When boundary is non-empty, the walk never
// leaves it, so paths outside the workspace resolve to no project.
func NewResolver(boundary string) *Resolver {
	if boundary != "" {
		if abs, err := filepath.Abs(boundary); err == nil {
			boundary = abs
		}
	}
	return &Resolver{boundary: boundary}
}

// Resolve returns the project containing path.
// The path need not exist, since removed files are resolved as well.
func (r *Resolver) Resolve(path string) (domain.ProjectIdentity, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.ProjectIdentity{}, false
	}
	if !r.within(abs) {
		return domain.ProjectIdentity{}, false
	}

	current := abs
	if info, err := os.Stat(current); err != nil || !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		modPath := filepath.Join(current, domain.ModuleFileName)
		if info, err := os.Stat(modPath); err == nil && !info.IsDir() {
			return domain.NewProjectIdentity(current, ModulePath(modPath)), true
		}

		parent := filepath.Dir(current)
		if parent == current || !r.within(parent) {
			return domain.ProjectIdentity{}, false
		}
		current = parent
	}
}

func (r *Resolver) within(path string) bool {
	if r.boundary == "" {
		return true
	}
	rel, err := filepath.Rel(r.boundary, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ModulePath reads the module path declared in the go.mod at modPath.
// An unreadable or malformed file yields the name of the directory holding it.
func ModulePath(modPath string) string {
	fallback := filepath.Base(filepath.Dir(modPath))

	// #nosec G304 -- modPath is located by walking the project tree
	data, err := os.ReadFile(modPath)
	if err != nil {
		return fallback
	}
	if name := modfile.ModulePath(data); name != "" {
		return name
	}
	return fallback
}
