package ports

import "go.trai.ch/oracle/internal/core/domain"

// Introspector enumerates the packages and classes of a compiled module.
//
//go:generate go run go.uber.org/mock/mockgen -source=introspector.go -destination=mocks/mock_introspector.go -package=mocks
type Introspector interface {
	// Packages returns the package names of the module.
	Packages(module *domain.ModuleArtifact) []string

	// Classes returns the class names declared in a package.
	Classes(module *domain.ModuleArtifact, pkg string) ([]string, error)

	// TypeMeta loads a single class and returns its metadata.
	TypeMeta(module *domain.ModuleArtifact, pkg, class string) (domain.TypeMeta, error)
}
