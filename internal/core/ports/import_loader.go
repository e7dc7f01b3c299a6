package ports

import "go.trai.ch/oracle/internal/core/domain"

// ImportLoader reads the project-level list of externally imported types.
//
//go:generate go run go.uber.org/mock/mockgen -source=import_loader.go -destination=mocks/mock_import_loader.go -package=mocks
type ImportLoader interface {
	// LoadImports returns the fully-qualified type names imported by the project.
	// A project without an imports file yields an empty list and no error.
	LoadImports(project domain.ProjectIdentity) ([]string, error)
}
