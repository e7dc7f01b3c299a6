package ports

import "go.trai.ch/oracle/internal/core/domain"

// ProjectResolver maps a file path to the project that owns it.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_resolver.go -destination=mocks/mock_project_resolver.go -package=mocks
type ProjectResolver interface {
	// Resolve returns the project containing path.
	// It returns false when the path is outside any project.
	Resolve(path string) (domain.ProjectIdentity, bool)
}
