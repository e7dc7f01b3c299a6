// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/oracle/internal/core/domain"
)

// ProjectInvalidator drops whatever is cached for a project.
type ProjectInvalidator interface {
	// Invalidate removes any cached state for the project. It is a no-op when nothing is cached.
	Invalidate(project domain.ProjectIdentity)
}

// BuildCache compiles projects into module artifacts and caches them per project.
//
//go:generate go run go.uber.org/mock/mockgen -source=build_cache.go -destination=mocks/mock_build_cache.go -package=mocks
type BuildCache interface {
	ProjectInvalidator

	// GetOrBuild returns the compiled module of the project, building it if necessary.
	// Failures are fatal for the caller.
	GetOrBuild(ctx context.Context, project domain.ProjectIdentity) (*domain.ModuleArtifact, error)

	// ClassSource reports whether a class of the module was compiled from the project
	// or comes from a dependency.
	ClassSource(module *domain.ModuleArtifact, pkg, class string) (domain.SourceOrigin, error)
}
