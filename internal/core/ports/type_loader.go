package ports

import (
	"context"

	"go.trai.ch/oracle/internal/core/domain"
)

// TypeLoader resolves fully-qualified type names that are not part of the project's sources.
//
//go:generate go run go.uber.org/mock/mockgen -source=type_loader.go -destination=mocks/mock_type_loader.go -package=mocks
type TypeLoader interface {
	// ResolveType resolves name in the context of the given module.
	ResolveType(ctx context.Context, module *domain.ModuleArtifact, name string) (domain.TypeRef, error)
}
