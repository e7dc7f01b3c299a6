package golang

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/adapters/config"
	"go.trai.ch/oracle/internal/adapters/fs"
	"go.trai.ch/oracle/internal/adapters/logger"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

const (
	// BuilderNodeID is the unique identifier for the build cache Graft node.
	BuilderNodeID graft.ID = "adapter.golang.builder"
	// IntrospectorNodeID is the unique identifier for the introspector Graft node.
	IntrospectorNodeID graft.ID = "adapter.golang.introspector"
	// TypeLoaderNodeID is the unique identifier for the type loader Graft node.
	TypeLoaderNodeID graft.ID = "adapter.golang.type_loader"
)

var (
	_ ports.BuildCache   = (*Builder)(nil)
	_ ports.Introspector = (*Introspector)(nil)
	_ ports.TypeLoader   = (*TypeLoader)(nil)
)

func init() {
	graft.Register(graft.Node[ports.BuildCache]{
		ID:        BuilderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (ports.BuildCache, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			builder, err := NewBuilder(fingerprinter, log, BuilderConfig{
				Capacity: cfg.Build.Capacity,
				Tests:    cfg.Build.Tests,
			})
			if err != nil {
				return nil, err
			}
			return builder, nil
		},
	})

	graft.Register(graft.Node[ports.Introspector]{
		ID:        IntrospectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Introspector, error) {
			return NewIntrospector(), nil
		},
	})

	graft.Register(graft.Node[ports.TypeLoader]{
		ID:        TypeLoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TypeLoader, error) {
			return NewTypeLoader(), nil
		},
	})
}
