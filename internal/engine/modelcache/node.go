package modelcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/adapters/golang"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/adapters/gomod"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/adapters/imports"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

const (
	// AssemblerNodeID is the unique identifier for the assembler Graft node.
	AssemblerNodeID graft.ID = "engine.modelcache.assembler"
	// CacheNodeID is the unique identifier for the model cache Graft node.
	CacheNodeID graft.ID = "engine.modelcache.cache"
	// ListenerNodeID is the unique identifier for the invalidation listener Graft node.
	ListenerNodeID graft.ID = "engine.modelcache.listener"
)

func init() {
	graft.Register(graft.Node[*Assembler]{
		ID:        AssemblerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			golang.IntrospectorNodeID,
			golang.BuilderNodeID,
			golang.TypeLoaderNodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Assembler, error) {
			introspector, err := graft.Dep[ports.Introspector](ctx)
			if err != nil {
				return nil, err
			}
			builds, err := graft.Dep[ports.BuildCache](ctx)
			if err != nil {
				return nil, err
			}
			types, err := graft.Dep[ports.TypeLoader](ctx)
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
			return NewAssembler(introspector, builds, types, log, AssemblerConfig{Workers: cfg.Model.Workers}), nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			golang.BuilderNodeID,
			AssemblerNodeID,
			imports.NodeID,
			progrock.NodeID,
			logger.NodeID,
			config.ResolvedNodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			builds, err := graft.Dep[ports.BuildCache](ctx)
			if err != nil {
				return nil, err
			}
			assembler, err := graft.Dep[*Assembler](ctx)
			if err != nil {
				return nil, err
			}
			importLoader, err := graft.Dep[ports.ImportLoader](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
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
			return New(builds, assembler, importLoader, telemetry, log, Config{
				Capacity: cfg.Model.Capacity,
				Filter:   cfg.Model.Filter(),
			})
		},
	})

	graft.Register(graft.Node[*Listener]{
		ID:        ListenerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{gomod.NodeID, logger.NodeID, golang.BuilderNodeID, CacheNodeID},
		Run: func(ctx context.Context) (*Listener, error) {
			resolver, err := graft.Dep[ports.ProjectResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			builds, err := graft.Dep[ports.BuildCache](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*Cache](ctx)
			if err != nil {
				return nil, err
			}
			// Compiled modules go first so a rebuild triggered by the model cache never sees them.
			return NewListener(resolver, log, builds, cache), nil
		},
	})
}
