package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/adapters/eventbus"           //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/adapters/gomod"              //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/oracle/internal/engine/modelcache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gomod.NodeID,
			modelcache.CacheNodeID,
			modelcache.ListenerNodeID,
			watcher.NodeID,
			eventbus.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ResolvedNodeID,
			progrock.NodeID,
			eventbus.NodeID,
			watcher.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	resolver, err := graft.Dep[ports.ProjectResolver](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[*modelcache.Cache](ctx)
	if err != nil {
		return nil, err
	}

	listener, err := graft.Dep[*modelcache.Listener](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	bus, err := graft.Dep[*eventbus.Bus](ctx)
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

	return New(resolver, cache, listener, w, bus, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
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

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	bus, err := graft.Dep[*eventbus.Bus](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Config:    cfg,
		Telemetry: telemetry,
		closers: []func() error{
			telemetry.Close,
			w.Stop,
			func() error { bus.Close(); return nil },
		},
	}, nil
}
