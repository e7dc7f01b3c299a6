package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/adapters/config"
	"go.trai.ch/oracle/internal/adapters/logger"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ResolvedNodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			w, err := NewWatcher(log, Config{Debounce: cfg.Watch.Debounce, Skip: cfg.Watch.Skip})
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})
}
