package gomod

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/core/ports"
)

// NodeID is the unique identifier for the project resolver Graft node.
const NodeID graft.ID = "adapter.project_resolver"

func init() {
	graft.Register(graft.Node[ports.ProjectResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectResolver, error) {
			return NewResolver(""), nil
		},
	})
}
