package imports

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/core/ports"
)

// NodeID is the unique identifier for the import loader Graft node.
const NodeID graft.ID = "adapter.imports"

var _ ports.ImportLoader = (*Loader)(nil)

func init() {
	graft.Register(graft.Node[ports.ImportLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportLoader, error) {
			return NewLoader(), nil
		},
	})
}
