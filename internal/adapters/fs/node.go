package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the project walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the source fingerprinter Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(domain.DefaultSkipDirectories()), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})
}
