package app

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

// warmer rebuilds invalidated models. Projects queued while a rebuild is running
// are coalesced into the next round.
type warmer struct {
	models  Models
	log     ports.Logger
	mu      sync.Mutex
	pending map[string]domain.ProjectIdentity
	wake    chan struct{}
}

func newWarmer(models Models, log ports.Logger) *warmer {
	return &warmer{
		models:  models,
		log:     log,
		pending: make(map[string]domain.ProjectIdentity),
		wake:    make(chan struct{}, 1),
	}
}

func (w *warmer) enqueue(project domain.ProjectIdentity) {
	w.mu.Lock()
	w.pending[project.Key()] = project
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *warmer) drain() []domain.ProjectIdentity {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]domain.ProjectIdentity, 0, len(w.pending))
	for key, project := range w.pending {
		out = append(out, project)
		delete(w.pending, key)
	}
	slices.SortFunc(out, func(a, b domain.ProjectIdentity) int { return strings.Compare(a.Key(), b.Key()) })
	return out
}

func (w *warmer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}

		for _, project := range w.drain() {
			if _, err := w.models.Assert(ctx, project); err != nil {
				if ctx.Err() != nil {
					return
				}
				w.log.Error(err)
				continue
			}
			w.log.Debug("warmed model of " + project.Name())
		}
	}
}
