package modelcache

import (
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

// Listener invalidates cached state of the project a changed resource belongs to.
type Listener struct {
	resolver ports.ProjectResolver
	log      ports.Logger
	targets  []ports.ProjectInvalidator
}

// NewListener creates a Listener that forwards invalidations to targets in order.
func NewListener(resolver ports.ProjectResolver, log ports.Logger, targets ...ports.ProjectInvalidator) *Listener {
	return &Listener{
		resolver: resolver,
		log:      log,
		targets:  targets,
	}
}

// HandleResourceChanged invalidates the project containing evt.Path.
// Changes outside any project are ignored.
func (l *Listener) HandleResourceChanged(evt domain.ResourceChanged) {
	l.Invalidate(evt)
}

// Invalidate is HandleResourceChanged that also returns the invalidated project.
// It returns false when evt.Path is outside any project.
func (l *Listener) Invalidate(evt domain.ResourceChanged) (domain.ProjectIdentity, bool) {
	project, ok := l.resolver.Resolve(evt.Path)
	if !ok {
		l.log.Debug("ignoring " + evt.Op.String() + " of " + evt.Path + ": not inside a project")
		return domain.ProjectIdentity{}, false
	}

	l.log.Debug(evt.Op.String() + " of " + evt.Path + " invalidates " + project.Name())
	for _, target := range l.targets {
		target.Invalidate(project)
	}
	return project, true
}

// Subscribe attaches the listener to source and returns the cancel function.
func (l *Listener) Subscribe(source ports.EventSource) (cancel func()) {
	return source.Subscribe(l.HandleResourceChanged)
}
