// Package app implements the application layer for oracle.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
	"go.trai.ch/oracle/internal/engine/modelcache"
	"go.trai.ch/zerr"
)

// Models is the derived model cache as seen by the application.
type Models interface {
	ports.ProjectInvalidator
	Assert(ctx context.Context, project domain.ProjectIdentity) (*domain.DerivedModel, error)
	Stats() modelcache.Stats
}

// EventBus fans resource changes out to subscribers.
type EventBus interface {
	ports.EventSource
	Publish(evt domain.ResourceChanged) error
}

// App represents the main application logic.
type App struct {
	resolver  ports.ProjectResolver
	models    Models
	listener  *modelcache.Listener
	watcher   ports.Watcher
	bus       EventBus
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	resolver ports.ProjectResolver,
	models Models,
	listener *modelcache.Listener,
	watcher ports.Watcher,
	bus EventBus,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		resolver:  resolver,
		models:    models,
		listener:  listener,
		watcher:   watcher,
		bus:       bus,
		telemetry: telemetry,
		logger:    log,
	}
}

// Model returns the derived model of the project containing path.
func (a *App) Model(ctx context.Context, path string) (*domain.DerivedModel, error) {
	project, err := a.project(path)
	if err != nil {
		return nil, err
	}
	return a.models.Assert(ctx, project)
}

// Invalidate drops the cached model of the project containing path.
func (a *App) Invalidate(path string) error {
	project, err := a.project(path)
	if err != nil {
		return err
	}
	a.models.Invalidate(project)
	return nil
}

// Stats returns the model cache counters.
func (a *App) Stats() modelcache.Stats {
	return a.models.Stats()
}

// Telemetry returns the counters of the model lookups recorded so far.
func (a *App) Telemetry() domain.TelemetrySummary {
	return a.telemetry.Summary()
}

func (a *App) project(path string) (domain.ProjectIdentity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.ProjectIdentity{}, zerr.With(zerr.Wrap(err, domain.ErrProjectNotFound.Error()), "path", path)
	}
	project, ok := a.resolver.Resolve(abs)
	if !ok {
		return domain.ProjectIdentity{}, zerr.With(domain.ErrProjectNotFound, "path", abs)
	}
	return project, nil
}

// WatchOptions configures the Watch method.
type WatchOptions struct {
	// Warm rebuilds the model of every invalidated project in the background.
	Warm bool
}

// Watch invalidates cached models while files below root change.
// It returns once ctx is done or the watcher stops.
func (a *App) Watch(ctx context.Context, root string, opts WatchOptions) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", root)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Start(ctx, abs); err != nil {
		return err
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop file watcher: " + err.Error())
		}
	}()

	var unsubscribe func()
	if opts.Warm {
		w := newWarmer(a.models, a.logger)
		done := make(chan struct{})
		go func() {
			defer close(done)
			w.run(ctx)
		}()
		defer func() {
			cancel()
			<-done
		}()

		unsubscribe = a.bus.Subscribe(func(evt domain.ResourceChanged) {
			if project, ok := a.listener.Invalidate(evt); ok {
				w.enqueue(project)
			}
		})
	} else {
		unsubscribe = a.listener.Subscribe(a.bus)
	}
	defer unsubscribe()

	a.logger.Info("watching " + abs)
	for evt := range a.watcher.Events() {
		if err := a.bus.Publish(evt); err != nil {
			return err
		}
	}
	return nil
}
