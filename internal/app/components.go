package app

import (
	"errors"

	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports"
)

// Components holds everything the command line needs from the object graph.
type Components struct {
	App       *App
	Logger    ports.Logger
	Config    domain.Config
	Telemetry ports.Telemetry

	closers []func() error
}

// Close releases the long-lived components in reverse construction order.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
