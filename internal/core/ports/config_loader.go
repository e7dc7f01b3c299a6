package ports

import "go.trai.ch/oracle/internal/core/domain"

// ConfigLoader defines the interface for loading the workbench configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory and resolves it.
	// A missing configuration file yields the defaults.
	Load(cwd string) (domain.Config, error)

	// DiscoverRoot walks up from cwd to the directory containing oracle.yaml.
	// It returns cwd itself when no configuration file exists.
	DiscoverRoot(cwd string) (string, error)
}
