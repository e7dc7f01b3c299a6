// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/oracle/internal/adapters/config"
	_ "go.trai.ch/oracle/internal/adapters/eventbus"
	_ "go.trai.ch/oracle/internal/adapters/fs"
	_ "go.trai.ch/oracle/internal/adapters/golang"
	_ "go.trai.ch/oracle/internal/adapters/gomod"
	_ "go.trai.ch/oracle/internal/adapters/imports"
	_ "go.trai.ch/oracle/internal/adapters/logger"
	_ "go.trai.ch/oracle/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/oracle/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/oracle/internal/app"
	_ "go.trai.ch/oracle/internal/engine/modelcache"
)
