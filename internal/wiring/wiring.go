// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/paket/internal/adapters/cas"
	_ "go.trai.ch/paket/internal/adapters/config"
	_ "go.trai.ch/paket/internal/adapters/installer"
	_ "go.trai.ch/paket/internal/adapters/lock"
	_ "go.trai.ch/paket/internal/adapters/logger"
	_ "go.trai.ch/paket/internal/adapters/metrics"
	_ "go.trai.ch/paket/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/paket/internal/app"
	_ "go.trai.ch/paket/internal/engine/conflict"
	_ "go.trai.ch/paket/internal/engine/journal"
	_ "go.trai.ch/paket/internal/engine/orchestrator"
)
