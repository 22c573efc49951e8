// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dock/internal/adapters/browser"
	_ "go.trai.ch/dock/internal/adapters/catalog"
	_ "go.trai.ch/dock/internal/adapters/config"
	_ "go.trai.ch/dock/internal/adapters/launcher"
	_ "go.trai.ch/dock/internal/adapters/logger"
	_ "go.trai.ch/dock/internal/adapters/manifest"
	_ "go.trai.ch/dock/internal/adapters/store"
	_ "go.trai.ch/dock/internal/adapters/telemetry"
	_ "go.trai.ch/dock/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/dock/internal/app"
	_ "go.trai.ch/dock/internal/engine/monitor"
)
