package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/internal/adapters/catalog"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/launcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/dock/internal/engine/monitor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			config.NodeID,
			catalog.NodeID,
			launcher.NodeID,
			store.NodeID,
			manifest.NodeID,
			watcher.NodeID,
			monitor.MonitorNodeID,
			monitor.PublisherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	apps, err := graft.Dep[ports.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	launch, err := graft.Dep[ports.Launcher](ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := graft.Dep[ports.SessionStore](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	mon, err := graft.Dep[*monitor.Monitor](ctx)
	if err != nil {
		return nil, err
	}

	publisher, err := graft.Dep[*monitor.Publisher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, loader, apps, launch, sessions, manifests, watch, mon, publisher, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Config: cfg,
	}, nil
}
