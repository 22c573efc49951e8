package monitor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/internal/adapters/browser"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dock/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dock/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dock/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dock/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
)

const (
	// MonitorNodeID is the unique identifier for the login monitor Graft node.
	MonitorNodeID graft.ID = "engine.monitor"
	// PublisherNodeID is the unique identifier for the publisher Graft node.
	PublisherNodeID graft.ID = "engine.publisher"
)

var dependencies = []graft.ID{
	browser.NodeID,
	store.NodeID,
	logger.NodeID,
	telemetry.TracerNodeID,
}

type deps struct {
	browser ports.Browser
	store   ports.SessionStore
	logger  ports.Logger
	tracer  ports.Tracer
}

func resolve(ctx context.Context) (deps, error) {
	var d deps
	var err error

	if d.browser, err = graft.Dep[ports.Browser](ctx); err != nil {
		return d, err
	}
	if d.store, err = graft.Dep[ports.SessionStore](ctx); err != nil {
		return d, err
	}
	if d.logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return d, err
	}
	if d.tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return d, err
	}
	return d, nil
}

func init() {
	graft.Register(graft.Node[*Monitor]{
		ID:        MonitorNodeID,
		Cacheable: true,
		DependsOn: append([]graft.ID{config.ConfigNodeID}, dependencies...),
		Run: func(ctx context.Context) (*Monitor, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			d, err := resolve(ctx)
			if err != nil {
				return nil, err
			}
			return NewMonitor(d.browser, d.store, d.logger, d.tracer, cfg.Login.Target()), nil
		},
	})

	graft.Register(graft.Node[*Publisher]{
		ID:        PublisherNodeID,
		Cacheable: true,
		DependsOn: dependencies,
		Run: func(ctx context.Context) (*Publisher, error) {
			d, err := resolve(ctx)
			if err != nil {
				return nil, err
			}
			return NewPublisher(d.browser, d.store, d.logger, d.tracer), nil
		},
	})
}
