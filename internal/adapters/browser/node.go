package browser

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/internal/adapters/config"
	"go.trai.ch/dock/internal/adapters/logger"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
)

// NodeID is the unique identifier for the browser Graft node.
const NodeID graft.ID = "adapter.browser"

func init() {
	graft.Register(graft.Node[ports.Browser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Browser, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Browser, cfg.Publish, log), nil
		},
	})
}
