package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/internal/adapters/config"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
)

// NodeID is the unique identifier for the catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Catalog]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.Catalog, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(Merge(Defaults(), cfg.Apps))
		},
	})
}
