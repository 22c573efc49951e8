package telemetry

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/dock/internal/adapters/logger"
	"go.trai.ch/dock/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// SlowSpanThreshold is the shortest successful span worth logging.
const SlowSpanThreshold = time.Second

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer("dock", NewLogBridge(log, SlowSpanThreshold)), nil
		},
	})
}
