package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/dock/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor by logging finished spans.
type LogBridge struct {
	logger ports.Logger
	// minDuration hides successful spans that finished faster than this.
	minDuration time.Duration
}

// NewLogBridge returns a new LogBridge. Successful spans shorter than
// minDuration are not logged; failed spans always are.
func NewLogBridge(logger ports.Logger, minDuration time.Duration) *LogBridge {
	return &LogBridge{
		logger:      logger,
		minDuration: minDuration,
	}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.logger.Warn(s.Name() + " failed after " + elapsed.String() + ": " + desc)
		return
	}
	if elapsed < b.minDuration {
		return
	}
	b.logger.Info(s.Name() + " finished in " + elapsed.String())
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}
