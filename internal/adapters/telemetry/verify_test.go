package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/dock/internal/adapters/telemetry"
	"go.trai.ch/dock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test-tracer", recorder)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	_, span := tracer.Start(context.Background(), "publish")
	span.SetAttribute("video", "clip.mp4")
	span.SetAttribute("attempt", 2)
	span.SetAttribute("headless", true)
	span.SetAttribute("timeout", 2*time.Minute)
	span.RecordError(errors.New("upload stalled"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "publish", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "upload stalled", got.Status().Description)
	assert.Contains(t, got.Attributes(), attribute.String("video", "clip.mp4"))
	assert.Contains(t, got.Attributes(), attribute.Int("attempt", 2))
	assert.Contains(t, got.Attributes(), attribute.Bool("headless", true))
	assert.Contains(t, got.Attributes(), attribute.String("timeout", "2m0s"))
}

func TestOTelSpan_RecordNilError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test-tracer", recorder)

	_, span := tracer.Start(context.Background(), "ok")
	span.RecordError(nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}

func TestLogBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var bridge sdktrace.SpanProcessor = telemetry.NewLogBridge(log, 0)
	tracer := telemetry.NewOTelTracer("test-tracer", bridge)

	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "watch-login finished in "), msg)
	})
	_, span := tracer.Start(context.Background(), "watch-login")
	span.End()

	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "publish failed after "), msg)
		assert.True(t, strings.HasSuffix(msg, ": boom"), msg)
	})
	_, span = tracer.Start(context.Background(), "publish")
	span.RecordError(errors.New("boom"))
	span.End()
}

func TestLogBridge_HidesFastSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tracer := telemetry.NewOTelTracer("test-tracer", telemetry.NewLogBridge(log, time.Hour))

	// No expectations: a fast successful span must not be logged.
	_, span := tracer.Start(context.Background(), "GET /api/apps")
	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
