package observability

import (
	"context"
	"testing"
	"time"
)

func TestStartSpan_NoProvider(t *testing.T) {
	// Without an installed provider the global tracer is a no-op; helpers
	// must still be safe to call.
	ctx, span := StartSpan(context.Background(), SpanBatch)
	defer span.End()

	SetSpanAttribute(ctx, AttrSegmentPath, "main/half")
	SetSpanAttribute(ctx, AttrBatchSize, 4)
	SetSpanError(ctx, context.Canceled)
}

func TestNewMetrics_NoProvider(t *testing.T) {
	metrics, err := NewMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordBatch(ctx, "main/half", "ok", 4, 10*time.Millisecond)
	metrics.RecordError(ctx, "main/half")
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("p")
	if tc.PipelineName != "p" || tc.Endpoint == "" || tc.SampleRate != 1.0 {
		t.Fatalf("unexpected tracer defaults: %+v", tc)
	}
	mc := DefaultMeterConfig("p")
	if mc.PipelineName != "p" || mc.Interval <= 0 {
		t.Fatalf("unexpected meter defaults: %+v", mc)
	}
}
