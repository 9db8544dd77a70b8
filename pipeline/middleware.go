package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/piperkit/piper/observability"
)

// Handler middleware. Each wrapper composes, so a handler can be traced,
// measured, and logged at once:
//
//	h = pipeline.WithTracing(pipeline.WithMetrics(h, metrics), "ingest")

// WithTracing wraps a Handler with OpenTelemetry span creation. Each batch
// creates a span named "{prefix}.{label}".
func WithTracing(h Handler, prefix string) Handler {
	return func(in *Instance, batch []any, args ...any) error {
		ctx, span := observability.StartSpan(context.Background(), prefix+"."+in.Label())
		defer span.End()

		observability.SetSpanAttribute(ctx, observability.AttrSegmentPath, in.Path())
		observability.SetSpanAttribute(ctx, observability.AttrBatchSize, len(batch))

		err := h(in, batch, args...)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
		return err
	}
}

// WithMetrics wraps a Handler with metric recording: batch count, item
// count, duration, and errors per segment.
func WithMetrics(h Handler, metrics *observability.Metrics) Handler {
	return func(in *Instance, batch []any, args ...any) error {
		ctx := context.Background()
		start := time.Now()
		err := h(in, batch, args...)
		duration := time.Since(start)

		status := "ok"
		if err != nil {
			status = "error"
			metrics.RecordError(ctx, in.Path())
		}
		metrics.RecordBatch(ctx, in.Path(), status, len(batch), duration)

		return err
	}
}

// WithLogging wraps a Handler with execution logging: batch size, duration,
// and success or failure, reported through the segment's own logger.
func WithLogging(h Handler) Handler {
	return func(in *Instance, batch []any, args ...any) error {
		start := time.Now()
		err := h(in, batch, args...)
		duration := time.Since(start)

		if err != nil {
			in.LogWarn(fmt.Sprintf("batch of %d failed after %s: %v", len(batch), duration, err))
		} else {
			in.LogDebug(fmt.Sprintf("batch of %d completed in %s", len(batch), duration))
		}
		return err
	}
}
