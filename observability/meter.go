package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// PipelineName names the pipeline in exported metrics.
	PipelineName string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(pipelineName string) MeterConfig {
	return MeterConfig{
		PipelineName: pipelineName,
		Environment:  "development",
		Endpoint:     "localhost:4318",
		Insecure:     true,
		Interval:     15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.PipelineName, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry instruments for pipeline observability.
type Metrics struct {
	batchTotal    metric.Int64Counter
	batchDuration metric.Float64Histogram
	itemTotal     metric.Int64Counter
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	batchTotal, err := meter.Int64Counter("batch.total",
		metric.WithDescription("Total number of processed batches"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating batch.total counter: %w", err)
	}

	batchDuration, err := meter.Float64Histogram("batch.duration",
		metric.WithDescription("Duration of batch handler invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating batch.duration histogram: %w", err)
	}

	itemTotal, err := meter.Int64Counter("item.total",
		metric.WithDescription("Total number of items handed to handlers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total handler errors by segment"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		batchTotal:    batchTotal,
		batchDuration: batchDuration,
		itemTotal:     itemTotal,
		errorTotal:    errorTotal,
	}, nil
}

// RecordBatch records one handler invocation over a batch.
func (m *Metrics) RecordBatch(ctx context.Context, segment, status string, items int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("segment", segment),
		attribute.String("status", status),
	)
	m.batchTotal.Add(ctx, 1, attrs)
	m.itemTotal.Add(ctx, int64(items), attrs)
	m.batchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("segment", segment),
	))
}

// RecordError records a handler error for a segment.
func (m *Metrics) RecordError(ctx context.Context, segment string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("segment", segment),
	))
}
