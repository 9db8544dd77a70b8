// Package observability provides OpenTelemetry tracing and metrics for
// pipeline execution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-pipeline"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "piper.batch")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-pipeline"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-pipeline"))
//
// The instruments record per-segment batch counts, item counts, durations,
// and errors. Handler middleware in the pipeline package wires them in.
package observability
