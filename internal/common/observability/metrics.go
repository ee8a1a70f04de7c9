// internal/common/observability/metrics.go

// Package observability records job and lifecycle measurements through the OpenTelemetry
// metric SDK, exported on the Prometheus /metrics endpoint.
package observability

import (
	"context"
	"errors"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability is safe to use as a zero value; every recorder becomes a no-op.
type Observability struct {
	meterProvider *metric.MeterProvider
	jobCounter    otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
	insightCount  otelmetric.Int64Counter
	pipelineDays  otelmetric.Int64Histogram
}

// New exports OpenTelemetry instruments through the default Prometheus registry.
func New(serviceName string) *Observability {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

// NewWithRegisterer is New against an explicit registry. On exporter failure the
// returned value records nothing.
func NewWithRegisterer(serviceName string, registerer promclient.Registerer) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registerer))
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o := &Observability{meterProvider: provider}
	var errs []error
	track := func(err error) { errs = append(errs, err) }

	o.jobCounter, err = meter.Int64Counter("jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"))
	track(err)

	o.jobDuration, err = meter.Float64Histogram("jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"))
	track(err)

	o.insightCount, err = meter.Int64Counter("lifecycle.insights",
		otelmetric.WithDescription("Insights generated per evaluation"))
	track(err)

	o.pipelineDays, err = meter.Int64Histogram("lifecycle.pipeline_days",
		otelmetric.WithDescription("Days from first to last recorded stage per snapshot"),
		otelmetric.WithUnit("d"),
		otelmetric.WithExplicitBucketBoundaries(7, 14, 21, 30, 45, 60, 90, 120))
	track(err)

	if err := errors.Join(errs...); err != nil {
		log.Printf("Failed to create some instruments: %v", err)
	}

	return o
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

// RecordInsights counts insights emitted for one evaluation.
func (o *Observability) RecordInsights(ctx context.Context, count int, hasWarnings bool) {
	if o.insightCount != nil {
		o.insightCount.Add(ctx, int64(count), otelmetric.WithAttributes(
			attribute.Bool("has_warnings", hasWarnings),
		))
	}
}

// RecordSnapshot observes the pipeline length of one snapshot, labelled by its overall
// efficiency and current stage.
func (o *Observability) RecordSnapshot(ctx context.Context, totalDays int, efficiency, currentStage string) {
	if o.pipelineDays == nil {
		return
	}
	if currentStage == "" {
		currentStage = "none"
	}
	o.pipelineDays.Record(ctx, int64(totalDays), otelmetric.WithAttributes(
		attribute.String("efficiency", efficiency),
		attribute.String("current_stage", currentStage),
	))
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			log.Printf("Failed to shut down meter provider: %v", err)
		}
	}
}
