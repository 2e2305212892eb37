package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gdchart/internal/dataprocessing"
	"gdchart/internal/infrastructure"
)

// SpanPrefix names every pipeline span, e.g. "gdchart.normalize".
const SpanPrefix = "gdchart."

// PipelineTracer opens one span per pipeline stage and records the stage
// duration histogram when the stage ends.
type PipelineTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewPipelineTracer creates a tracer. A nil metrics skips duration recording.
func NewPipelineTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *PipelineTracer {
	return &PipelineTracer{tracer: tracer, metrics: metrics}
}

// StartStage starts the span for stage. The returned func ends it and must
// be called exactly once with the stage's error.
func (t *PipelineTracer) StartStage(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String("gdchart.stage", stage))
	ctx, span := t.tracer.Start(ctx, SpanPrefix+stage,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	start := time.Now()
	return ctx, func(err error) {
		t.metrics.RecordStage(ctx, stage, time.Since(start))
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
		span.End()
	}
}

// StageHook adapts the tracer to the processor's hook signature.
func (t *PipelineTracer) StageHook() dataprocessing.StageHook {
	return func(ctx context.Context, stage string) (context.Context, func(error)) {
		return t.StartStage(ctx, stage)
	}
}
