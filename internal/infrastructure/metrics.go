package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Pipeline stage names used for spans and the stage duration histogram.
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageGroup     = "group"
	StageSummarize = "summarize"
	StageRender    = "render"
	StageExport    = "export"
	StageSnapshot  = "snapshot"
)

// PipelineMetrics holds the gdchart instruments. The Prometheus exporter
// adds the _total and _seconds suffixes.
type PipelineMetrics struct {
	RowsLoaded    metric.Int64Counter
	RowsRejected  metric.Int64Counter
	LoadIssues    metric.Int64Counter
	StageDuration metric.Float64Histogram
	Lookups       metric.Int64Counter
}

// NewPipelineMetrics creates the instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"gdchart_rows_loaded",
		metric.WithDescription("Match records accepted by the normalizer"),
	)
	if err != nil {
		return nil, err
	}

	rowsRejected, err := meter.Int64Counter(
		"gdchart_rows_rejected",
		metric.WithDescription("Source rows rejected during load"),
	)
	if err != nil {
		return nil, err
	}

	loadIssues, err := meter.Int64Counter(
		"gdchart_load_issues",
		metric.WithDescription("Reported load issues by kind"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"gdchart_stage_duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter(
		"gdchart_lookups",
		metric.WithDescription("Nearest-record lookups served"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:    rowsLoaded,
		RowsRejected:  rowsRejected,
		LoadIssues:    loadIssues,
		StageDuration: stageDuration,
		Lookups:       lookups,
	}, nil
}

// RecordRows records loaded and rejected row counts
func (m *PipelineMetrics) RecordRows(ctx context.Context, loaded, rejected int) {
	if m == nil {
		return
	}
	m.RowsLoaded.Add(ctx, int64(loaded))
	m.RowsRejected.Add(ctx, int64(rejected))
}

// RecordIssue counts one load issue of the given kind
func (m *PipelineMetrics) RecordIssue(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.LoadIssues.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordStage records how long a pipeline stage took
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordLookup counts served lookups
func (m *PipelineMetrics) RecordLookup(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.Lookups.Add(ctx, int64(n))
}
