package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"gdchart/internal/chart"
	"gdchart/internal/config"
	"gdchart/internal/dataprocessing"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/exporter"
	"gdchart/internal/files"
	"gdchart/internal/infrastructure"
	"gdchart/internal/validation"
	"gdchart/pkg/contracts/domain"
)

// Snapshotter captures a rendered chart page as PNG.
type Snapshotter interface {
	Capture(ctx context.Context, htmlPath, pngPath string, layout chart.Layout) error
}

// BuildRequest selects the input and outputs of one build. Zero fields
// fall back to the configuration.
type BuildRequest struct {
	Input     string
	Variant   string
	Layout    string
	OutputDir string
	Formats   []string
	Snapshot  bool
}

// BuildResult lists what a build produced.
type BuildResult struct {
	Dataset *domain.Dataset   `json:"-"`
	Source  string            `json:"source"`
	Records int               `json:"records"`
	Issues  int               `json:"issues"`
	Files   map[string]string `json:"files"`
}

// CheckReport is the outcome of a load-only run.
type CheckReport struct {
	Source   string             `json:"source"`
	Records  int                `json:"records"`
	Rejected int                `json:"rejected"`
	Scope    domain.ScopeStats  `json:"scope"`
	Issues   []domain.LoadIssue `json:"issues"`
}

// OK reports whether the load produced no issues and rejected no rows.
func (r *CheckReport) OK() bool {
	return len(r.Issues) == 0 && r.Rejected == 0
}

// ChartService loads match data and produces the chart and exports.
type ChartService struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger

	tables     *config.LookupTables
	timeframes []domain.Timeframe

	discovery   *files.Discovery
	validator   *validation.FileValidator
	processor   *dataprocessing.Processor
	renderer    *chart.Renderer
	matches     *exporter.MatchExporter
	workbook    *exporter.WorkbookExporter
	json        *exporter.JSONExporter
	snapshotter Snapshotter

	providers *infrastructure.OTelProviders
	metrics   *infrastructure.PipelineMetrics
	tracer    *PipelineTracer
}

// NewChartService wires the pipeline from cfg. A nil providers gets no-op
// telemetry.
func NewChartService(cfg *config.Config, paths *config.Paths, logger *slog.Logger, providers *infrastructure.OTelProviders) (*ChartService, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if paths == nil {
		p, err := config.NewPaths(cfg)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to resolve paths", err)
		}
		paths = p
	}
	if providers == nil {
		p, err := infrastructure.InitializeOTel(nil, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		providers = p
	}

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	timeframes, err := config.LoadTimeframes(paths.Resolve(cfg.Chart.TimeframesFile))
	if err != nil {
		return nil, err
	}

	tables := config.NewLookupTables()
	tracer := NewPipelineTracer(providers.Tracer, metrics)

	processor := dataprocessing.NewProcessor(logger, tables, dataprocessing.ProcessorOptions{
		Sheet:      cfg.Data.Sheet,
		ScopeStart: cfg.ScopeStartDate(),
		Normalizer: dataprocessing.NormalizerOptions{
			Mode:          dataprocessing.CumulativeMode(cfg.Data.CumulativeMode),
			Policy:        dataprocessing.RowPolicy(cfg.Data.Policy),
			InferManagers: cfg.Data.InferManagers,
		},
	}).WithStageHook(tracer.StageHook())

	logger.Debug("ChartService initialized",
		slog.String("data_dir", paths.DataDir),
		slog.String("output_dir", paths.OutputDir),
		slog.Int("timeframes", len(timeframes)))

	return &ChartService{
		cfg:         cfg,
		paths:       paths,
		logger:      infrastructure.WithComponent(logger, "chart_service"),
		tables:      tables,
		timeframes:  timeframes,
		discovery:   files.NewDiscovery(paths.BaseDir),
		validator:   validation.NewFileValidator(logger),
		processor:   processor,
		renderer:    chart.NewRenderer(logger, tables),
		matches:     exporter.NewMatchExporter(logger, paths),
		workbook:    exporter.NewWorkbookExporter(logger),
		json:        exporter.NewJSONExporter(logger),
		snapshotter: chart.NewSnapshotter(logger, cfg.Chart.SnapshotTimeout),
		providers:   providers,
		metrics:     metrics,
		tracer:      tracer,
	}, nil
}

// WithSnapshotter replaces the headless Chrome snapshotter.
func (s *ChartService) WithSnapshotter(snap Snapshotter) *ChartService {
	if snap != nil {
		s.snapshotter = snap
	}
	return s
}

// Load resolves input (or the configured or discovered file) and runs the
// load pipeline.
func (s *ChartService) Load(ctx context.Context, input string) (*domain.Dataset, error) {
	if input == "" {
		input = s.cfg.Data.Input
	}
	info, err := s.discovery.ResolveInput(input, s.paths.DataDir)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Failed to resolve input",
			slog.String("input", input),
			slog.String("data_dir", s.paths.DataDir))
		return nil, err
	}
	if err := s.validator.ValidateMatchFile(info.Path); err != nil {
		return nil, err
	}

	ds, err := s.processor.LoadFile(ctx, info.Path)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRows(ctx, len(ds.Records), ds.Rejected)
	for _, issue := range ds.Issues {
		s.metrics.RecordIssue(ctx, string(issue.Kind))
	}

	s.logger.InfoContext(ctx, "Loaded match data",
		slog.String("source", info.Path),
		slog.Int("records", len(ds.Records)),
		slog.Int("rejected", ds.Rejected),
		slog.Int("issues", len(ds.Issues)),
		slog.Int("out_of_scope", ds.Scope.Total()))
	return ds, nil
}

// Build loads the input and writes every requested output concurrently.
func (s *ChartService) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	formats, snapshot, err := s.outputFormats(req)
	if err != nil {
		return nil, err
	}

	ds, err := s.Load(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	outDir := s.paths.OutputDir
	if req.OutputDir != "" {
		outDir = s.paths.Resolve(req.OutputDir)
	}
	if err := s.validator.ValidateOutputDirectory(outDir); err != nil {
		return nil, err
	}

	opts := chart.Options{
		Variant:    firstNonEmpty(req.Variant, s.cfg.Chart.Variant),
		Layout:     firstNonEmpty(req.Layout, s.cfg.Chart.Layout),
		Title:      s.cfg.Chart.Title,
		Timeframes: s.timeframes,
	}

	start := time.Now()
	var mu sync.Mutex
	written := make(map[string]string, len(formats)+1)
	record := func(format, path string) {
		mu.Lock()
		written[format] = path
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			switch format {
			case config.FormatHTML:
				htmlPath := filepath.Join(outDir, config.ChartHTMLFile)
				if err := s.renderHTML(gctx, htmlPath, ds, opts); err != nil {
					return err
				}
				record(format, htmlPath)
				if !snapshot {
					return nil
				}
				pngPath := filepath.Join(outDir, config.ChartPNGFile)
				if err := s.capture(gctx, htmlPath, pngPath, opts.Layout); err != nil {
					return err
				}
				record(config.FormatPNG, pngPath)
				return nil

			case config.FormatCSV:
				path := filepath.Join(outDir, config.MatchesCSVFile)
				if err := s.export(gctx, format, func(ctx context.Context) error {
					return s.matches.ExportCSV(ctx, ds.Records, path)
				}); err != nil {
					return err
				}
				record(format, path)
				return nil

			case config.FormatXLSX:
				path := filepath.Join(outDir, config.WorkbookFile)
				if err := s.export(gctx, format, func(ctx context.Context) error {
					return s.workbook.Export(ctx, ds, path)
				}); err != nil {
					return err
				}
				record(format, path)
				return nil

			case config.FormatJSON:
				path := filepath.Join(outDir, config.DatasetJSONFile)
				doc := exporter.NewDatasetDocument(ds, s.tables, s.timeframes)
				if err := s.export(gctx, format, func(ctx context.Context) error {
					return s.json.Export(ctx, doc, path)
				}); err != nil {
					return err
				}
				record(format, path)
				return nil
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Build failed",
			slog.String("output_dir", outDir))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Build complete",
		slog.String("output_dir", outDir),
		slog.Int("files", len(written)),
		slog.Duration("duration", time.Since(start)))

	return &BuildResult{
		Dataset: ds,
		Source:  ds.Source,
		Records: len(ds.Records),
		Issues:  len(ds.Issues),
		Files:   written,
	}, nil
}

// Lookup returns the record nearest to date in the loaded input.
func (s *ChartService) Lookup(ctx context.Context, input string, date time.Time) (domain.MatchRecord, error) {
	ds, err := s.Load(ctx, input)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	rec, err := dataprocessing.NewLocator(ds.Records).Nearest(date)
	if err != nil {
		return domain.MatchRecord{}, err
	}
	s.metrics.RecordLookup(ctx, 1)

	s.logger.DebugContext(ctx, "Lookup served",
		slog.String("query", date.Format(config.DateLayout)),
		slog.String("match_date", rec.Date.Format(config.DateLayout)),
		slog.Int("row", rec.Row))
	return rec, nil
}

// Summaries returns the per-tenure manager summaries of the input.
func (s *ChartService) Summaries(ctx context.Context, input string) ([]domain.ManagerSummary, error) {
	ds, err := s.Load(ctx, input)
	if err != nil {
		return nil, err
	}
	if !ds.HasManagers() {
		return nil, apperrors.NewValidationError("input has no manager columns", ErrInvalidInput).
			WithContext("source", ds.Source)
	}
	return ds.Summaries, nil
}

// Check loads the input and reports what the load found.
func (s *ChartService) Check(ctx context.Context, input string) (*CheckReport, error) {
	ds, err := s.Load(ctx, input)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Source:   ds.Source,
		Records:  len(ds.Records),
		Rejected: ds.Rejected,
		Scope:    ds.Scope,
		Issues:   ds.Issues,
	}
	if !report.OK() {
		s.logger.WarnContext(ctx, "Input has load issues",
			slog.String("source", ds.Source),
			slog.Int("issues", len(ds.Issues)),
			slog.Int("rejected", ds.Rejected))
	}
	return report, nil
}

// FlushMetrics writes the metrics textfile when metrics are enabled.
func (s *ChartService) FlushMetrics() error {
	if !s.cfg.Telemetry.Metrics {
		return nil
	}
	return s.providers.WriteMetricsFile(s.paths.MetricsFile)
}

func (s *ChartService) renderHTML(ctx context.Context, path string, ds *domain.Dataset, opts chart.Options) error {
	ctx, done := s.tracer.StartStage(ctx, infrastructure.StageRender,
		attribute.String("gdchart.variant", opts.Variant),
		attribute.String("gdchart.layout", opts.Layout))
	err := s.renderer.RenderFile(ctx, path, ds, opts)
	done(err)
	return err
}

func (s *ChartService) capture(ctx context.Context, htmlPath, pngPath, layoutName string) error {
	layout, err := chart.LayoutFor(layoutName)
	if err != nil {
		return err
	}
	ctx, done := s.tracer.StartStage(ctx, infrastructure.StageSnapshot)
	err = s.snapshotter.Capture(ctx, htmlPath, pngPath, layout)
	done(err)
	return err
}

func (s *ChartService) export(ctx context.Context, format string, write func(context.Context) error) error {
	ctx, done := s.tracer.StartStage(ctx, infrastructure.StageExport, attribute.String("gdchart.format", format))
	err := write(ctx)
	done(err)
	return err
}

// outputFormats validates the requested formats. "png" is a request for
// the snapshot and pulls in the HTML page it is captured from.
func (s *ChartService) outputFormats(req BuildRequest) ([]string, bool, error) {
	requested := req.Formats
	if len(requested) == 0 {
		requested = s.cfg.Output.Formats
	}
	snapshot := req.Snapshot || s.cfg.Chart.Snapshot

	seen := make(map[string]bool, len(requested)+1)
	var formats []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}

	for _, f := range requested {
		switch f {
		case config.FormatHTML, config.FormatCSV, config.FormatXLSX, config.FormatJSON:
			add(f)
		case config.FormatPNG:
			snapshot = true
		default:
			return nil, false, apperrors.NewValidationError("unsupported output format", ErrUnsupportedFormat).
				WithContext("format", f)
		}
	}
	if snapshot {
		add(config.FormatHTML)
	}
	if len(formats) == 0 {
		return nil, false, apperrors.NewValidationError("no output formats requested", ErrInvalidInput)
	}
	return formats, snapshot, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
