package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"gdchart/internal/config"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// Processor runs parse, scope filter, normalize, group and summarize, and
// assembles the Dataset.
type Processor struct {
	logger     *slog.Logger
	parser     *Parser
	scope      ScopeFilter
	normalizer *Normalizer
	summarizer *Summarizer
	opts       ProcessorOptions
	hook       StageHook
	now        func() time.Time
}

// NewProcessor creates a processor using the given lookup tables.
func NewProcessor(logger *slog.Logger, tables *config.LookupTables, opts ProcessorOptions) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     infrastructure.WithComponent(logger, "processor"),
		parser:     NewParser(logger, opts.Sheet),
		scope:      ScopeFilter{Start: opts.ScopeStart},
		normalizer: NewNormalizer(logger, tables, opts.Normalizer),
		summarizer: NewSummarizer(logger),
		opts:       opts,
		hook:       noopHook,
		now:        time.Now,
	}
}

// WithStageHook installs a hook called around each stage.
func (p *Processor) WithStageHook(hook StageHook) *Processor {
	if hook != nil {
		p.hook = hook
	}
	return p
}

// LoadFile parses path and processes it.
func (p *Processor) LoadFile(ctx context.Context, path string) (*domain.Dataset, error) {
	stageCtx, done := p.hook(ctx, infrastructure.StageLoad)
	table, err := p.parser.ParseFile(path)
	done(err)
	if err != nil {
		infrastructure.WithError(p.logger, err).ErrorContext(stageCtx, "Failed to load match data",
			slog.String("path", path))
		return nil, err
	}

	return p.Process(ctx, table)
}

// Process runs every stage after parsing.
func (p *Processor) Process(ctx context.Context, table *Table) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept, scope := p.scope.Apply(table.Rows)
	if scope.Total() > 0 {
		p.logger.InfoContext(ctx, "Filtered rows outside scope",
			slog.Int("before_start", scope.BeforeStart),
			slog.Int("non_competitive", scope.NonCompetitive))
	}
	scoped := &Table{Source: table.Source, Columns: table.Columns, Rows: kept}

	stageCtx, done := p.hook(ctx, infrastructure.StageNormalize)
	normalized, err := p.normalizer.Normalize(stageCtx, scoped)
	if err == nil {
		infrastructure.SetSpanAttributes(stageCtx, map[string]interface{}{
			"gdchart.records":  len(normalized.Records),
			"gdchart.issues":   len(normalized.Issues),
			"gdchart.rejected": normalized.Rejected,
		})
	}
	done(err)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageCtx, done = p.hook(ctx, infrastructure.StageGroup)
	groups, ungrouped := GroupByManagerType(normalized.Records)
	done(nil)
	if len(ungrouped) > 0 && len(ungrouped) < len(normalized.Records) {
		p.logger.WarnContext(stageCtx, "Records excluded from manager groups",
			slog.Int("count", len(ungrouped)))
	}

	stageCtx, done = p.hook(ctx, infrastructure.StageSummarize)
	summaries := p.summarizer.Summarize(stageCtx, normalized.Records)
	done(nil)

	issues := normalized.Issues
	if issues == nil {
		issues = []domain.LoadIssue{}
	}

	return &domain.Dataset{
		Source:     table.Source,
		LoadedAt:   p.now().UTC(),
		ScopeStart: p.opts.ScopeStart,
		Mode:       string(p.normalizer.opts.Mode),
		Records:    normalized.Records,
		Groups:     groups,
		Summaries:  summaries,
		Issues:     issues,
		Ungrouped:  ungrouped,
		Rejected:   normalized.Rejected,
		Scope:      scope,
	}, nil
}
