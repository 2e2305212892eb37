package exporter

import (
	"context"
	"log/slog"
	"time"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// MatchColumns is the cleaned match file column order.
var MatchColumns = []string{
	"competition", "stage", "date", "manager", "manager_type",
	"opponent", "h_a", "gf", "ga", "gd", "manager_gd", "cum_gd",
}

// MatchExporter writes normalized match records as CSV.
type MatchExporter struct {
	logger    *slog.Logger
	csvWriter *CSVWriter
}

// NewMatchExporter creates a match exporter writing relative paths under
// the output directory.
func NewMatchExporter(logger *slog.Logger, paths *config.Paths) *MatchExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchExporter{
		logger:    infrastructure.WithComponent(logger, "match_exporter"),
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportCSV writes records to filePath.
func (e *MatchExporter) ExportCSV(ctx context.Context, records []domain.MatchRecord, filePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = MatchRow(rec)
	}

	if err := e.csvWriter.WriteCSV(filePath, WriteOptions{Headers: MatchColumns, Records: rows}); err != nil {
		return apperrors.NewStorageError("failed to export matches", err).WithContext("path", filePath)
	}

	e.logger.InfoContext(ctx, "Exported matches",
		slog.String("path", e.csvWriter.resolvePath(filePath)),
		slog.Int("records", len(records)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// MatchRow formats one record in MatchColumns order. Manager columns are
// empty for records without a manager, gf and ga for records without a score.
func MatchRow(rec domain.MatchRecord) []string {
	managerGD := ""
	if rec.HasManager() {
		managerGD = formatInt(rec.ManagerCumulativeGoalDifference)
	}
	gf, ga := "", ""
	if rec.HasScore {
		gf, ga = formatInt(rec.GoalsFor), formatInt(rec.GoalsAgainst)
	}
	return []string{
		rec.Competition,
		string(rec.Stage),
		formatDate(rec.Date),
		rec.Manager,
		string(rec.ManagerType),
		rec.Opponent,
		string(rec.HomeAway),
		gf,
		ga,
		formatInt(rec.GoalDifference),
		managerGD,
		formatInt(rec.CumulativeGoalDifference),
	}
}
