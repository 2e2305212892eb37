package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// Sheet names of the exported workbook.
const (
	SheetMatches  = "Matches"
	SheetManagers = "Managers"
)

// ManagerColumns is the header of the Managers sheet.
var ManagerColumns = []string{
	"manager", "manager_type", "matches", "wins", "draws", "losses",
	"gf", "ga", "gd", "manager_gd", "first_match", "last_match", "win_rate",
	"gd_per_match",
}

// WorkbookExporter writes the dataset as an XLSX workbook.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter.
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: infrastructure.WithComponent(logger, "workbook_exporter")}
}

// Export writes the Matches and Managers sheets plus one sheet per manager
// type to path. Manager sheets are only written when the data has managers.
func (e *WorkbookExporter) Export(ctx context.Context, ds *domain.Dataset, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	if err := f.SetSheetName("Sheet1", SheetMatches); err != nil {
		return apperrors.NewStorageError("failed to name sheet", err)
	}
	if err := writeMatchSheet(f, SheetMatches, ds.Records, header); err != nil {
		return err
	}

	sheets := []string{SheetMatches}
	if ds.HasManagers() {
		if err := writeManagerSheet(f, ds.Summaries, header); err != nil {
			return err
		}
		sheets = append(sheets, SheetManagers)

		for _, g := range ds.Groups {
			var records []domain.MatchRecord
			for _, m := range g.Managers {
				records = append(records, m.Records...)
			}
			name := string(g.Type)
			if _, err := f.NewSheet(name); err != nil {
				return apperrors.NewStorageError("failed to add sheet", err).WithContext("sheet", name)
			}
			if err := writeMatchSheet(f, name, records, header); err != nil {
				return err
			}
			sheets = append(sheets, name)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "Exported workbook",
		slog.String("path", path),
		slog.Any("sheets", sheets),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func writeMatchSheet(f *excelize.File, sheet string, records []domain.MatchRecord, header int) error {
	if err := writeHeader(f, sheet, MatchColumns, header); err != nil {
		return err
	}
	for i, rec := range records {
		row := []interface{}{
			rec.Competition, string(rec.Stage), formatDate(rec.Date), rec.Manager, string(rec.ManagerType),
			rec.Opponent, string(rec.HomeAway), nil, nil, rec.GoalDifference,
			nil, rec.CumulativeGoalDifference,
		}
		if rec.HasScore {
			row[7], row[8] = rec.GoalsFor, rec.GoalsAgainst
		}
		if rec.HasManager() {
			row[10] = rec.ManagerCumulativeGoalDifference
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeManagerSheet(f *excelize.File, summaries []domain.ManagerSummary, header int) error {
	if _, err := f.NewSheet(SheetManagers); err != nil {
		return apperrors.NewStorageError("failed to add sheet", err).WithContext("sheet", SheetManagers)
	}
	if err := writeHeader(f, SheetManagers, ManagerColumns, header); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{
			s.Manager, string(s.Type), s.Matches, s.Wins, s.Draws, s.Losses,
			s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.ManagerGoalDifference,
			formatDate(s.FirstMatch), formatDate(s.LastMatch), formatFloat(s.WinRate()),
			formatFloat(s.GoalDifferencePerMatch()),
		}
		if err := setRow(f, SheetManagers, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string, style int) error {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return apperrors.NewStorageError("failed to address header", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return apperrors.NewStorageError("failed to style header", err).WithContext("sheet", sheet)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperrors.NewStorageError("failed to address row", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d", row), err).WithContext("sheet", sheet)
	}
	return nil
}
