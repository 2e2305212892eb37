package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
)

// Canonical column names.
const (
	ColDate           = "date"
	ColOpponent       = "opponent"
	ColCompetition    = "competition"
	ColStage          = "stage"
	ColHomeAway       = "h_a"
	ColGoalsFor       = "gf"
	ColGoalsAgainst   = "ga"
	ColGoalDifference = "gd"
	ColManager        = "manager"
	ColManagerType    = "manager_type"
	ColManagerGD      = "manager_gd"
	ColCumulativeGD   = "cum_gd"
)

// columnAliases maps normalized header spellings to canonical names.
var columnAliases = map[string]string{
	"date":            ColDate,
	"match_date":      ColDate,
	"opponent":        ColOpponent,
	"competition":     ColCompetition,
	"trophy":          ColCompetition,
	"stage":           ColStage,
	"h_a":             ColHomeAway,
	"home_away":       ColHomeAway,
	"venue":           ColHomeAway,
	"gf":              ColGoalsFor,
	"goals_for":       ColGoalsFor,
	"ga":              ColGoalsAgainst,
	"goals_against":   ColGoalsAgainst,
	"gd":              ColGoalDifference,
	"goal_difference": ColGoalDifference,
	"manager":         ColManager,
	"manager_type":    ColManagerType,
	"manager_gd":      ColManagerGD,
	"cum_gd":          ColCumulativeGD,
	"cumulative_gd":   ColCumulativeGD,
}

// RawRow is one data row keyed by canonical column name; every value is text.
type RawRow struct {
	// Line is the 1-based data row number (the header is not counted).
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column and whether the column exists.
func (r RawRow) Get(column string) (string, bool) {
	v, ok := r.Fields[column]
	return strings.TrimSpace(v), ok
}

// Table is a parsed input file.
type Table struct {
	Source  string
	Columns []string
	Rows    []RawRow
}

// Has reports whether the canonical column was present in the header.
func (t *Table) Has(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Parser reads CSV and XLSX match files into a Table.
type Parser struct {
	logger *slog.Logger
	sheet  string
}

// NewParser creates a parser. sheet selects the XLSX worksheet; empty means
// the first sheet.
func NewParser(logger *slog.Logger, sheet string) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: infrastructure.WithComponent(logger, "parser"),
		sheet:  sheet,
	}
}

// ParseFile dispatches on the file extension.
func (p *Parser) ParseFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return p.ParseXLSX(path)
	case ".csv", "":
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.NewNotFoundError("input file").WithContext("path", path)
			}
			return nil, apperrors.NewParsingError("failed to open input", err).WithContext("path", path)
		}
		defer f.Close()
		return p.ParseCSV(f, path)
	default:
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unsupported input format %q", filepath.Ext(path)), nil).WithContext("path", path)
	}
}

// ParseCSV reads a header row followed by data rows.
func (p *Parser) ParseCSV(r io.Reader, source string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read csv", err).WithContext("path", source)
	}

	table, err := buildTable(records, source)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Parsed csv",
		slog.String("source", source),
		slog.Int("rows", len(table.Rows)),
		slog.Any("columns", table.Columns))
	return table, nil
}

// ParseXLSX reads the configured (or first) worksheet of a workbook.
func (p *Parser) ParseXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("input file").WithContext("path", path)
		}
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheet := p.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	table, err := buildTable(rows, path)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Parsed workbook",
		slog.String("source", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(table.Rows)))
	return table, nil
}

// buildTable maps the header to canonical names and turns the remaining
// records into RawRows. Unknown and unnamed columns are ignored.
func buildTable(records [][]string, source string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("input has no header row", nil).WithContext("path", source)
	}

	index := make(map[int]string)
	table := &Table{Source: source}
	for i, header := range records[0] {
		name, ok := canonicalColumn(header)
		if !ok || table.Has(name) {
			continue
		}
		index[i] = name
		table.Columns = append(table.Columns, name)
	}

	if err := checkRequiredColumns(table); err != nil {
		return nil, apperrors.NewParsingError("invalid header", err).WithContext("path", source)
	}

	for n, record := range records[1:] {
		if blank(record) {
			continue
		}
		row := RawRow{Line: n + 1, Fields: make(map[string]string, len(index))}
		for i, name := range index {
			if i < len(record) {
				row.Fields[name] = record[i]
			} else {
				row.Fields[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// checkRequiredColumns needs a date and either gd or both goal columns.
func checkRequiredColumns(t *Table) error {
	if !t.Has(ColDate) {
		return fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, ColDate)
	}
	if t.Has(ColGoalDifference) || (t.Has(ColGoalsFor) && t.Has(ColGoalsAgainst)) {
		return nil
	}
	return fmt.Errorf("%w: %s or %s+%s", apperrors.ErrMissingColumn, ColGoalDifference, ColGoalsFor, ColGoalsAgainst)
}

func canonicalColumn(header string) (string, bool) {
	h := strings.TrimPrefix(header, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	if h == "" || strings.HasPrefix(h, "unnamed:") {
		return "", false
	}
	h = strings.ReplaceAll(h, " ", "_")
	name, ok := columnAliases[h]
	return name, ok
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
