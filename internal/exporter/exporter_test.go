package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gdchart/internal/config"
	"gdchart/internal/dataprocessing"
	"gdchart/internal/shared/testutil"
	"gdchart/pkg/contracts/domain"
)

func sampleDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := dataprocessing.NewProcessor(nil, nil, dataprocessing.ProcessorOptions{}).
		LoadFile(context.Background(), testutil.WriteSampleCSV(t))
	require.NoError(t, err)
	return ds
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(&config.Paths{OutputDir: dir})

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		want     []string
		bom      bool
	}{
		{
			name:     "headers and records",
			filePath: "basic.csv",
			options: WriteOptions{
				Headers: []string{"opponent", "gd"},
				Records: [][]string{{"Chelsea", "0"}, {"Spurs, London", "1"}},
			},
			want: []string{"opponent,gd", "Chelsea,0", `"Spurs, London",1`},
		},
		{
			name:     "bom prefix",
			filePath: "nested/bom.csv",
			options:  WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}}, BOMPrefix: true},
			want:     []string{"a", "1"},
			bom:      true,
		},
		{
			name:     "headers only",
			filePath: filepath.Join(dir, "abs.csv"),
			options:  WriteOptions{Headers: []string{"a", "b"}},
			want:     []string{"a,b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(tt.filePath, tt.options))

			content, err := os.ReadFile(writer.resolvePath(tt.filePath))
			require.NoError(t, err)
			assert.Equal(t, tt.bom, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))

			content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
			assert.Equal(t, tt.want, strings.Split(strings.TrimSpace(string(content)), "\n"))
		})
	}
}

func TestMatchExporter_RoundTrip(t *testing.T) {
	ds := sampleDataset(t)
	dir := t.TempDir()
	logger, handler := testutil.NewTestLogger(t)

	err := NewMatchExporter(logger, &config.Paths{OutputDir: dir}).
		ExportCSV(context.Background(), ds.Records, config.MatchesCSVFile)
	require.NoError(t, err)
	testutil.AssertLogAttr(t, handler, "component", "match_exporter")

	path := filepath.Join(dir, config.MatchesCSVFile)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, len(ds.Records)+1)
	assert.Equal(t, strings.Join(MatchColumns, ","), lines[0])
	assert.Equal(t, "Community Shield,knockout,2013-08-11,David Moyes,Permanent,Wigan Athletic,h,2,0,2,2,2", lines[1])

	reloaded, err := dataprocessing.NewProcessor(nil, nil, dataprocessing.ProcessorOptions{}).
		LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ds.Records, reloaded.Records)
	assert.Empty(t, reloaded.Issues)
}

func TestMatchRow_WithoutManager(t *testing.T) {
	row := MatchRow(domain.MatchRecord{
		Date:                     testutil.Date(t, "2013-08-01"),
		GoalDifference:           2,
		CumulativeGoalDifference: 2,
	})

	assert.Equal(t, []string{"", "", "2013-08-01", "", "", "", "", "", "", "2", "", "2"}, row)
}

func TestWorkbookExporter_Export(t *testing.T) {
	ds := sampleDataset(t)
	path := filepath.Join(t.TempDir(), "out", config.WorkbookFile)

	require.NoError(t, NewWorkbookExporter(nil).Export(context.Background(), ds, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetMatches, SheetManagers, "Permanent", "Interim", "Caretaker"}, f.GetSheetList())

	rows, err := f.GetRows(SheetMatches)
	require.NoError(t, err)
	require.Len(t, rows, len(ds.Records)+1)
	assert.Equal(t, MatchColumns, rows[0])
	assert.Equal(t, "Swansea City", rows[2][5])
	assert.Equal(t, "5", rows[2][11])

	managers, err := f.GetRows(SheetManagers)
	require.NoError(t, err)
	require.Len(t, managers, 3)
	assert.Equal(t, []string{"David Moyes", "Permanent", "3", "2", "1", "0", "6", "1", "5", "5", "2013-08-11", "2013-08-26", "0.67", "1.67"}, managers[1])

	caretaker, err := f.GetRows("Caretaker")
	require.NoError(t, err)
	assert.Len(t, caretaker, 3)

	interim, err := f.GetRows("Interim")
	require.NoError(t, err)
	assert.Len(t, interim, 1, "header only")

	// the workbook loads back as input
	reloaded, err := dataprocessing.NewProcessor(nil, nil, dataprocessing.ProcessorOptions{Sheet: SheetMatches}).
		LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 5, 9, 8}, cumulativeOf(reloaded.Records))
}

func TestWorkbookExporter_WithoutManagers(t *testing.T) {
	ds := &domain.Dataset{Records: []domain.MatchRecord{
		{Date: testutil.Date(t, "2013-08-01"), GoalDifference: 2, CumulativeGoalDifference: 2},
	}}
	path := filepath.Join(t.TempDir(), config.WorkbookFile)

	require.NoError(t, NewWorkbookExporter(nil).Export(context.Background(), ds, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetMatches}, f.GetSheetList())

	reloaded, err := dataprocessing.NewProcessor(nil, nil, dataprocessing.ProcessorOptions{Sheet: SheetMatches}).
		LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, cumulativeOf(reloaded.Records))
	assert.False(t, reloaded.Records[0].HasScore)
	assert.Empty(t, reloaded.Issues)
}

func TestJSONExporter_Export(t *testing.T) {
	ds := sampleDataset(t)
	tables := config.NewLookupTables()
	path := filepath.Join(t.TempDir(), config.DatasetJSONFile)

	doc := NewDatasetDocument(ds, tables, config.DefaultTimeframes())
	require.NoError(t, NewJSONExporter(nil).Export(context.Background(), doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded["records"], len(ds.Records))
	assert.Len(t, decoded["summaries"], 2)
	assert.Len(t, decoded["groups"], 3)
	assert.Len(t, decoded["timeframes"], len(config.DefaultTimeframes()))
	assert.Equal(t, config.LineColour, decoded["line_colour"])
	assert.Contains(t, decoded["logos"], "Premier League")
	assert.Contains(t, decoded["manager_colours"], "David Moyes")
	tenures := decoded["tenures"].([]any)
	require.Len(t, tenures, len(tables.Tenures()))
	assert.Equal(t, "David Moyes", tenures[0].(map[string]any)["name"])
	assert.Equal(t, "Permanent", tenures[0].(map[string]any)["manager_type"])
	assert.NotNil(t, decoded["issues"])

	first := decoded["records"].([]any)[0].(map[string]any)
	assert.Equal(t, "Wigan Athletic", first["opponent"])
	assert.Equal(t, float64(2), first["cum_gd"])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"gd": 2}))
	assert.Equal(t, "{\n  \"gd\": 2\n}\n", buf.String())
}

func TestExport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds := &domain.Dataset{}
	dir := t.TempDir()

	assert.ErrorIs(t, NewMatchExporter(nil, nil).ExportCSV(ctx, nil, filepath.Join(dir, "m.csv")), context.Canceled)
	assert.ErrorIs(t, NewWorkbookExporter(nil).Export(ctx, ds, filepath.Join(dir, "m.xlsx")), context.Canceled)
	assert.ErrorIs(t, NewJSONExporter(nil).Export(ctx, DatasetDocument{Dataset: ds}, filepath.Join(dir, "d.json")), context.Canceled)
}

func cumulativeOf(records []domain.MatchRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.CumulativeGoalDifference
	}
	return out
}
