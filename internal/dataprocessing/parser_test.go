package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "gdchart/internal/errors"
	"gdchart/internal/shared/testutil"
)

func TestParseCSV_HeaderHandling(t *testing.T) {
	input := "\ufeffUnnamed: 0,Date,Opponent,Competition,Venue,Goals_For,Goals Against,match_id\n" +
		"0,2013-08-11,Wigan Athletic,Community Shield,h,2,0,1234\n" +
		",,,,,,,\n" +
		"1,2013-08-17,Swansea City,Premier League,a,4,1,1235\n"

	table, err := NewParser(nil, "").ParseCSV(strings.NewReader(input), "in.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{ColDate, ColOpponent, ColCompetition, ColHomeAway, ColGoalsFor, ColGoalsAgainst}, table.Columns)
	assert.False(t, table.Has(ColGoalDifference))
	require.Len(t, table.Rows, 2, "blank rows are dropped")

	assert.Equal(t, 1, table.Rows[0].Line)
	assert.Equal(t, 3, table.Rows[1].Line, "line numbers keep counting blank rows")

	v, ok := table.Rows[1].Get(ColOpponent)
	assert.True(t, ok)
	assert.Equal(t, "Swansea City", v)
	_, ok = table.Rows[1].Get("match_id")
	assert.False(t, ok, "unknown columns are ignored")
}

func TestParseCSV_ShortRowsPadded(t *testing.T) {
	input := "date,gd,cum_gd\n2013-08-11,2\n"

	table, err := NewParser(nil, "").ParseCSV(strings.NewReader(input), "in.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	v, ok := table.Rows[0].Get(ColCumulativeGD)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no date", "opponent,gd\nChelsea,1\n"},
		{"no goals", "date,opponent\n2013-08-11,Chelsea\n"},
		{"only gf", "date,gf\n2013-08-11,1\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil, "").ParseCSV(strings.NewReader(tt.input), "in.csv")
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
		})
	}

	_, err := NewParser(nil, "").ParseCSV(strings.NewReader("opponent,gd\nChelsea,1\n"), "in.csv")
	assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
}

func TestParseFile_CSV(t *testing.T) {
	path := testutil.WriteSampleCSV(t)

	table, err := NewParser(nil, "").ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Rows, len(testutil.SampleMatchRows))
	assert.True(t, table.Has(ColManagerGD))
	assert.True(t, table.Has(ColStage))
}

func TestParseFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "opponent", "gf", "ga"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2013-08-11", "Wigan Athletic", 2, 0}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2013-08-17", "Swansea City", 4, 1}))

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := NewParser(nil, sheet).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	gf, _ := table.Rows[1].Get(ColGoalsFor)
	assert.Equal(t, "4", gf)

	// the default first sheet is empty
	_, err = NewParser(nil, "").ParseFile(path)
	assert.Error(t, err)
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewParser(nil, "").ParseFile(filepath.Join(dir, "missing.csv"))
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))

	_, err = NewParser(nil, "").ParseFile(filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "results.txt")
	require.NoError(t, os.WriteFile(txt, []byte("date,gd\n"), 0644))
	_, err = NewParser(nil, "").ParseFile(txt)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}
