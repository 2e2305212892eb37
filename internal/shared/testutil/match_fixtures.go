package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// MatchHeader is the column order of a cleaned match file.
var MatchHeader = []string{
	"competition", "stage", "date", "manager", "manager_type",
	"opponent", "h_a", "gf", "ga", "gd", "manager_gd", "cum_gd",
}

// SampleMatchRows is a small, consistent cleaned dataset spanning two
// managers, with correct manager_gd and cum_gd columns.
var SampleMatchRows = [][]string{
	{"Community Shield", "knockout", "2013-08-11", "David Moyes", "Permanent", "Wigan Athletic", "h", "2", "0", "2", "2", "2"},
	{"Premier League", "league", "2013-08-17", "David Moyes", "Permanent", "Swansea City", "a", "4", "1", "3", "5", "5"},
	{"Premier League", "league", "2013-08-26", "David Moyes", "Permanent", "Chelsea", "h", "0", "0", "0", "5", "5"},
	{"Premier League", "league", "2014-04-26", "Ryan Giggs", "Caretaker", "Norwich City", "h", "4", "0", "4", "4", "9"},
	{"Premier League", "league", "2014-05-03", "Ryan Giggs", "Caretaker", "Sunderland", "h", "0", "1", "-1", "3", "8"},
}

// WriteCSV writes header and rows to name inside a fresh temp dir and
// returns the file path.
func WriteCSV(t *testing.T, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write fixture rows: %v", err)
	}
	return path
}

// WriteSampleCSV writes SampleMatchRows as a cleaned match file.
func WriteSampleCSV(t *testing.T) string {
	t.Helper()
	return WriteCSV(t, "united_competitive_results_post_ferguson.csv", MatchHeader, SampleMatchRows)
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}
