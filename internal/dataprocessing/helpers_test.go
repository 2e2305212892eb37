package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gdchart/pkg/contracts/domain"
)

// tableOf builds a Table the same way the file parsers do.
func tableOf(t *testing.T, header []string, rows ...[]string) *Table {
	t.Helper()
	records := append([][]string{header}, rows...)
	table, err := buildTable(records, "test.csv")
	require.NoError(t, err)
	return table
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return d
}

func cumulative(records []domain.MatchRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.CumulativeGoalDifference
	}
	return out
}

func recordsOn(t *testing.T, dates ...string) []domain.MatchRecord {
	t.Helper()
	out := make([]domain.MatchRecord, len(dates))
	for i, d := range dates {
		out[i] = domain.MatchRecord{Date: day(t, d), Row: i + 1}
	}
	return out
}
