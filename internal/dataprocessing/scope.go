package dataprocessing

import (
	"strings"
	"time"

	"gdchart/internal/config"
	"gdchart/pkg/contracts/domain"
)

// ScopeFilter drops rows outside the charted period and non-competitive
// fixtures, so the running sums start at the scope start.
type ScopeFilter struct {
	// Start is inclusive; the zero time keeps every date.
	Start time.Time
}

// Apply returns the rows in scope. Rows whose date does not parse are kept
// so the normalizer can report them.
func (f ScopeFilter) Apply(rows []RawRow) ([]RawRow, domain.ScopeStats) {
	var stats domain.ScopeStats
	kept := make([]RawRow, 0, len(rows))

	for _, row := range rows {
		competition, _ := row.Get(ColCompetition)
		if nonCompetitive(competition) {
			stats.NonCompetitive++
			continue
		}

		if !f.Start.IsZero() {
			raw, _ := row.Get(ColDate)
			if d, err := time.Parse(domain.DateLayout, raw); err == nil && d.Before(f.Start) {
				stats.BeforeStart++
				continue
			}
		}

		kept = append(kept, row)
	}

	return kept, stats
}

func nonCompetitive(competition string) bool {
	return competition == config.FriendliesCompetition ||
		strings.Contains(competition, config.PreSeasonCompetitionTag)
}
