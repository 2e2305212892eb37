package domain

import "time"

// ScopeStats counts source rows removed before normalization.
type ScopeStats struct {
	BeforeStart    int `json:"before_start"`
	NonCompetitive int `json:"non_competitive"`
}

// Total returns the number of rows removed by the scope filter.
func (s ScopeStats) Total() int {
	return s.BeforeStart + s.NonCompetitive
}

// Dataset is the prepared data model handed to renderers and exporters.
// It is built once per load and treated as read-only afterwards.
type Dataset struct {
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loaded_at"`
	ScopeStart time.Time `json:"scope_start,omitempty"`
	Mode       string    `json:"cumulative_mode"`

	Records   []MatchRecord      `json:"records"`
	Groups    []ManagerTypeGroup `json:"groups"`
	Summaries []ManagerSummary   `json:"summaries"`
	Issues    []LoadIssue        `json:"issues"`

	// Ungrouped holds records whose manager type is not recognized.
	Ungrouped []MatchRecord `json:"ungrouped,omitempty"`
	Rejected  int           `json:"rejected"`
	Scope     ScopeStats    `json:"scope"`
}

// HasManagers reports whether any record carries manager data.
func (d *Dataset) HasManagers() bool {
	for _, r := range d.Records {
		if r.HasManager() {
			return true
		}
	}
	return false
}

// Extent returns the first and last record dates.
func (d *Dataset) Extent() (time.Time, time.Time) {
	if len(d.Records) == 0 {
		return time.Time{}, time.Time{}
	}
	return d.Records[0].Date, d.Records[len(d.Records)-1].Date
}

// CumulativeRange returns the minimum and maximum cumulative goal difference.
func (d *Dataset) CumulativeRange() (int, int) {
	if len(d.Records) == 0 {
		return 0, 0
	}
	lo, hi := d.Records[0].CumulativeGoalDifference, d.Records[0].CumulativeGoalDifference
	for _, r := range d.Records[1:] {
		if r.CumulativeGoalDifference < lo {
			lo = r.CumulativeGoalDifference
		}
		if r.CumulativeGoalDifference > hi {
			hi = r.CumulativeGoalDifference
		}
	}
	return lo, hi
}
