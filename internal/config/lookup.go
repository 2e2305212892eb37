package config

import (
	"sort"
	"time"

	"gdchart/pkg/contracts/domain"
)

// CompetitionAlias maps a raw competition label to its trophy and stage.
type CompetitionAlias struct {
	Trophy string
	Stage  domain.Stage
}

// ManagerTenure is one appointment; a zero To means the tenure is ongoing.
type ManagerTenure struct {
	Name string             `json:"name"`
	Type domain.ManagerType `json:"manager_type"`
	From time.Time          `json:"from"`
	To   time.Time          `json:"to"`
}

// Covers reports whether date falls in [From, To).
func (t ManagerTenure) Covers(date time.Time) bool {
	if date.Before(t.From) {
		return false
	}
	return t.To.IsZero() || date.Before(t.To)
}

// LookupTables holds the fixed presentation and normalization tables.
// It is built once with NewLookupTables and never mutated; accessors
// hand out copies.
type LookupTables struct {
	logos    map[string]string
	aliases  map[string]CompetitionAlias
	colours  map[string]string
	tenures  []ManagerTenure
	fallback string
}

// NewLookupTables returns the built-in tables.
func NewLookupTables() *LookupTables {
	return &LookupTables{
		logos: map[string]string{
			"Premier League":   "images/Premier_League.png",
			"Champions League": "images/Champions_League.png",
			"Europa League":    "images/Europa_League.png",
			"FA Cup":           "images/FA_Cup.png",
			"League Cup":       "images/League_Cup.png",
			"Community Shield": "images/Community_Shield.png",
			"UEFA Super Cup":   "images/UEFA_Super_Cup.png",
		},
		aliases: map[string]CompetitionAlias{
			"Community Shield":               {"Community Shield", domain.StageKnockout},
			"Premier League":                 {"Premier League", domain.StageLeague},
			"Champions League":               {"Champions League", domain.StageLeague},
			"Champions League Qualification": {"Champions League", domain.StageQualification},
			"Champions League Final Stage":   {"Champions League", domain.StageKnockout},
			"League Cup":                     {"League Cup", domain.StageKnockout},
			"EFL Cup":                        {"League Cup", domain.StageKnockout},
			"FA Cup":                         {"FA Cup", domain.StageKnockout},
			"Europa League":                  {"Europa League", domain.StageLeague},
			"Europa League Final Stage":      {"Europa League", domain.StageKnockout},
			"UEFA Super Cup":                 {"UEFA Super Cup", domain.StageKnockout},
		},
		colours: map[string]string{
			"David Moyes":          "#1f77b4",
			"Ryan Giggs":           "#ff7f0e",
			"Louis van Gaal":       "#2ca02c",
			"José Mourinho":        "#9467bd",
			"Ole Gunnar Solskjaer": "#c3102b",
			"Michael Carrick":      "#8c564b",
			"Ralf Rangnick":        "#e377c2",
			"Erik ten Hag":         "#17becf",
			"Ruud van Nistelrooy":  "#bcbd22",
			"Ruben Amorim":         "#2f4f4f",
			"Darren Fletcher":      "#d62728",
		},
		tenures: []ManagerTenure{
			{"David Moyes", domain.ManagerPermanent, utcDate(2013, 7, 1), utcDate(2014, 4, 23)},
			{"Ryan Giggs", domain.ManagerCaretaker, utcDate(2014, 4, 23), utcDate(2014, 6, 30)},
			{"Louis van Gaal", domain.ManagerPermanent, utcDate(2014, 7, 14), utcDate(2016, 5, 24)},
			{"José Mourinho", domain.ManagerPermanent, utcDate(2016, 7, 1), utcDate(2018, 12, 19)},
			{"Ole Gunnar Solskjaer", domain.ManagerInterim, utcDate(2018, 12, 19), utcDate(2019, 3, 28)},
			{"Ole Gunnar Solskjaer", domain.ManagerPermanent, utcDate(2019, 3, 28), utcDate(2021, 11, 21)},
			{"Michael Carrick", domain.ManagerCaretaker, utcDate(2021, 11, 21), utcDate(2021, 12, 3)},
			{"Ralf Rangnick", domain.ManagerInterim, utcDate(2021, 12, 3), utcDate(2022, 5, 31)},
			{"Erik ten Hag", domain.ManagerPermanent, utcDate(2022, 7, 1), utcDate(2024, 10, 28)},
			{"Ruud van Nistelrooy", domain.ManagerCaretaker, utcDate(2024, 10, 28), utcDate(2024, 11, 11)},
			{"Ruben Amorim", domain.ManagerPermanent, utcDate(2024, 11, 11), utcDate(2026, 1, 5)},
			{"Darren Fletcher", domain.ManagerCaretaker, utcDate(2026, 1, 5), utcDate(2026, 1, 12)},
			{"Michael Carrick", domain.ManagerInterim, utcDate(2026, 1, 12), time.Time{}},
		},
		fallback: "#999999",
	}
}

// Logo returns the asset path for a canonical competition, or "" and false.
func (l *LookupTables) Logo(competition string) (string, bool) {
	logo, ok := l.logos[competition]
	return logo, ok
}

// Canonical maps a raw competition label to (trophy, stage). Unknown labels
// pass through unchanged with an empty stage.
func (l *LookupTables) Canonical(raw string) (CompetitionAlias, bool) {
	if alias, ok := l.aliases[raw]; ok {
		return alias, true
	}
	return CompetitionAlias{Trophy: raw}, false
}

// ManagerColour returns the line colour for a manager, falling back to grey.
func (l *LookupTables) ManagerColour(manager string) string {
	if c, ok := l.colours[manager]; ok {
		return c
	}
	return l.fallback
}

// TenureAt returns the tenure covering date.
func (l *LookupTables) TenureAt(date time.Time) (ManagerTenure, bool) {
	for _, t := range l.tenures {
		if t.Covers(date) {
			return t, true
		}
	}
	return ManagerTenure{}, false
}

// Logos returns a copy of the competition to logo table.
func (l *LookupTables) Logos() map[string]string {
	return copyMap(l.logos)
}

// ManagerColours returns a copy of the manager to colour table.
func (l *LookupTables) ManagerColours() map[string]string {
	return copyMap(l.colours)
}

// Tenures returns a copy of the tenure table in chronological order.
func (l *LookupTables) Tenures() []ManagerTenure {
	out := make([]ManagerTenure, len(l.tenures))
	copy(out, l.tenures)
	sort.SliceStable(out, func(i, j int) bool { return out[i].From.Before(out[j].From) })
	return out
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
