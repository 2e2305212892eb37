package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date layout for match data (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// HomeAway records whether a match was played at home or away.
type HomeAway string

const (
	Home HomeAway = "h"
	Away HomeAway = "a"
)

// ParseHomeAway accepts the source flag ("h"/"a") as well as the spelled-out forms.
func ParseHomeAway(s string) (HomeAway, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "home":
		return Home, nil
	case "a", "away":
		return Away, nil
	default:
		return "", fmt.Errorf("unknown home/away flag %q", s)
	}
}

// Label returns the single-letter uppercase label shown in tooltips,
// or "" when the flag is unknown.
func (h HomeAway) Label() string {
	switch h {
	case Home:
		return "H"
	case Away:
		return "A"
	}
	return ""
}

// ManagerType classifies a manager's appointment.
type ManagerType string

const (
	ManagerPermanent ManagerType = "Permanent"
	ManagerInterim   ManagerType = "Interim"
	ManagerCaretaker ManagerType = "Caretaker"
)

// ManagerTypes lists the recognized manager types in grouping order.
func ManagerTypes() []ManagerType {
	return []ManagerType{ManagerPermanent, ManagerInterim, ManagerCaretaker}
}

// Recognized reports whether t is one of the three known tenure types.
func (t ManagerType) Recognized() bool {
	switch t {
	case ManagerPermanent, ManagerInterim, ManagerCaretaker:
		return true
	}
	return false
}

// Stage is the phase of a competition a match belongs to.
type Stage string

const (
	StageLeague        Stage = "league"
	StageQualification Stage = "qualification"
	StageKnockout      Stage = "knockout"
)

// MatchRecord is one normalized row of match data.
type MatchRecord struct {
	Date        time.Time `json:"date"`
	Opponent    string    `json:"opponent"`
	Competition string    `json:"competition"`
	Stage       Stage     `json:"stage,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	HomeAway    HomeAway  `json:"h_a"`

	GoalsFor       int `json:"gf"`
	GoalsAgainst   int `json:"ga"`
	GoalDifference int `json:"gd"`
	// HasScore is false when the source only carried a goal difference.
	HasScore bool `json:"has_score"`

	// Manager fields are empty for data without manager columns.
	Manager     string      `json:"manager,omitempty"`
	ManagerType ManagerType `json:"manager_type,omitempty"`

	ManagerCumulativeGoalDifference int `json:"manager_gd"`
	CumulativeGoalDifference        int `json:"cum_gd"`

	// Row is the 1-based data row in the source file.
	Row int `json:"row"`
}

// HasManager reports whether the record carries manager information.
func (m MatchRecord) HasManager() bool {
	return m.Manager != ""
}

// Result returns "W", "D" or "L" from the club's perspective.
func (m MatchRecord) Result() string {
	switch {
	case m.GoalDifference > 0:
		return "W"
	case m.GoalDifference < 0:
		return "L"
	default:
		return "D"
	}
}

// HomeGoals and AwayGoals return the score in fixture order. A record with
// an unknown venue is written as a home fixture.
func (m MatchRecord) HomeGoals() int {
	if m.HomeAway != Away {
		return m.GoalsFor
	}
	return m.GoalsAgainst
}

func (m MatchRecord) AwayGoals() int {
	if m.HomeAway != Away {
		return m.GoalsAgainst
	}
	return m.GoalsFor
}

// FormatSigned renders a goal difference with an explicit plus sign for positive values.
func FormatSigned(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
