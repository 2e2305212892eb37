package domain

import "time"

// ManagerGroup holds one manager's records within a tenure type, in input order.
type ManagerGroup struct {
	Manager string        `json:"manager"`
	Type    ManagerType   `json:"manager_type"`
	Records []MatchRecord `json:"records"`
}

// ManagerTypeGroup is one of the three tenure-type buckets.
type ManagerTypeGroup struct {
	Type     ManagerType    `json:"manager_type"`
	Managers []ManagerGroup `json:"managers"`
}

// Len returns the number of records across all managers in the bucket.
func (g ManagerTypeGroup) Len() int {
	n := 0
	for _, m := range g.Managers {
		n += len(m.Records)
	}
	return n
}

// ManagerSummary aggregates one continuous managerial tenure.
type ManagerSummary struct {
	Manager        string      `json:"manager"`
	Type           ManagerType `json:"manager_type"`
	Matches        int         `json:"matches"`
	Wins           int         `json:"wins"`
	Draws          int         `json:"draws"`
	Losses         int         `json:"losses"`
	GoalsFor       int         `json:"gf"`
	GoalsAgainst   int         `json:"ga"`
	GoalDifference int         `json:"gd"`
	// ManagerGoalDifference is the manager's running total after the last
	// match of the tenure; it spans earlier tenures of the same manager.
	ManagerGoalDifference int       `json:"manager_gd"`
	FirstMatch            time.Time `json:"first_match"`
	LastMatch             time.Time `json:"last_match"`
}

// WinRate returns wins over matches, 0 for an empty tenure.
func (s ManagerSummary) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches)
}

// GoalDifferencePerMatch returns the average goal difference per match.
func (s ManagerSummary) GoalDifferencePerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.GoalDifference) / float64(s.Matches)
}
