package domain

import "fmt"

// IssueKind names a non-fatal data condition found while loading.
type IssueKind string

const (
	IssueUnknownCompetition        IssueKind = "unknown_competition"
	IssueUnrecognizedManagerType   IssueKind = "unrecognized_manager_type"
	IssueMissingManager            IssueKind = "missing_manager"
	IssueGoalDifferenceMismatch    IssueKind = "gd_mismatch"
	IssueCumulativeMismatch        IssueKind = "cumulative_mismatch"
	IssueManagerCumulativeMismatch IssueKind = "manager_cumulative_mismatch"
	IssueRowSkipped                IssueKind = "row_skipped"
)

// LoadIssue is a reportable condition attached to a single source row.
// Issues never abort a load.
type LoadIssue struct {
	Row     int       `json:"row"`
	Column  string    `json:"column,omitempty"`
	Value   string    `json:"value,omitempty"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

func (i LoadIssue) String() string {
	if i.Column != "" {
		return fmt.Sprintf("row %d, column %s: %s (%q)", i.Row, i.Column, i.Message, i.Value)
	}
	return fmt.Sprintf("row %d: %s", i.Row, i.Message)
}
