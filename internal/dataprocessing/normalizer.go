package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// CumulativeMode selects where the running goal difference comes from.
type CumulativeMode string

const (
	// ModeDerive computes the running sums from per-match goal difference;
	// precomputed columns are only cross-checked.
	ModeDerive CumulativeMode = config.CumulativeDerive
	// ModeTrust stores the precomputed columns as-is when present.
	ModeTrust CumulativeMode = config.CumulativeTrust
)

// RowPolicy decides what a row that fails type coercion does to the load.
type RowPolicy string

const (
	PolicyFail RowPolicy = config.PolicyFail
	PolicySkip RowPolicy = config.PolicySkip
)

// NormalizerOptions configures a Normalizer.
type NormalizerOptions struct {
	Mode   CumulativeMode
	Policy RowPolicy
	// InferManagers fills manager fields from the tenure table when the
	// input has no manager column.
	InferManagers bool
}

// NormalizeResult is the output of one normalization pass.
type NormalizeResult struct {
	Records  []domain.MatchRecord
	Issues   []domain.LoadIssue
	Rejected int
}

// Normalizer turns raw text rows into ordered match records with running
// goal difference totals.
type Normalizer struct {
	logger *slog.Logger
	tables *config.LookupTables
	opts   NormalizerOptions
}

// NewNormalizer creates a normalizer. Zero options mean derive mode and
// the fail policy.
func NewNormalizer(logger *slog.Logger, tables *config.LookupTables, opts NormalizerOptions) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if tables == nil {
		tables = config.NewLookupTables()
	}
	if opts.Mode == "" {
		opts.Mode = ModeDerive
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFail
	}
	return &Normalizer{
		logger: infrastructure.WithComponent(logger, "normalizer"),
		tables: tables,
		opts:   opts,
	}
}

// parsedRow holds the coerced fields of one row before aggregation.
type parsedRow struct {
	date        time.Time
	opponent    string
	competition string
	stage       string
	homeAway    domain.HomeAway

	goalsFor, goalsAgainst int
	hasGoals               bool
	sourceGD               int
	hasSourceGD            bool

	manager     string
	managerType string

	managerGD, cumGD       int
	hasManagerGD, hasCumGD bool
}

// cumulativeTracker reports a precomputed column only where its offset from
// the derived sum changes, so one bad row does not flag every later row.
type cumulativeTracker struct {
	offset int
}

func (c *cumulativeTracker) changed(offset int) bool {
	if offset == c.offset {
		return false
	}
	c.offset = offset
	return true
}

// Normalize coerces every row of table, in input order. Rows must be in
// ascending date order; the first out-of-order row fails the load.
func (n *Normalizer) Normalize(ctx context.Context, table *Table) (*NormalizeResult, error) {
	result := &NormalizeResult{Records: make([]domain.MatchRecord, 0, len(table.Rows))}
	hasManagerColumn := table.Has(ColManager)
	// A manager column left entirely blank means the file carries no
	// manager data; blank cells are only reported when others are filled.
	reportMissingManager := hasManagerColumn && anyFilled(table.Rows, ColManager)

	var (
		cumulative    int
		cumTracker    cumulativeTracker
		managerTotals = make(map[string]int)
		managerChecks = make(map[string]*cumulativeTracker)
		prevDate      time.Time
		prevLine      int
	)

	report := func(issue domain.LoadIssue) {
		result.Issues = append(result.Issues, issue)
		n.logger.WarnContext(ctx, "Load issue",
			slog.String("kind", string(issue.Kind)),
			slog.Int("row", issue.Row),
			slog.String("column", issue.Column),
			slog.String("value", issue.Value),
			slog.String("message", issue.Message))
	}

	for _, row := range table.Rows {
		p, err := n.parseRow(row, table)
		if err != nil {
			if n.opts.Policy != PolicySkip {
				return nil, apperrors.NewParsingError("invalid match row", err).WithContext("source", table.Source)
			}
			issue := domain.LoadIssue{Row: row.Line, Kind: domain.IssueRowSkipped, Message: err.Error()}
			var rowErr *apperrors.RowError
			if apperrors.As(err, &rowErr) {
				issue.Column = rowErr.Column
				issue.Value = rowErr.Value
				issue.Message = rowErr.Err.Error()
			}
			report(issue)
			result.Rejected++
			continue
		}

		if !prevDate.IsZero() && p.date.Before(prevDate) {
			return nil, apperrors.NewValidationError("input must be sorted by date", apperrors.ErrUnsortedInput).
				WithContext("row", row.Line).
				WithContext("date", p.date.Format(domain.DateLayout)).
				WithContext("previous_row", prevLine).
				WithContext("previous_date", prevDate.Format(domain.DateLayout))
		}
		prevDate, prevLine = p.date, row.Line

		rec := domain.MatchRecord{
			Date:     p.date,
			Opponent: p.opponent,
			HomeAway: p.homeAway,
			Row:      row.Line,
		}

		n.resolveCompetition(&rec, p, report)

		// Goal difference
		derivedGD := p.sourceGD
		if p.hasGoals {
			derivedGD = p.goalsFor - p.goalsAgainst
			rec.GoalsFor, rec.GoalsAgainst = p.goalsFor, p.goalsAgainst
			rec.HasScore = true
		}
		rec.GoalDifference = derivedGD
		if p.hasGoals && p.hasSourceGD && p.sourceGD != derivedGD {
			report(domain.LoadIssue{
				Row: row.Line, Column: ColGoalDifference, Value: strconv.Itoa(p.sourceGD),
				Kind:    domain.IssueGoalDifferenceMismatch,
				Message: fmt.Sprintf("gd %d disagrees with gf-ga %d", p.sourceGD, derivedGD),
			})
			if n.opts.Mode == ModeTrust {
				rec.GoalDifference = p.sourceGD
			}
		}

		// Cumulative goal difference, inclusive of this match
		cumulative += rec.GoalDifference
		rec.CumulativeGoalDifference = cumulative
		if p.hasCumGD {
			if cumTracker.changed(p.cumGD - cumulative) {
				report(domain.LoadIssue{
					Row: row.Line, Column: ColCumulativeGD, Value: strconv.Itoa(p.cumGD),
					Kind:    domain.IssueCumulativeMismatch,
					Message: fmt.Sprintf("cum_gd %d disagrees with running total %d", p.cumGD, cumulative),
				})
			}
			if n.opts.Mode == ModeTrust {
				rec.CumulativeGoalDifference = p.cumGD
			}
		}

		// Manager
		if hasManagerColumn {
			rec.Manager = p.manager
			rec.ManagerType = canonicalManagerType(p.managerType)
			if reportMissingManager && !rec.HasManager() {
				report(domain.LoadIssue{
					Row: row.Line, Column: ColManager, Value: p.managerType,
					Kind:    domain.IssueMissingManager,
					Message: "row has no manager; excluded from grouped views",
				})
			}
		} else if n.opts.InferManagers {
			if tenure, ok := n.tables.TenureAt(p.date); ok {
				rec.Manager = tenure.Name
				rec.ManagerType = tenure.Type
			}
		}

		if rec.HasManager() {
			if !rec.ManagerType.Recognized() {
				report(domain.LoadIssue{
					Row: row.Line, Column: ColManagerType, Value: string(rec.ManagerType),
					Kind:    domain.IssueUnrecognizedManagerType,
					Message: fmt.Sprintf("manager %s has unrecognized type; excluded from grouped views", rec.Manager),
				})
			}

			managerTotals[rec.Manager] += rec.GoalDifference
			rec.ManagerCumulativeGoalDifference = managerTotals[rec.Manager]
			if p.hasManagerGD {
				tracker, ok := managerChecks[rec.Manager]
				if !ok {
					tracker = &cumulativeTracker{}
					managerChecks[rec.Manager] = tracker
				}
				if tracker.changed(p.managerGD - rec.ManagerCumulativeGoalDifference) {
					report(domain.LoadIssue{
						Row: row.Line, Column: ColManagerGD, Value: strconv.Itoa(p.managerGD),
						Kind: domain.IssueManagerCumulativeMismatch,
						Message: fmt.Sprintf("manager_gd %d disagrees with running total %d for %s",
							p.managerGD, rec.ManagerCumulativeGoalDifference, rec.Manager),
					})
				}
				if n.opts.Mode == ModeTrust {
					rec.ManagerCumulativeGoalDifference = p.managerGD
				}
			}
		}

		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		return nil, apperrors.NewValidationError("no match records in scope", apperrors.ErrNoRecords).
			WithContext("source", table.Source).
			WithContext("rejected", result.Rejected)
	}

	n.logger.InfoContext(ctx, "Normalized match data",
		slog.String("source", table.Source),
		slog.String("mode", string(n.opts.Mode)),
		slog.Int("records", len(result.Records)),
		slog.Int("rejected", result.Rejected),
		slog.Int("issues", len(result.Issues)))

	return result, nil
}

// resolveCompetition canonicalizes the competition and attaches its logo.
func (n *Normalizer) resolveCompetition(rec *domain.MatchRecord, p parsedRow, report func(domain.LoadIssue)) {
	if p.competition == "" {
		rec.Stage = domain.Stage(p.stage)
		return
	}

	alias, _ := n.tables.Canonical(p.competition)
	rec.Competition = alias.Trophy
	rec.Stage = alias.Stage
	if p.stage != "" {
		rec.Stage = domain.Stage(strings.ToLower(p.stage))
	}

	logo, ok := n.tables.Logo(alias.Trophy)
	if !ok {
		report(domain.LoadIssue{
			Row: rec.Row, Column: ColCompetition, Value: p.competition,
			Kind:    domain.IssueUnknownCompetition,
			Message: "no logo for competition",
		})
		return
	}
	rec.Logo = logo
}

// parseRow coerces the text fields of one row.
func (n *Normalizer) parseRow(row RawRow, table *Table) (parsedRow, error) {
	var p parsedRow

	rawDate, _ := row.Get(ColDate)
	date, err := time.Parse(domain.DateLayout, rawDate)
	if err != nil {
		return p, apperrors.NewRowError(row.Line, ColDate, rawDate, apperrors.ErrInvalidDate)
	}
	p.date = date

	p.opponent, _ = row.Get(ColOpponent)
	p.competition, _ = row.Get(ColCompetition)
	p.stage, _ = row.Get(ColStage)
	p.manager, _ = row.Get(ColManager)
	p.managerType, _ = row.Get(ColManagerType)

	if raw, _ := row.Get(ColHomeAway); raw != "" {
		ha, err := domain.ParseHomeAway(raw)
		if err != nil {
			return p, apperrors.NewRowError(row.Line, ColHomeAway, raw, apperrors.ErrInvalidFlag)
		}
		p.homeAway = ha
	}

	// A row with both score cells blank falls back to gd.
	rawGF, _ := row.Get(ColGoalsFor)
	rawGA, _ := row.Get(ColGoalsAgainst)
	if table.Has(ColGoalsFor) && table.Has(ColGoalsAgainst) && (rawGF != "" || rawGA != "") {
		if p.goalsFor, err = requiredInt(row, ColGoalsFor); err != nil {
			return p, err
		}
		if p.goalsAgainst, err = requiredInt(row, ColGoalsAgainst); err != nil {
			return p, err
		}
		p.hasGoals = true
	}

	if p.sourceGD, p.hasSourceGD, err = optionalInt(row, ColGoalDifference); err != nil {
		return p, err
	}
	if !p.hasGoals && !p.hasSourceGD {
		raw, _ := row.Get(ColGoalDifference)
		return p, apperrors.NewRowError(row.Line, ColGoalDifference, raw, apperrors.ErrInvalidNumber)
	}

	if p.managerGD, p.hasManagerGD, err = optionalInt(row, ColManagerGD); err != nil {
		return p, err
	}
	if p.cumGD, p.hasCumGD, err = optionalInt(row, ColCumulativeGD); err != nil {
		return p, err
	}

	return p, nil
}

func anyFilled(rows []RawRow, column string) bool {
	for _, row := range rows {
		if v, _ := row.Get(column); v != "" {
			return true
		}
	}
	return false
}

func requiredInt(row RawRow, column string) (int, error) {
	raw, _ := row.Get(column)
	v, err := parseInt(raw)
	if err != nil {
		return 0, apperrors.NewRowError(row.Line, column, raw, apperrors.ErrInvalidNumber)
	}
	return v, nil
}

// optionalInt treats a missing column or empty cell as absent.
func optionalInt(row RawRow, column string) (int, bool, error) {
	raw, ok := row.Get(column)
	if !ok || raw == "" {
		return 0, false, nil
	}
	v, err := parseInt(raw)
	if err != nil {
		return 0, false, apperrors.NewRowError(row.Line, column, raw, apperrors.ErrInvalidNumber)
	}
	return v, true, nil
}

// parseInt accepts integers and integral float renderings such as "2.0".
// Floats outside the int range are rejected rather than wrapped.
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, apperrors.ErrInvalidNumber
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, apperrors.ErrInvalidNumber
	}
	return int(f), nil
}

// canonicalManagerType matches the three known labels case-insensitively and
// returns anything else unchanged.
func canonicalManagerType(raw string) domain.ManagerType {
	for _, t := range domain.ManagerTypes() {
		if strings.EqualFold(raw, string(t)) {
			return t
		}
	}
	return domain.ManagerType(raw)
}
