package dataprocessing

import (
	"context"
	"log/slog"

	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

// Summarizer aggregates match records per managerial tenure.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new tenure summarizer.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: infrastructure.WithComponent(logger, "summarizer")}
}

// Summarize returns one summary per consecutive manager run, in match order.
// A manager with two separate spells (e.g. caretaker then permanent) gets
// two summaries. Records without a manager are skipped.
func (s *Summarizer) Summarize(ctx context.Context, records []domain.MatchRecord) []domain.ManagerSummary {
	summaries := []domain.ManagerSummary{}

	for _, run := range ManagerRuns(records) {
		if !run[0].HasManager() {
			continue
		}
		summaries = append(summaries, summarizeRun(run))
	}

	s.logger.DebugContext(ctx, "Summarized manager tenures",
		slog.Int("records", len(records)),
		slog.Int("tenures", len(summaries)))

	return summaries
}

func summarizeRun(run []domain.MatchRecord) domain.ManagerSummary {
	first, last := run[0], run[len(run)-1]
	summary := domain.ManagerSummary{
		Manager:               first.Manager,
		Type:                  first.ManagerType,
		Matches:               len(run),
		FirstMatch:            first.Date,
		LastMatch:             last.Date,
		ManagerGoalDifference: last.ManagerCumulativeGoalDifference,
	}

	for _, rec := range run {
		summary.GoalsFor += rec.GoalsFor
		summary.GoalsAgainst += rec.GoalsAgainst
		summary.GoalDifference += rec.GoalDifference
		switch rec.Result() {
		case "W":
			summary.Wins++
		case "D":
			summary.Draws++
		default:
			summary.Losses++
		}
	}

	return summary
}
