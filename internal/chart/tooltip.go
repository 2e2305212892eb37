package chart

import (
	"fmt"
	"strings"

	"gdchart/internal/config"
	"gdchart/pkg/contracts/domain"
)

// TooltipDateLayout formats the match date in tooltips.
const TooltipDateLayout = "2 Jan 2006"

// Tooltip is the content shown for one hover band.
type Tooltip struct {
	Opponent string
	Venue    string
	// UnitedFirst is false only for away matches; the score is always
	// written in fixture order.
	UnitedFirst bool
	// ShowScore is false for records that only carry a goal difference.
	ShowScore   bool
	HomeGoals   int
	AwayGoals   int
	Competition string
	Logo        string
	Date        string
	Cumulative  string

	ShowManager bool
	Manager     string
	ManagerType string
	ManagerGD   string
}

// NewTooltip builds the tooltip for rec. Manager variants add the manager
// line when the record has one.
func NewTooltip(rec domain.MatchRecord, variant string) Tooltip {
	tip := Tooltip{
		Opponent:    rec.Opponent,
		Venue:       rec.HomeAway.Label(),
		UnitedFirst: rec.HomeAway != domain.Away,
		Competition: rec.Competition,
		Logo:        rec.Logo,
		Date:        rec.Date.Format(TooltipDateLayout),
		Cumulative:  domain.FormatSigned(rec.CumulativeGoalDifference),
	}
	if rec.HasScore {
		tip.ShowScore = true
		tip.HomeGoals, tip.AwayGoals = rec.HomeGoals(), rec.AwayGoals()
	}

	if variant != config.VariantSimple && rec.HasManager() {
		tip.ShowManager = true
		tip.Manager = rec.Manager
		tip.ManagerType = string(rec.ManagerType)
		tip.ManagerGD = domain.FormatSigned(rec.ManagerCumulativeGoalDifference)
	}
	return tip
}

// Text renders the tooltip as a single plain line for SVG <title> elements.
func (t Tooltip) Text() string {
	var b strings.Builder
	b.WriteString(t.Opponent)
	if t.Venue != "" {
		fmt.Fprintf(&b, " (%s)", t.Venue)
	}
	if t.ShowScore {
		fmt.Fprintf(&b, " %d-%d", t.HomeGoals, t.AwayGoals)
	}
	if t.Competition != "" {
		fmt.Fprintf(&b, ", %s", t.Competition)
	}
	fmt.Fprintf(&b, ", %s, cumulative GD %s", t.Date, t.Cumulative)
	if t.ShowManager {
		fmt.Fprintf(&b, "; %s (%s), manager GD %s", t.Manager, t.ManagerType, t.ManagerGD)
	}
	return strings.TrimSpace(b.String())
}
