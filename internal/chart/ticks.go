package chart

import "time"

// TickLabelLayout formats x axis ticks.
const TickLabelLayout = "Jan 2006"

// Tick is a positioned axis label.
type Tick struct {
	Pos   float64
	Label string
}

// MonthTicks returns the first day of every month in [from, to] whose month
// index is a multiple of every (every=6 gives January and July).
func MonthTicks(from, to time.Time, every int) []time.Time {
	if every < 1 {
		every = 1
	}
	t := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(from) {
		t = t.AddDate(0, 1, 0)
	}
	for (int(t.Month())-1)%every != 0 {
		t = t.AddDate(0, 1, 0)
	}

	var ticks []time.Time
	for ; !t.After(to); t = t.AddDate(0, every, 0) {
		ticks = append(ticks, t)
	}
	return ticks
}
