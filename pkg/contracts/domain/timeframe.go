package domain

import "time"

// Timeframe is a shaded date range drawn behind the chart line,
// e.g. an off-season gap or the 2020 shutdown.
type Timeframe struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Label  string    `json:"label,omitempty"`
	Colour string    `json:"colour"`
}

// Contains reports whether t falls inside the timeframe, bounds included.
func (tf Timeframe) Contains(t time.Time) bool {
	return !t.Before(tf.Start) && !t.After(tf.End)
}

// Overlaps reports whether the timeframe intersects [from, to].
func (tf Timeframe) Overlaps(from, to time.Time) bool {
	return !tf.End.Before(from) && !tf.Start.After(to)
}
