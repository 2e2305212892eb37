package chart

import (
	"math"
	"time"
)

// TimeScale maps dates in [d0, d1] linearly onto [r0, r1].
type TimeScale struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTimeScale creates a time scale.
func NewTimeScale(d0, d1 time.Time, r0, r1 float64) TimeScale {
	return TimeScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the date extent.
func (s TimeScale) Domain() (time.Time, time.Time) {
	return s.d0, s.d1
}

// Scale maps t to a range coordinate. A single-day domain maps to the middle
// of the range.
func (s TimeScale) Scale(t time.Time) float64 {
	span := s.d1.Sub(s.d0)
	if span <= 0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + float64(t.Sub(s.d0))/float64(span)*(s.r1-s.r0)
}

// Invert maps a range coordinate back to a date.
func (s TimeScale) Invert(x float64) time.Time {
	if s.r1 == s.r0 {
		return s.d0
	}
	frac := (x - s.r0) / (s.r1 - s.r0)
	return s.d0.Add(time.Duration(frac * float64(s.d1.Sub(s.d0))))
}

// LinearScale maps numbers in [d0, d1] onto [r0, r1].
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale creates a linear scale. An empty domain is widened by one
// on each side.
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	if d0 == d1 {
		d0, d1 = d0-1, d1+1
	}
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the numeric extent.
func (s LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Scale maps v to a range coordinate.
func (s LinearScale) Scale(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Nice extends the domain outward to multiples of the tick step for count
// ticks, so the first and last ticks sit on the axis ends.
func (s LinearScale) Nice(count int) LinearScale {
	step := integerStep(s.d0, s.d1, count)
	s.d0 = math.Floor(s.d0/step) * step
	s.d1 = math.Ceil(s.d1/step) * step
	return s
}

// Ticks returns integer tick values inside the domain, about count of them.
func (s LinearScale) Ticks(count int) []float64 {
	step := integerStep(s.d0, s.d1, count)
	var ticks []float64
	for v := math.Ceil(s.d0/step) * step; v <= s.d1+1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// integerStep picks a 1, 2 or 5 times power of ten step giving roughly count
// intervals over [start, stop], never below 1.
func integerStep(start, stop float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	raw := math.Abs(stop-start) / float64(count)
	if raw <= 1 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(raw)))
	switch e := raw / step; {
	case e >= math.Sqrt(50):
		step *= 10
	case e >= math.Sqrt(10):
		step *= 5
	case e >= math.Sqrt(2):
		step *= 2
	}
	return step
}
