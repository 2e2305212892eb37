package chart

import (
	"fmt"

	"gdchart/internal/config"
	apperrors "gdchart/internal/errors"
)

// Margin is the space between the SVG edge and the plot area.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Layout is a chart size preset.
type Layout struct {
	Name   string
	Width  int
	Height int
	Margin Margin
}

var layouts = map[string]Layout{
	config.LayoutStandard: {Name: config.LayoutStandard, Width: 1000, Height: 600, Margin: Margin{Top: 40, Right: 40, Bottom: 50, Left: 50}},
	config.LayoutWide:     {Name: config.LayoutWide, Width: 1400, Height: 700, Margin: Margin{Top: 40, Right: 40, Bottom: 50, Left: 50}},
}

// LayoutFor returns the named preset; empty means standard.
func LayoutFor(name string) (Layout, error) {
	if name == "" {
		name = config.LayoutStandard
	}
	l, ok := layouts[name]
	if !ok {
		return Layout{}, apperrors.NewValidationError(fmt.Sprintf("unknown chart layout %q", name), nil)
	}
	return l, nil
}

// PlotWidth is the width inside the margins.
func (l Layout) PlotWidth() int {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// PlotHeight is the height inside the margins.
func (l Layout) PlotHeight() int {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}
