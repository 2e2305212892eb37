package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gdchart/internal/config"
	"gdchart/internal/dataprocessing"
	apperrors "gdchart/internal/errors"
	"gdchart/internal/infrastructure"
	"gdchart/pkg/contracts/domain"
)

const (
	xTickMonths = 6
	yTickCount  = 10
	tipWidth    = 220
	tipHeight   = 130
	legendStep  = 16
)

// dashes distinguishes tenure types in the manager_type variant.
var dashes = map[domain.ManagerType]string{
	domain.ManagerPermanent: "",
	domain.ManagerInterim:   "6,3",
	domain.ManagerCaretaker: "2,2",
}

// Options selects what to draw.
type Options struct {
	Variant    string
	Layout     string
	Title      string
	Timeframes []domain.Timeframe
}

// Shade is a timeframe clipped to the plot.
type Shade struct {
	X, Width float64
	Colour   string
	Label    string
}

// Segment is one stroked part of the line.
type Segment struct {
	D      string
	Colour string
	Dash   string
	Label  string
	Points int
}

// Band is a hover band with its marker and tooltip position.
type Band struct {
	X, Width         float64
	MarkerX, MarkerY float64
	TipX, TipY       float64
	Colour           string
	Tooltip          Tooltip
}

// LegendEntry is one line of the legend.
type LegendEntry struct {
	Label  string
	Colour string
	Dash   string
	Y      float64
}

// Chart is the fully computed view model handed to the page template.
type Chart struct {
	Title      string
	Variant    string
	Layout     Layout
	PlotWidth  int
	PlotHeight int
	TipWidth   int
	TipHeight  int

	XTicks     []Tick
	YTicks     []Tick
	ZeroY      float64
	Timeframes []Shade
	Segments   []Segment
	Bands      []Band
	Legend     []LegendEntry
}

// Renderer turns a Dataset into a chart page.
type Renderer struct {
	logger *slog.Logger
	tables *config.LookupTables
}

// NewRenderer creates a renderer using tables for manager colours.
func NewRenderer(logger *slog.Logger, tables *config.LookupTables) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if tables == nil {
		tables = config.NewLookupTables()
	}
	return &Renderer{
		logger: infrastructure.WithComponent(logger, "chart_renderer"),
		tables: tables,
	}
}

// Build computes scales, ticks, line segments and hover bands.
func (r *Renderer) Build(ds *domain.Dataset, opts Options) (*Chart, error) {
	if ds == nil || len(ds.Records) == 0 {
		return nil, apperrors.NewValidationError("nothing to render", apperrors.ErrNoRecords)
	}

	variant := opts.Variant
	if variant == "" {
		variant = config.VariantSimple
	}
	switch variant {
	case config.VariantSimple:
	case config.VariantManager, config.VariantManagerType:
		if !ds.HasManagers() {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("chart variant %q needs manager data", variant), nil)
		}
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown chart variant %q", variant), nil)
	}

	layout, err := LayoutFor(opts.Layout)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = config.DefaultChartTitle
	}

	width, height := layout.PlotWidth(), layout.PlotHeight()
	d0, d1 := ds.Extent()
	x := NewTimeScale(d0, d1, 0, float64(width))
	lo, hi := ds.CumulativeRange()
	y := NewLinearScale(float64(min(lo, 0)), float64(max(hi, 0)), float64(height), 0).Nice(yTickCount)

	c := &Chart{
		Title:      title,
		Variant:    variant,
		Layout:     layout,
		PlotWidth:  width,
		PlotHeight: height,
		TipWidth:   tipWidth,
		TipHeight:  tipHeight,
		ZeroY:      y.Scale(0),
	}

	for _, t := range MonthTicks(d0, d1, xTickMonths) {
		c.XTicks = append(c.XTicks, Tick{Pos: x.Scale(t), Label: t.Format(TickLabelLayout)})
	}
	for _, v := range y.Ticks(yTickCount) {
		c.YTicks = append(c.YTicks, Tick{Pos: y.Scale(v), Label: strconv.Itoa(int(v))})
	}

	c.Timeframes = shades(opts.Timeframes, x)
	c.Segments = r.segments(ds, variant, x, y)
	c.Legend = r.legend(ds, variant)

	bands, err := HoverBands(dataprocessing.NewLocator(ds.Records), x, width)
	if err != nil {
		return nil, err
	}
	c.Bands = make([]Band, len(bands))
	for i, b := range bands {
		mx := x.Scale(b.Record.Date)
		my := y.Scale(float64(b.Record.CumulativeGoalDifference))
		c.Bands[i] = Band{
			X:       b.X0,
			Width:   b.X1 - b.X0,
			MarkerX: mx,
			MarkerY: my,
			TipX:    tipX(mx, width),
			TipY:    clamp(my-tipHeight/2, 0, float64(height-tipHeight)),
			Colour:  r.colour(b.Record, variant),
			Tooltip: NewTooltip(b.Record, variant),
		}
	}

	return c, nil
}

// Render writes the chart page for ds to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, ds *domain.Dataset, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	c, err := r.Build(ds, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, c); err != nil {
		return apperrors.NewRenderError("failed to execute chart template", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return apperrors.NewStorageError("failed to write chart", err)
	}

	r.logger.InfoContext(ctx, "Rendered chart",
		slog.String("variant", c.Variant),
		slog.String("layout", c.Layout.Name),
		slog.Int("segments", len(c.Segments)),
		slog.Int("bands", len(c.Bands)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// RenderFile renders to path, creating its directory.
func (r *Renderer) RenderFile(ctx context.Context, path string, ds *domain.Dataset, opts Options) error {
	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, ds, opts); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return apperrors.NewStorageError("failed to write chart", err).WithContext("path", path)
	}
	return nil
}

// segments draws one path for the simple variant and one per manager run
// otherwise. Each run starts at the previous run's last point so the line
// stays connected.
func (r *Renderer) segments(ds *domain.Dataset, variant string, x TimeScale, y LinearScale) []Segment {
	if variant == config.VariantSimple {
		return []Segment{{
			D:      pathData(ds.Records, x, y),
			Colour: config.LineColour,
			Label:  "Cumulative goal difference",
			Points: len(ds.Records),
		}}
	}

	runs := dataprocessing.ManagerRuns(ds.Records)
	segments := make([]Segment, 0, len(runs))
	var prev *domain.MatchRecord
	for _, run := range runs {
		points := run
		if prev != nil {
			points = append([]domain.MatchRecord{*prev}, run...)
		}
		seg := Segment{
			D:      pathData(points, x, y),
			Colour: r.colour(run[0], variant),
			Label:  runLabel(run[0]),
			Points: len(points),
		}
		if variant == config.VariantManagerType {
			seg.Dash = dashes[run[0].ManagerType]
		}
		segments = append(segments, seg)
		prev = &run[len(run)-1]
	}
	return segments
}

// legend lists managers in order of first appearance; the manager_type
// variant lists them per tenure type.
func (r *Renderer) legend(ds *domain.Dataset, variant string) []LegendEntry {
	var entries []LegendEntry
	switch variant {
	case config.VariantManager:
		seen := make(map[string]bool)
		for _, rec := range ds.Records {
			if !rec.HasManager() || seen[rec.Manager] {
				continue
			}
			seen[rec.Manager] = true
			entries = append(entries, LegendEntry{Label: rec.Manager, Colour: r.tables.ManagerColour(rec.Manager)})
		}
	case config.VariantManagerType:
		for _, g := range ds.Groups {
			for _, m := range g.Managers {
				entries = append(entries, LegendEntry{
					Label:  fmt.Sprintf("%s (%s)", m.Manager, g.Type),
					Colour: r.tables.ManagerColour(m.Manager),
					Dash:   dashes[g.Type],
				})
			}
		}
	}
	for i := range entries {
		entries[i].Y = float64(i * legendStep)
	}
	return entries
}

func (r *Renderer) colour(rec domain.MatchRecord, variant string) string {
	if variant == config.VariantSimple {
		return config.LineColour
	}
	return r.tables.ManagerColour(rec.Manager)
}

func runLabel(rec domain.MatchRecord) string {
	if !rec.HasManager() {
		return "No manager data"
	}
	return fmt.Sprintf("%s (%s)", rec.Manager, rec.ManagerType)
}

func pathData(records []domain.MatchRecord, x TimeScale, y LinearScale) string {
	var b strings.Builder
	for i, rec := range records {
		cmd := 'L'
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(&b, "%c%.1f,%.1f", cmd, x.Scale(rec.Date), y.Scale(float64(rec.CumulativeGoalDifference)))
	}
	return b.String()
}

// shades clips timeframes to the x domain and drops those outside it.
func shades(timeframes []domain.Timeframe, x TimeScale) []Shade {
	d0, d1 := x.Domain()
	var out []Shade
	for _, tf := range timeframes {
		if !tf.Overlaps(d0, d1) {
			continue
		}
		start, end := tf.Start, tf.End
		if start.Before(d0) {
			start = d0
		}
		if end.After(d1) {
			end = d1
		}
		x0 := x.Scale(start)
		out = append(out, Shade{X: x0, Width: x.Scale(end) - x0, Colour: tf.Colour, Label: tf.Label})
	}
	return out
}

// tipX puts the tooltip right of the marker, or left of it near the edge.
func tipX(markerX float64, width int) float64 {
	if markerX+10+tipWidth > float64(width) {
		return markerX - 10 - tipWidth
	}
	return markerX + 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
