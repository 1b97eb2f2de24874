// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package chart renders dashboard aggregates with gonum/plot.
//
// Every builder returns a *plot.Plot; Encode writes it as SVG or PNG. Empty
// input never fails, it produces a placeholder plot instead:
//
//	r := chart.NewRenderer(cfg.Charts, cfg.Catalog.TopN)
//	p, err := r.Types(counts)
//	err = r.Encode(w, chart.KindTypes, chart.FormatSVG, p)
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

// EmptyMessage is drawn on charts with nothing to show.
const EmptyMessage = "No titles match the current selection"

// Kind names one of the five dashboard charts.
type Kind string

const (
	KindTypes     Kind = "types"
	KindCountries Kind = "countries"
	KindYears     Kind = "years"
	KindGenres    Kind = "genres"
	KindTrend     Kind = "trend"
)

// Kinds lists the charts in page order.
var Kinds = []Kind{KindTypes, KindCountries, KindYears, KindGenres, KindTrend}

// ParseKind validates a chart name from a URL.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("unknown chart %q", s)
	}
	return k, nil
}

// Format is an output encoding understood by plot.WriterTo.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates an output format from a URL.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

var (
	barColor  = color.RGBA{R: 102, G: 194, B: 165, A: 255}
	hbarColor = color.RGBA{R: 53, G: 95, B: 141, A: 255}
	lineColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// Renderer builds the dashboard charts at a fixed size.
type Renderer struct {
	width  vg.Length
	height vg.Length
	topN   int
}

// NewRenderer returns a renderer using the configured size. topN only
// affects the titles of the ranked charts.
func NewRenderer(cfg config.ChartConfig, topN int) *Renderer {
	return &Renderer{
		width:  vg.Points(cfg.Width),
		height: vg.Points(cfg.Height),
		topN:   topN,
	}
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// Placeholder returns a titled plot with hidden axes and EmptyMessage in the middle.
func (r *Renderer) Placeholder(title string) *plot.Plot {
	p := newPlot(title, "", "")
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{EmptyMessage},
	})
	if err == nil {
		labels.TextStyle[0].XAlign = draw.XCenter
		labels.TextStyle[0].YAlign = draw.YCenter
		p.Add(labels)
	}
	return p
}

// Bar draws one vertical bar per count, in the given order.
func (r *Renderer) Bar(title, xLabel, yLabel string, counts []catalog.Count) (*plot.Plot, error) {
	if len(counts) == 0 {
		return r.Placeholder(title), nil
	}
	p := newPlot(title, xLabel, yLabel)

	values, names := split(counts)
	bars, err := plotter.NewBarChart(values, barWidth(r.width, len(values)))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalX(names...)
	p.Y.Min = 0
	return p, nil
}

// HorizontalBar draws one horizontal bar per count with the first entry at the top.
func (r *Renderer) HorizontalBar(title, xLabel, yLabel string, counts []catalog.Count) (*plot.Plot, error) {
	if len(counts) == 0 {
		return r.Placeholder(title), nil
	}
	p := newPlot(title, xLabel, yLabel)

	// NominalY places the first name at the bottom.
	reversed := slices.Clone(counts)
	slices.Reverse(reversed)
	values, names := split(reversed)

	bars, err := plotter.NewBarChart(values, barWidth(r.height, len(values)))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = hbarColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalY(names...)
	p.X.Min = 0
	return p, nil
}

// Line draws counts per year as a line with point markers.
func (r *Renderer) Line(title, xLabel, yLabel string, years []catalog.YearCount) (*plot.Plot, error) {
	if len(years) == 0 {
		return r.Placeholder(title), nil
	}
	p := newPlot(title, xLabel, yLabel)

	points := make(plotter.XYs, len(years))
	for i, yc := range years {
		points[i].X = float64(yc.Year)
		points[i].Y = float64(yc.Count)
	}

	line, marks, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build line chart: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	marks.GlyphStyle.Color = lineColor
	marks.GlyphStyle.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, marks)
	p.X.Tick.Marker = yearTicks{}
	p.Y.Min = 0
	return p, nil
}

// MultiLine draws one line per pivot column, each with its own color and
// glyph, and a legend.
func (r *Renderer) MultiLine(title, xLabel, yLabel string, pivot catalog.Pivot) (*plot.Plot, error) {
	if len(pivot.Years) == 0 || len(pivot.Types) == 0 {
		return r.Placeholder(title), nil
	}
	p := newPlot(title, xLabel, yLabel)
	p.Legend.Top = true
	p.Legend.Left = true

	args := make([]interface{}, 0, 2*len(pivot.Types))
	for _, typ := range pivot.Types {
		series := pivot.Series(typ)
		points := make(plotter.XYs, len(pivot.Years))
		for i, year := range pivot.Years {
			points[i].X = float64(year)
			points[i].Y = float64(series[i])
		}
		args = append(args, typ, points)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return nil, fmt.Errorf("failed to build trend chart: %w", err)
	}

	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = yearTicks{}
	p.Y.Min = 0
	return p, nil
}

// Encode writes p to w in format f and records the render time.
func (r *Renderer) Encode(w io.Writer, kind Kind, f Format, p *plot.Plot) error {
	start := time.Now()
	wt, err := p.WriterTo(r.width, r.height, string(f))
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", f, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s chart: %w", kind, err)
	}
	metrics.RecordChartRender(string(kind), string(f), time.Since(start))
	return nil
}

func split(counts []catalog.Count) (plotter.Values, []string) {
	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Value)
		names[i] = c.Label
	}
	return values, names
}

// barWidth spreads n bars over roughly two thirds of span.
func barWidth(span vg.Length, n int) vg.Length {
	w := span * 0.6 / vg.Length(max(n, 1))
	return min(max(w, vg.Points(4)), vg.Points(40))
}

// yearTicks labels whole years only, thinning labels on long ranges.
type yearTicks struct{}

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	first, last := int(math.Ceil(lo)), int(math.Floor(hi))
	if last < first {
		return nil
	}
	step := max(1, (last-first)/8+1)
	var ticks []plot.Tick
	for y := first; y <= last; y++ {
		t := plot.Tick{Value: float64(y)}
		if (y-first)%step == 0 {
			t.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, t)
	}
	return ticks
}
