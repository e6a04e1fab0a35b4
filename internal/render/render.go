// Package render draws chart specs as SVG or PNG figures.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

// ErrNothingToDraw is returned for error, no-data and empty specs.
var ErrNothingToDraw = errors.New("nothing to draw")

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" and "png", with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (use svg or png)", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Options sizes the canvas.
type Options struct {
	Width  int
	Height int
	// LabelLimit annotates scatter points with names when there are at
	// most this many points.
	LabelLimit int
}

// DefaultOptions returns a 1024x640 canvas.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 640, LabelLimit: 25}
}

// Render draws spec to w.
func Render(w io.Writer, spec view.ChartSpec, format Format, opt Options) error {
	if !spec.Drawable() {
		if spec.Message != "" {
			return fmt.Errorf("%w: %s", ErrNothingToDraw, spec.Message)
		}
		return ErrNothingToDraw
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		d := DefaultOptions()
		opt.Width, opt.Height = d.Width, d.Height
	}
	var rp chart.RendererProvider
	switch format {
	case SVG:
		rp = chart.SVG
	case PNG:
		rp = chart.PNG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	var err error
	switch spec.Kind {
	case view.KindBar:
		err = barChart(spec, opt).Render(rp, w)
	case view.KindPie:
		err = pieChart(spec, opt).Render(rp, w)
	case view.KindScatter:
		err = scatterChart(spec, opt).Render(rp, w)
	default:
		return fmt.Errorf("%w: kind %q", ErrNothingToDraw, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", spec.Kind, err)
	}
	return nil
}

func categoryValues(counts []rankings.CountryCount) []chart.Value {
	out := make([]chart.Value, len(counts))
	for i, c := range counts {
		out[i] = chart.Value{Label: c.Country, Value: float64(c.Count)}
	}
	return out
}

func barChart(spec view.ChartSpec, opt Options) chart.BarChart {
	const sidePadding = 120
	gap := 0.1
	if spec.Layout != nil && spec.Layout.BarGap > 0 && spec.Layout.BarGap < 1 {
		gap = spec.Layout.BarGap
	}
	slot := (opt.Width - sidePadding) / len(spec.Categories)
	if slot < 2 {
		slot = 2
	}
	barWidth := int(math.Round(float64(slot) * (1 - gap)))
	if barWidth < 1 {
		barWidth = 1
	}
	maxCount := 0
	for _, c := range spec.Categories {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	// fixed range so a single bar or equal bars still scale
	return chart.BarChart{
		Title:      spec.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(float64(maxCount) * 1.1)}},
		BarWidth:   barWidth,
		BarSpacing: slot - barWidth,
		Bars:       categoryValues(spec.Categories),
	}
}

func pieChart(spec view.ChartSpec, opt Options) chart.PieChart {
	return chart.PieChart{
		Title:  spec.Title,
		Width:  opt.Width,
		Height: opt.Height,
		Values: categoryValues(spec.Categories),
	}
}

type locationGroup struct {
	name  string
	xs    []float64
	ys    []float64
	sizes []float64
}

func scatterChart(spec view.ChartSpec, opt Options) chart.Chart {
	var groups []*locationGroup
	byName := map[string]*locationGroup{}
	minR, maxR := math.Inf(1), math.Inf(-1)
	for _, p := range spec.Points {
		g, ok := byName[p.Location]
		if !ok {
			g = &locationGroup{name: p.Location}
			byName[p.Location] = g
			groups = append(groups, g)
		}
		g.xs = append(g.xs, float64(p.Rank))
		g.ys = append(g.ys, p.OverallScore)
		g.sizes = append(g.sizes, p.ResearchScore)
		minR = math.Min(minR, p.ResearchScore)
		maxR = math.Max(maxR, p.ResearchScore)
	}

	series := make([]chart.Series, 0, len(groups)+1)
	for i, g := range groups {
		sizes := g.sizes
		series = append(series, chart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    6,
				DotColor:    seriesColor(i),
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return dotSize(sizes[index], minR, maxR)
				},
			},
		})
	}
	if len(spec.Points) <= opt.LabelLimit {
		labels := make([]chart.Value2, len(spec.Points))
		for i, p := range spec.Points {
			labels[i] = chart.Value2{XValue: float64(p.Rank), YValue: p.OverallScore, Label: p.Name}
		}
		series = append(series, chart.AnnotationSeries{Annotations: labels})
	}

	xr, yr := pointRanges(spec.Points)
	ch := chart.Chart{
		Title:      spec.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: rankings.ColRank, Range: xr},
		YAxis:      chart.YAxis{Name: rankings.ColOverall, Range: yr},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func seriesColor(i int) drawing.Color {
	return chart.GetDefaultColor(i)
}

// dotSize maps a research score onto a 3..14px dot.
func dotSize(v, lo, hi float64) float64 {
	const minDot, maxDot = 3.0, 14.0
	if hi <= lo {
		return (minDot + maxDot) / 2
	}
	return minDot + (v-lo)/(hi-lo)*(maxDot-minDot)
}

// pointRanges pads the data extent so single points and flat series still
// have a non-zero axis range.
func pointRanges(points []rankings.Record) (*chart.ContinuousRange, *chart.ContinuousRange) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		x := float64(p.Rank)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, p.OverallScore), math.Max(maxY, p.OverallScore)
	}
	return padded(minX, maxX), padded(minY, maxY)
}

func padded(lo, hi float64) *chart.ContinuousRange {
	pad := math.Max((hi-lo)*0.05, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
