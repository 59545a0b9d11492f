package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrEmptyChart = errors.New("chart has no data points")

// RasterizePNG draws the chart held by h as a PNG image.
func RasterizePNG(w io.Writer, h *ChartHandle) error {
	if h == nil {
		return errors.New("rasterize chart: handle is nil")
	}
	if h.Spec.Empty() {
		return fmt.Errorf("rasterize chart %s: %w", h.ID, ErrEmptyChart)
	}

	switch h.Spec.Kind {
	case BarChart:
		return rasterizeBar(w, h.Spec)
	case LineChart:
		return rasterizeLine(w, h.Spec)
	default:
		return fmt.Errorf("rasterize chart %s: unsupported kind %q", h.ID, h.Spec.Kind)
	}
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

var gridStyle = chart.Style{
	StrokeColor: drawing.ColorFromHex("dddddd"),
	StrokeWidth: 1.0,
}

// valueRange pads the data extent so a flat series still has a drawable range.
func valueRange(values []float64, fromZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if fromZero || lo > 0 {
		lo = math.Min(0, lo)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.1}
}

func rasterizeBar(w io.Writer, spec ChartSpec) error {
	var values []float64
	bars := make([]chart.Value, 0, len(spec.Categories))
	for _, s := range spec.Series {
		for i, v := range s.Values {
			if i >= len(spec.Categories) {
				break
			}
			c := hexColor(colorAt(s.Colors, i))
			bars = append(bars, chart.Value{
				Value: v,
				Label: spec.Categories[i],
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
			values = append(values, v)
		}
	}

	graph := chart.BarChart{
		Title:      spec.Title,
		Width:      400,
		Height:     240,
		BarWidth:   70,
		BarSpacing: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range:          valueRange(values, true),
			GridMajorStyle: gridStyle,
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func rasterizeLine(w io.Writer, spec ChartSpec) error {
	n := len(spec.Categories)

	ticks := make([]chart.Tick, n)
	xs := make([]float64, n)
	for i, label := range spec.Categories {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	axisValues := make([][]float64, 2)
	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		m := min(n, len(s.Values))
		c := hexColor(colorAt(s.Colors, 0))
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs[:m],
			YValues: s.Values[:m],
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    4,
			},
		}
		if s.Axis == 1 {
			cs.YAxis = chart.YAxisSecondary
		}
		if s.Axis == 0 || s.Axis == 1 {
			axisValues[s.Axis] = append(axisValues[s.Axis], s.Values[:m]...)
		}
		series = append(series, cs)
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  900,
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(n-1), 1)},
		},
		Series: series,
	}

	for i, a := range spec.Axes {
		if i > 1 {
			break
		}
		axis := chart.YAxis{
			Name:  a.Title,
			Range: valueRange(axisValues[i], a.BeginAtZero),
		}
		if a.Gridlines {
			axis.GridMajorStyle = gridStyle
		} else {
			axis.GridMajorStyle = chart.Style{Hidden: true}
			axis.GridMinorStyle = chart.Style{Hidden: true}
		}
		if i == 0 {
			graph.YAxis = axis
		} else {
			graph.YAxisSecondary = axis
		}
	}

	if spec.Legend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}
