// Package render draws chart specifications as static images.
//
// It backs the server's /charts/{id}.png and /charts/{id}.svg routes, giving
// clients without JavaScript a view of the same charts the browser draws
// with Chart.js. Drawing is delegated to go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"slices"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wigest/chartboard/chart"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ParseFormat converts "png" or "svg" into a [Format].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, SVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// Size limits for rendered images, in pixels.
const (
	MinSize = 16
	MaxSize = 4096

	DefaultWidth  = 640
	DefaultHeight = 400
)

// Image writes c to w as an image of the given format and size.
//
// Line charts draw every dataset. Bar, pie and doughnut charts draw the
// first dataset only, since go-chart has a single series for those kinds.
func Image(w io.Writer, c chart.Chart, format Format, width, height int) error {
	if width < MinSize || width > MaxSize || height < MinSize || height > MaxSize {
		return fmt.Errorf("image size %dx%d out of range [%d, %d]", width, height, MinSize, MaxSize)
	}

	var provider gochart.RendererProvider
	switch format {
	case PNG:
		provider = gochart.PNG
	case SVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	switch c.Kind() {
	case chart.KindLine:
		return lineChart(c, width, height).Render(provider, w)
	case chart.KindBar:
		return barChart(c, width, height).Render(provider, w)
	case chart.KindPie:
		pc := gochart.PieChart{
			Title:  c.Title(),
			Width:  width,
			Height: height,
			Values: sliceValues(c),
		}
		return pc.Render(provider, w)
	case chart.KindDoughnut:
		dc := gochart.DonutChart{
			Title:  c.Title(),
			Width:  width,
			Height: height,
			Values: sliceValues(c),
		}
		return dc.Render(provider, w)
	}
	return errors.New("unknown chart kind")
}

func lineChart(c chart.Chart, width, height int) *gochart.Chart {
	xs, ticks := categoryAxis(c.Labels())

	lo, hi := valueRange(c)
	series := make([]gochart.Series, 0, len(c.Datasets()))
	for _, ds := range c.Datasets() {
		style := gochart.Style{StrokeWidth: 2}
		if col, ok := toColor(ds.Border()); ok {
			style.StrokeColor = col
		}
		if bg := ds.Backgrounds(); ds.Fill() && len(bg) > 0 {
			if col, ok := toColor(bg[0]); ok {
				style.FillColor = col
			}
		}
		ys := ds.Values()
		if len(ys) == 1 {
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label(),
			Style:   style,
			XValues: xs,
			YValues: ys,
		})
	}

	gc := &gochart.Chart{
		Title:  c.Title(),
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: xs[len(xs)-1]},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	if c.Legend().Display {
		gc.Elements = []gochart.Renderable{gochart.Legend(gc)}
	}
	return gc
}

// categoryAxis places one x value and tick per label. A single label is
// drawn as a flat segment from 0 to 1 with its tick centred, since go-chart
// needs a non-zero x range.
func categoryAxis(labels []string) ([]float64, []gochart.Tick) {
	if len(labels) == 1 {
		return []float64{0, 1}, []gochart.Tick{{Value: 0.5, Label: labels[0]}}
	}
	xs := make([]float64, len(labels))
	ticks := make([]gochart.Tick, len(labels))
	for i, l := range labels {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	return xs, ticks
}

func barChart(c chart.Chart, width, height int) *gochart.BarChart {
	labels := c.Labels()
	ds := c.Datasets()[0]
	values := ds.Values()
	bg := ds.Backgrounds()

	bars := make([]gochart.Value, len(labels))
	for i, l := range labels {
		bars[i] = gochart.Value{Label: l, Value: values[i], Style: fillStyle(bg, i)}
	}

	lo, hi := valueRange(c)
	return &gochart.BarChart{
		Title:    c.Title(),
		Width:    width,
		Height:   height,
		BarWidth: max(width/(2*len(bars)+1), 1),
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: min(lo, 0), Max: hi},
		},
		Bars: bars,
	}
}

// emptySlice fills the circle of a pie or doughnut with no non-zero value.
var emptySlice = gochart.Value{
	Value: 1,
	Style: gochart.Style{
		FillColor:   drawing.Color{R: 0xea, G: 0xec, B: 0xf4, A: 0xff},
		StrokeColor: drawing.Color{R: 0xea, G: 0xec, B: 0xf4, A: 0xff},
	},
}

// sliceValues builds pie or doughnut slices from the first dataset.
// When every value is zero a single unlabelled grey slice is drawn.
func sliceValues(c chart.Chart) []gochart.Value {
	labels := c.Labels()
	ds := c.Datasets()[0]
	values := ds.Values()
	bg := ds.Backgrounds()

	if !slices.ContainsFunc(values, func(v float64) bool { return v != 0 }) {
		return []gochart.Value{emptySlice}
	}

	out := make([]gochart.Value, len(labels))
	for i, l := range labels {
		out[i] = gochart.Value{Label: l, Value: values[i], Style: fillStyle(bg, i)}
	}
	return out
}

// fillStyle picks the i-th background colour, or the only one if a single
// colour is shared. Without colours go-chart applies its palette.
func fillStyle(bg []string, i int) gochart.Style {
	var raw string
	switch {
	case len(bg) == 1:
		raw = bg[0]
	case i < len(bg):
		raw = bg[i]
	default:
		return gochart.Style{}
	}
	col, ok := toColor(raw)
	if !ok {
		return gochart.Style{}
	}
	return gochart.Style{FillColor: col, StrokeColor: col}
}

// valueRange spans every dataset value, widened when all values are equal
// because go-chart rejects a zero-height range.
func valueRange(c chart.Chart) (float64, float64) {
	first := true
	var lo, hi float64
	for _, ds := range c.Datasets() {
		for _, v := range ds.Values() {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func toColor(s string) (drawing.Color, bool) {
	if s == "" {
		return drawing.Color{}, false
	}
	rgba, err := chart.ParseColor(s)
	if err != nil {
		return drawing.Color{}, false
	}
	return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, true
}
