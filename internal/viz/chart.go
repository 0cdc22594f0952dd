package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultChartWidth  = 80
	DefaultChartHeight = 10
)

// Series is one named line of a chart.
type Series struct {
	Name   string
	Values []float64
	Color  asciigraph.AnsiColor
}

// LineChart plots every series against the step index.
func LineChart(caption string, width, height int, series ...Series) string {
	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	names := make([]string, 0, len(series))
	longest := 0
	for _, s := range series {
		vals, ok := finiteValues(s.Values)
		if !ok {
			continue
		}
		data = append(data, vals)
		colors = append(colors, s.Color)
		names = append(names, s.Name)
		longest = max(longest, len(s.Values))
	}
	if len(data) == 0 {
		return caption + ": no data\n"
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesLegends(names...))
	}
	// Interpolation needs at least two samples.
	if longest > 1 && width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany(data, opts...)
}

// finiteValues copies vals with infinities turned into NaN gaps. ok is
// false when nothing finite is left to draw.
func finiteValues(vals []float64) ([]float64, bool) {
	out := make([]float64, len(vals))
	ok := false
	for i, v := range vals {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		ok = ok || !math.IsNaN(v)
		out[i] = v
	}
	return out, ok
}
