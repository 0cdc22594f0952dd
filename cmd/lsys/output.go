package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/config"
	"github.com/elvijs/linear-systems/internal/linsys"
	"github.com/elvijs/linear-systems/internal/metrics"
	"github.com/elvijs/linear-systems/internal/poly"
	"github.com/elvijs/linear-systems/internal/storage"
)

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleRounded
	style.Options.SeparateColumns = true
	style.Options.DrawBorder = true
	t.SetStyle(style)
	t.AppendHeader(table.Row(header))
	return t
}

func renderTrajectoryTable(w io.Writer, tr *linsys.Trajectory) {
	in := tr.InputName
	if in == "" {
		in = "u"
	}
	header := table.Row{"k", "x"}
	if tr.HasOutputs() {
		header = append(header, "y")
	}
	header = append(header, in)
	t := newTable(w, header...)

	xs, ys, us := tr.StateRows(), tr.OutputRows(), tr.InputRows()
	for k := 0; k < tr.Len(); k++ {
		row := table.Row{k, formatRow(xs[k])}
		if tr.HasOutputs() {
			row = append(row, formatRow(ys[k]))
		}
		row = append(row, formatRow(us[k]))
		t.AppendRow(row)
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func renderSpectrumTable(w io.Writer, tr *linsys.Trajectory) {
	t := newTable(w, "component", "dominant frequency", "period")
	for i := 0; i < tr.States[0].Len(); i++ {
		f := metrics.DominantFrequency(linsys.Component(tr.States, i))
		period := "-"
		if f > 0 {
			period = fmt.Sprintf("%.3g steps", 1/f)
		}
		t.AppendRow(table.Row{fmt.Sprintf("x%d", i), fmt.Sprintf("%.4g cycles/step", f), period})
	}
	t.Render()
}

func renderMetrics(w io.Writer, vals map[string]float64) {
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	t := newTable(w, "metric", "value")
	for _, name := range names {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.6g", vals[name])})
	}
	t.Render()
}

func renderTransferTable(w io.Writer, g *poly.TransferMatrix) {
	r, c := g.Dims()
	header := table.Row{""}
	for j := 0; j < c; j++ {
		header = append(header, fmt.Sprintf("u%d", j))
	}
	t := newTable(w, header...)
	for i := 0; i < r; i++ {
		row := table.Row{fmt.Sprintf("y%d", i)}
		for j := 0; j < c; j++ {
			row = append(row, g.At(i, j).String())
		}
		t.AppendRow(row)
	}
	t.Render()
}

func renderPresetTable(w io.Writer) {
	t := newTable(w, "name", "kind", "n", "m", "p", "feedback")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fb := ""
		if cfg.Nonlinearity != nil {
			fb = cfg.Nonlinearity.Name
		}
		m := 0
		if len(cfg.B) > 0 {
			m = len(cfg.B[0])
		}
		t.AppendRow(table.Row{name, cfg.Kind, len(cfg.A), m, len(cfg.C), fb})
	}
	t.Render()
}

func renderRunTable(w io.Writer, runs []storage.RunMetadata) {
	t := newTable(w, "id", "system", "kind", "steps", "peak |x|", "time")
	for _, r := range runs {
		peak := "-"
		if v, ok := r.Metrics["peak_state_norm"]; ok {
			peak = fmt.Sprintf("%.4g", v)
		}
		t.AppendRow(table.Row{r.ID, r.System, r.Kind, r.Steps, peak, r.Timestamp.Format("2006-01-02 15:04:05")})
	}
	t.Render()
}

func formatRow(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.6g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatComplex(zs []complex128) string {
	parts := make([]string, len(zs))
	for i, z := range zs {
		switch {
		case math.Abs(imag(z)) < 1e-12:
			parts[i] = fmt.Sprintf("%.6g", real(z))
		case imag(z) < 0:
			parts[i] = fmt.Sprintf("%.6g-%.6gi", real(z), -imag(z))
		default:
			parts[i] = fmt.Sprintf("%.6g+%.6gi", real(z), imag(z))
		}
	}
	return strings.Join(parts, ", ")
}

// rows converts m to nested slices for yaml.
func rows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, m)
	}
	return out
}
