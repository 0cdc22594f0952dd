// Package plot writes trajectory and stability plots to image files.
//
// The file format follows the extension of the output path: .png is
// rendered through vgimg at [DPI], while .svg and .pdf use the
// matching gonum/plot backend.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/elvijs/linear-systems/internal/linsys"
	"github.com/elvijs/linear-systems/internal/viz"
)

var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
	DPI    = 96
)

var (
	blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	yellow = color.RGBA{R: 230, G: 171, B: 2, A: 255}
	green  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

var (
	dotted  = []vg.Length{vg.Points(1), vg.Points(3)}
	dashDot = []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)}
)

func signalColor(name string) color.Color {
	switch name {
	case "y":
		return red
	case "u":
		return yellow
	case "d":
		return green
	default:
		return blue
	}
}

// Solution draws every signal of tr. Outputs and inputs share the top
// row and the state takes the bottom. A panel whose signal has more than
// three components shows a refusal; the file is still written and the
// returned error wraps [viz.ErrTooManyDims].
func Solution(tr *linsys.Trajectory, path string) error {
	if tr == nil || tr.Len() == 0 {
		return errors.New("plot: empty trajectory")
	}
	in := tr.InputName
	if in == "" {
		in = "u"
	}

	var errs []error
	panel := func(name string, seq []*mat.VecDense) *gplot.Plot {
		p, err := signalPlot(name, seq)
		if err != nil {
			errs = append(errs, err)
		}
		return p
	}

	xp := panel("x", tr.States)
	var top []*gplot.Plot
	if tr.HasOutputs() {
		top = append(top, panel("y", tr.Outputs))
	}
	top = append(top, panel(in, tr.Inputs))

	err := render(path, func(dc draw.Canvas) {
		w := dc.Max.X - dc.Min.X
		h := dc.Max.Y - dc.Min.Y
		upper := draw.Crop(dc, 0, 0, h/2, 0)
		xp.Draw(draw.Crop(dc, 0, 0, 0, -h/2))

		tw := w / vg.Length(len(top))
		for i, p := range top {
			left := tw * vg.Length(i)
			right := -(w - left - tw)
			p.Draw(draw.Crop(upper, left, right, 0, 0))
		}
	})
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}

func signalPlot(name string, seq []*mat.VecDense) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = name
	if len(seq) == 0 {
		p.HideAxes()
		return p, nil
	}

	var pts plotter.XYs
	switch dim := seq[0].Len(); dim {
	case 1:
		pts = make(plotter.XYs, len(seq))
		for k, v := range seq {
			pts[k].X = float64(k)
			pts[k].Y = v.AtVec(0)
		}
		p.X.Label.Text = "Time"
		p.Y.Label.Text = name
	case 2:
		pts = make(plotter.XYs, len(seq))
		for k, v := range seq {
			pts[k].X = v.AtVec(0)
			pts[k].Y = v.AtVec(1)
		}
		p.X.Label.Text = name + "_0"
		p.Y.Label.Text = name + "_1"
	case 3:
		cam := viz.NewCamera()
		vs := make([]viz.Vec3, len(seq))
		for k, v := range seq {
			vs[k] = viz.Vec3{X: v.AtVec(0), Y: v.AtVec(1), Z: v.AtVec(2)}
		}
		xs, ys := cam.ProjectPath(vs)
		pts = make(plotter.XYs, len(seq))
		for k := range pts {
			pts[k].X, pts[k].Y = xs[k], ys[k]
		}
		p.HideAxes()
	default:
		err := fmt.Errorf("plot: %s has dimension %d: %w", name, dim, viz.ErrTooManyDims)
		p.Title.Text = name + ": " + viz.ErrTooManyDims.Error()
		p.HideAxes()
		return p, err
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return p, fmt.Errorf("plot: %s: %w", name, err)
	}
	line.LineStyle.Color = signalColor(name)
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	if seq[0].Len() > 1 {
		ends := plotter.XYLabels{
			XYs:    plotter.XYs{pts[0], pts[len(pts)-1]},
			Labels: endLabels(name, len(pts)),
		}
		labels, err := plotter.NewLabels(ends)
		if err != nil {
			return p, fmt.Errorf("plot: %s labels: %w", name, err)
		}
		p.Add(labels)
	}
	if seq[0].Len() == 2 {
		equalAxes(p, pts)
	}
	return p, nil
}

// endLabels names the first and last point of a path of n samples. The last
// one is tagged with the horizon n.
func endLabels(name string, n int) []string {
	return []string{name + "(0)", fmt.Sprintf("%s(%d)", name, n)}
}

// Norms plots the Euclidean norm of each signal against the step index.
func Norms(tr *linsys.Trajectory, path string) error {
	if tr == nil || tr.Len() == 0 {
		return errors.New("plot: empty trajectory")
	}
	p := gplot.New()
	p.Title.Text = "absolute values"
	p.X.Label.Text = "Time"
	p.Legend.Top = true

	in := tr.InputName
	if in == "" {
		in = "u"
	}
	if err := addNorm(p, "|x|", tr.StateNorms(), blue, nil); err != nil {
		return err
	}
	if tr.HasOutputs() {
		if err := addNorm(p, "|y|", tr.OutputNorms(), red, dotted); err != nil {
			return err
		}
		if err := addNorm(p, "|"+in+"|", tr.InputNorms(), signalColor(in), dashDot); err != nil {
			return err
		}
	} else if err := addNorm(p, "|"+in+"|", tr.InputNorms(), signalColor(in), dotted); err != nil {
		return err
	}
	return render(path, p.Draw)
}

func addNorm(p *gplot.Plot, name string, vals []float64, c color.Color, dashes []vg.Length) error {
	pts := make(plotter.XYs, len(vals))
	for k, v := range vals {
		pts[k].X = float64(k)
		pts[k].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot: %s: %w", name, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = dashes
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

// StabilityBoundary plots the image of the unit circle under 1/G for a
// SISO system and marks 1/G(0) with S(G). Both axes share one scale.
func StabilityBoundary(sys *linsys.LinearSystem, n int, path string) error {
	points, anchor, err := sys.StabilityBoundary(n)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	pts := make(plotter.XYs, len(points))
	for k, z := range points {
		pts[k].X, pts[k].Y = real(z), imag(z)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot: boundary: %w", err)
	}
	line.LineStyle.Color = red
	line.LineStyle.Width = vg.Points(1.5)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: real(anchor), Y: imag(anchor)}},
		Labels: []string{"S(G)"},
	})
	if err != nil {
		return fmt.Errorf("plot: anchor: %w", err)
	}

	p := gplot.New()
	p.Title.Text = "stabilizing gains"
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"
	p.Add(plotter.NewGrid(), line, labels)
	equalAxes(p, append(pts, plotter.XY{X: real(anchor), Y: imag(anchor)}))
	return render(path, p.Draw)
}

// equalAxes gives both axes the same span, centred on the data.
func equalAxes(p *gplot.Plot, pts plotter.XYs) {
	xmin, xmax, ymin, ymax := plotter.XYRange(pts)
	span := max(xmax-xmin, ymax-ymin)
	if span == 0 {
		span = 1
	}
	span *= 1.1
	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2
}

func render(path string, drawFn func(draw.Canvas)) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	var c vg.CanvasWriterTo
	switch format {
	case "", "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))}
	default:
		var err error
		c, err = draw.NewFormattedCanvas(Width, Height, format)
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	drawFn(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plot: write %s: %w", path, err)
	}
	return f.Close()
}
