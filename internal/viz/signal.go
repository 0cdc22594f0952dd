package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

// ErrTooManyDims is returned for signals that cannot be drawn in at most
// three dimensions.
var ErrTooManyDims = errors.New("the screen is too flat for anything of dimension more than 3 :(")

// Signal colors follow the file plots: y red, u yellow, x blue, d green.
var signalColors = map[string]asciigraph.AnsiColor{
	"x": asciigraph.Blue,
	"y": asciigraph.Red,
	"u": asciigraph.Yellow,
	"d": asciigraph.Green,
}

// RenderSignal draws one sequence of vectors according to its dimension.
func RenderSignal(name string, seq []*mat.VecDense, width, height int, cam *Camera) (string, error) {
	if len(seq) == 0 {
		return name + ": no data\n", nil
	}
	switch dim := seq[0].Len(); dim {
	case 1:
		s := Series{Name: name, Values: linsys.Component(seq, 0), Color: signalColors[name]}
		return LineChart(name, width, height, s), nil
	case 2:
		cv := NewCanvas(width/2, height)
		px := cv.DrawPath(linsys.Component(seq, 0), linsys.Component(seq, 1))
		return phaseView(name, cv, px, len(seq)), nil
	case 3:
		if cam == nil {
			cam = NewCamera()
		}
		pts := make([]Vec3, len(seq))
		for k, v := range seq {
			pts[k] = Vec3{v.AtVec(0), v.AtVec(1), v.AtVec(2)}
		}
		cv := NewCanvas(width/2, height)
		px := DrawPath3D(cv, pts, cam)
		return phaseView(name, cv, px, len(seq)), nil
	default:
		return "", fmt.Errorf("%s has dimension %d: %w", name, dim, ErrTooManyDims)
	}
}

// NormChart plots the Euclidean norms of every signal in tr.
func NormChart(tr *linsys.Trajectory, width, height int) string {
	series := []Series{{Name: "|x|", Values: tr.StateNorms(), Color: signalColors["x"]}}
	if tr.HasOutputs() {
		series = append(series, Series{Name: "|y|", Values: tr.OutputNorms(), Color: signalColors["y"]})
	}
	in := tr.InputName
	if in == "" {
		in = "u"
	}
	series = append(series, Series{Name: "|" + in + "|", Values: tr.InputNorms(), Color: signalColors[in]})
	return LineChart("absolute values", width, height, series...)
}

// phaseView labels the start and end of a phase curve under the canvas.
func phaseView(name string, cv *Canvas, px [][2]int, horizon int) string {
	var b strings.Builder
	b.WriteString(cv.String())
	if len(px) > 0 {
		start, end := px[0], px[len(px)-1]
		fmt.Fprintf(&b, "%s(0) at (%d,%d)  %s(%d) at (%d,%d)\n", name, start[0], start[1], name, horizon, end[0], end[1])
	}
	return b.String()
}
