package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/elvijs/linear-systems/internal/linsys"
	"github.com/elvijs/linear-systems/internal/viz"
)

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func scalarTrajectory(t *testing.T) *linsys.Trajectory {
	t.Helper()
	sys, err := linsys.Scalar(0.5, 3, 2, 1)
	require.NoError(t, err)
	tr, err := sys.SolnFloats([]float64{1}, [][]float64{{1}, {-4}, {1}})
	require.NoError(t, err)
	return tr
}

func TestSolutionFormats(t *testing.T) {
	tr := scalarTrajectory(t)
	for _, name := range []string{"soln.png", "soln.svg", "soln.pdf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Solution(tr, path))
			nonEmpty(t, path)
		})
	}
}

func TestSolutionPhasePlots(t *testing.T) {
	sys, err := linsys.FromRows(
		[][]float64{{0.9, 0.2, 0}, {-0.1, 0.8, 0.3}, {0, 0, 0.5}},
		[][]float64{{1, 0}, {0, 1}, {1, 1}},
		[][]float64{{1, 0, 1}},
		[][]float64{{0, 2}},
	)
	require.NoError(t, err)
	tr, err := sys.SolnFloats([]float64{1, 2, 3}, [][]float64{{-1, 1}, {-3, 2}, {3, -1}, {0, 0}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "phase.png")
	require.NoError(t, Solution(tr, path))
	nonEmpty(t, path)
}

func TestSolutionTooManyDims(t *testing.T) {
	eye := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	sys, err := linsys.FromRows(eye, [][]float64{{1}, {1}, {1}, {1}}, [][]float64{{1, 1, 1, 1}}, [][]float64{{0}})
	require.NoError(t, err)
	tr, err := sys.SolnFloats([]float64{1, 2, 3, 4}, [][]float64{{0}, {1}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wide.png")
	err = Solution(tr, path)
	assert.ErrorIs(t, err, viz.ErrTooManyDims)
	nonEmpty(t, path)
}

func TestSolutionEmpty(t *testing.T) {
	assert.Error(t, Solution(&linsys.Trajectory{}, filepath.Join(t.TempDir(), "x.png")))
}

func TestNorms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "norms.png")
	require.NoError(t, Norms(scalarTrajectory(t), path))
	nonEmpty(t, path)
}

func TestNormsLure(t *testing.T) {
	plant, err := linsys.Scalar(2, 1, 1, 0)
	require.NoError(t, err)
	gain := func(y mat.Vector) (*mat.VecDense, error) {
		out := mat.NewVecDense(y.Len(), nil)
		out.ScaleVec(-0.5, y)
		return out, nil
	}
	sys, err := linsys.NewLure(plant, gain, "gain")
	require.NoError(t, err)
	tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}, {0}, {1}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lure.svg")
	require.NoError(t, Norms(tr, path))
	nonEmpty(t, path)
}

func TestStabilityBoundary(t *testing.T) {
	sys, err := linsys.Scalar(0.5, 3, 2, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sg.png")
	require.NoError(t, StabilityBoundary(sys, 0, path))
	nonEmpty(t, path)
}

func TestStabilityBoundaryNotSISO(t *testing.T) {
	sys, err := linsys.FromRows(
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{1, 2, 3}},
		[][]float64{{100, 1000}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sg.png")
	assert.ErrorIs(t, StabilityBoundary(sys, 10, path), linsys.ErrNotSISO)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnsupportedFormat(t *testing.T) {
	err := Norms(scalarTrajectory(t), filepath.Join(t.TempDir(), "norms.bmp"))
	assert.Error(t, err)
}

func TestEqualAxes(t *testing.T) {
	p := gplot.New()
	equalAxes(p, plotter.XYs{{X: 0, Y: 0}, {X: 4, Y: 1}})
	assert.InDelta(t, p.X.Max-p.X.Min, p.Y.Max-p.Y.Min, 1e-12)
	assert.InDelta(t, 0.5, (p.Y.Max+p.Y.Min)/2, 1e-12)
}

func TestSignalPlotPhaseEqualAxes(t *testing.T) {
	seq := []*mat.VecDense{
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{8, 1}),
		mat.NewVecDense(2, []float64{4, -1}),
	}
	p, err := signalPlot("x", seq)
	require.NoError(t, err)
	assert.InDelta(t, p.X.Max-p.X.Min, p.Y.Max-p.Y.Min, 1e-12)
	assert.Equal(t, "x_0", p.X.Label.Text)
}

func TestSignalPlotTimeAxesUntouched(t *testing.T) {
	seq := []*mat.VecDense{
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{1}),
		mat.NewVecDense(1, []float64{0.5}),
	}
	p, err := signalPlot("u", seq)
	require.NoError(t, err)
	assert.InDelta(t, 2, p.X.Max-p.X.Min, 1e-12)
	assert.InDelta(t, 1, p.Y.Max-p.Y.Min, 1e-12)
}

func TestEndLabels(t *testing.T) {
	assert.Equal(t, []string{"x(0)", "x(4)"}, endLabels("x", 4))
}
