package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

func scalarRun(t *testing.T) *linsys.Trajectory {
	t.Helper()
	sys, err := linsys.Scalar(0.5, 3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	// x = [1, 3.5, -10.25]
	tr, err := sys.SolnFloats([]float64{1}, [][]float64{{1}, {-4}, {1}})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestEvaluate(t *testing.T) {
	tr := scalarRun(t)

	vals, err := Evaluate(tr, Defaults(5)...)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{
		"peak_state_norm":  10.25,
		"final_state_norm": 10.25,
		"input_energy":     18,
		"bounded":          2.0 / 3.0,
	}
	for name, w := range want {
		got, ok := vals[name]
		if !ok {
			t.Errorf("missing metric %s", name)
			continue
		}
		if math.Abs(got-w) > 1e-12 {
			t.Errorf("%s = %f, want %f", name, got, w)
		}
	}
}

func TestEvaluateResets(t *testing.T) {
	tr := scalarRun(t)
	m := NewInputEnergy()

	first, err := Evaluate(tr, m)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Evaluate(tr, m)
	if err != nil {
		t.Fatal(err)
	}
	if first["input_energy"] != second["input_energy"] {
		t.Errorf("metric not reset between runs: %f vs %f", first["input_energy"], second["input_energy"])
	}
}

func TestEvaluateDuplicate(t *testing.T) {
	tr := scalarRun(t)
	if _, err := Evaluate(tr, NewBounded(1), NewBounded(2)); err == nil {
		t.Error("expected duplicate metric error")
	}
}

func TestBoundedEmpty(t *testing.T) {
	b := NewBounded(1)
	if b.Value() != 1.0 {
		t.Errorf("expected 1.0 for no samples, got %f", b.Value())
	}
}

func TestLureTrajectory(t *testing.T) {
	plant, err := linsys.Scalar(2, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	sys, err := linsys.NewLure(plant, func(y mat.Vector) (*mat.VecDense, error) {
		out := mat.NewVecDense(1, nil)
		out.ScaleVec(-0.5, y)
		return out, nil
	}, "gain")
	if err != nil {
		t.Fatal(err)
	}
	tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}, {0}})
	if err != nil {
		t.Fatal(err)
	}
	vals, err := Evaluate(tr, NewFinalStateNorm())
	if err != nil {
		t.Fatal(err)
	}
	if vals["final_state_norm"] != 1.5 {
		t.Errorf("final_state_norm = %f, want 1.5", vals["final_state_norm"])
	}
}

func TestDominantFrequency(t *testing.T) {
	vals := make([]float64, 64)
	for k := range vals {
		vals[k] = 3 + math.Cos(2*math.Pi*float64(k)/8)
	}
	if got := DominantFrequency(vals); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("DominantFrequency = %v, want 0.125", got)
	}

	ps := PowerSpectrum(vals)
	if len(ps) != 33 {
		t.Fatalf("len(ps) = %d, want 33", len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean not removed: ps[0] = %v", ps[0])
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	tests := [][]float64{nil, {1}, {2, 2, 2, 2}}
	for _, vals := range tests {
		if got := DominantFrequency(vals); got != 0 {
			t.Errorf("DominantFrequency(%v) = %v, want 0", vals, got)
		}
	}
}
