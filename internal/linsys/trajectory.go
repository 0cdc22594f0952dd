package linsys

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Trajectory holds aligned sequences produced by a simulation. For a
// system driven by T inputs every non-nil sequence has length T and
// entry k belongs to time step k.
//
// Lur'e trajectories carry no outputs; their Inputs are the disturbances
// and InputName is "d".
type Trajectory struct {
	States    []*mat.VecDense
	Outputs   []*mat.VecDense
	Inputs    []*mat.VecDense
	InputName string
}

// Len returns the number of time steps.
func (t *Trajectory) Len() int { return len(t.States) }

// HasOutputs reports whether the trajectory recorded y.
func (t *Trajectory) HasOutputs() bool { return t.Outputs != nil }

// StateNorms returns ||x[k]|| for every step.
func (t *Trajectory) StateNorms() []float64 { return norms(t.States) }

// OutputNorms returns ||y[k]|| for every step, nil for Lur'e trajectories.
func (t *Trajectory) OutputNorms() []float64 {
	if t.Outputs == nil {
		return nil
	}
	return norms(t.Outputs)
}

// InputNorms returns ||u[k]|| (or ||d[k]||) for every step.
func (t *Trajectory) InputNorms() []float64 { return norms(t.Inputs) }

// Diverged returns the first step whose state or output holds a NaN or
// an infinity.
func (t *Trajectory) Diverged() (step int, ok bool) {
	for k, x := range t.States {
		if !finite(x) || (k < len(t.Outputs) && !finite(t.Outputs[k])) {
			return k, true
		}
	}
	return 0, false
}

// CheckFinite returns a *SimulationError wrapping ErrDiverged at the first
// non-finite step, or nil.
func (t *Trajectory) CheckFinite() error {
	if k, ok := t.Diverged(); ok {
		return &SimulationError{Step: k, Wrapped: ErrDiverged}
	}
	return nil
}

// StateRows returns the states as plain slices.
func (t *Trajectory) StateRows() [][]float64 { return rows(t.States) }

// OutputRows returns the outputs as plain slices.
func (t *Trajectory) OutputRows() [][]float64 { return rows(t.Outputs) }

// InputRows returns the inputs as plain slices.
func (t *Trajectory) InputRows() [][]float64 { return rows(t.Inputs) }

// Component returns entry i of every vector in seq.
func Component(seq []*mat.VecDense, i int) []float64 {
	out := make([]float64, len(seq))
	for k, v := range seq {
		out[k] = v.AtVec(i)
	}
	return out
}

func norms(seq []*mat.VecDense) []float64 {
	out := make([]float64, len(seq))
	for k, v := range seq {
		out[k] = mat.Norm(v, 2)
	}
	return out
}

func rows(seq []*mat.VecDense) [][]float64 {
	if seq == nil {
		return nil
	}
	out := make([][]float64, len(seq))
	for k, v := range seq {
		row := make([]float64, v.Len())
		for i := range row {
			row[i] = v.AtVec(i)
		}
		out[k] = row
	}
	return out
}

// VectorsFromRows converts plain slices into column vectors. Empty rows
// are reported as a dimension mismatch.
func VectorsFromRows(name string, rows [][]float64) ([]mat.Vector, error) {
	out := make([]mat.Vector, len(rows))
	for k, r := range rows {
		if len(r) == 0 {
			return nil, &DimensionError{Name: fmt.Sprintf("%s[%d]", name, k), Got: "0×1", Want: "non-empty vector"}
		}
		out[k] = mat.NewVecDense(len(r), append([]float64(nil), r...))
	}
	return out, nil
}

func finite(v mat.Vector) bool {
	for i := 0; i < v.Len(); i++ {
		f := v.AtVec(i)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
