package linsys

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Nonlinearity is a static feedback map from the output space R^p to the
// input space R^m.
type Nonlinearity func(y mat.Vector) (*mat.VecDense, error)

// LureSystem is a linear plant closed through a static nonlinearity:
//
//	x[k+1] = A x[k] + B (F(C x[k]) + d[k])
//
// where d is an external disturbance.
type LureSystem struct {
	*LinearSystem
	F    Nonlinearity
	Name string
}

// NewLure wraps sys with the feedback f. name is used for display only.
func NewLure(sys *LinearSystem, f Nonlinearity, name string) (*LureSystem, error) {
	if sys == nil {
		return nil, fmt.Errorf("%w: linear part is nil", ErrEmptyMatrix)
	}
	if f == nil {
		return nil, ErrNoNonlinearity
	}
	return &LureSystem{LinearSystem: sys, F: f, Name: name}, nil
}

// Soln runs the closed loop from x0 under the disturbance sequence d. The
// trajectory has no outputs; Inputs holds d. Systems with a non-zero D are
// rejected with ErrNonzeroFeedthrough.
func (s *LureSystem) Soln(x0 mat.Vector, d []mat.Vector) (*Trajectory, error) {
	if s.HasFeedthrough() {
		return nil, ErrNonzeroFeedthrough
	}
	if err := s.checkState(x0); err != nil {
		return nil, err
	}
	m := s.Inputs()
	for k, dk := range d {
		if dk == nil || dk.Len() != m {
			return nil, vecErr(fmt.Sprintf("d[%d]", k), dk, m)
		}
	}

	steps := len(d)
	tr := &Trajectory{
		States:    make([]*mat.VecDense, 0, steps),
		Inputs:    make([]*mat.VecDense, 0, steps),
		InputName: "d",
	}

	x := mat.VecDenseCopyOf(x0)
	for k, dk := range d {
		dc := mat.VecDenseCopyOf(dk)
		tr.States = append(tr.States, x)
		tr.Inputs = append(tr.Inputs, dc)
		if k == steps-1 {
			break
		}

		y := mat.NewVecDense(s.Outputs(), nil)
		y.MulVec(s.c, x)
		fy, err := s.F(y)
		if err != nil {
			return tr, &SimulationError{Step: k, Wrapped: err}
		}
		if fy == nil {
			return tr, &SimulationError{Step: k, Wrapped: vecErr("f(y)", nil, m)}
		}
		if fy.Len() != m {
			return tr, &SimulationError{Step: k, Wrapped: vecErr("f(y)", fy, m)}
		}

		w := mat.NewVecDense(m, nil)
		w.AddVec(fy, dc)
		next := mat.NewVecDense(s.Order(), nil)
		next.MulVec(s.a, x)
		var bw mat.VecDense
		bw.MulVec(s.b, w)
		next.AddVec(next, &bw)
		x = next
	}
	return tr, nil
}

// SolnFloats is Soln for plain slices.
func (s *LureSystem) SolnFloats(x0 []float64, d [][]float64) (*Trajectory, error) {
	if len(x0) == 0 {
		return nil, &DimensionError{Name: "x0", Got: "0×1", Want: fmt.Sprintf("%d×1", s.Order())}
	}
	ds, err := VectorsFromRows("d", d)
	if err != nil {
		return nil, err
	}
	return s.Soln(mat.NewVecDense(len(x0), append([]float64(nil), x0...)), ds)
}

func (s *LureSystem) String() string {
	return s.LinearSystem.String() + "\n" + s.Name
}
