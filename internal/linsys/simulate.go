package linsys

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Soln runs the system from x0 under the input sequence u. It iterates
// exactly len(u) times and returns aligned sequences of that length; the
// state produced by the last step is dropped. Overflow does not stop the
// run: non-finite values propagate and are reported by
// [Trajectory.CheckFinite].
func (s *LinearSystem) Soln(x0 mat.Vector, u []mat.Vector) (*Trajectory, error) {
	if err := s.checkState(x0); err != nil {
		return nil, err
	}
	m := s.Inputs()
	for k, uk := range u {
		if uk == nil || uk.Len() != m {
			return nil, vecErr(fmt.Sprintf("u[%d]", k), uk, m)
		}
	}

	steps := len(u)
	tr := &Trajectory{
		States:    make([]*mat.VecDense, 0, steps),
		Outputs:   make([]*mat.VecDense, 0, steps),
		Inputs:    make([]*mat.VecDense, 0, steps),
		InputName: "u",
	}

	x := mat.VecDenseCopyOf(x0)
	for k, uk := range u {
		uc := mat.VecDenseCopyOf(uk)

		y := mat.NewVecDense(s.Outputs(), nil)
		y.MulVec(s.c, x)
		var du mat.VecDense
		du.MulVec(s.d, uc)
		y.AddVec(y, &du)

		tr.States = append(tr.States, x)
		tr.Outputs = append(tr.Outputs, y)
		tr.Inputs = append(tr.Inputs, uc)

		if k == steps-1 {
			break
		}
		next := mat.NewVecDense(s.Order(), nil)
		next.MulVec(s.a, x)
		var bu mat.VecDense
		bu.MulVec(s.b, uc)
		next.AddVec(next, &bu)
		x = next
	}
	return tr, nil
}

// SolnFloats is Soln for plain slices.
func (s *LinearSystem) SolnFloats(x0 []float64, u [][]float64) (*Trajectory, error) {
	if len(x0) == 0 {
		return nil, &DimensionError{Name: "x0", Got: "0×1", Want: fmt.Sprintf("%d×1", s.Order())}
	}
	us, err := VectorsFromRows("u", u)
	if err != nil {
		return nil, err
	}
	return s.Soln(mat.NewVecDense(len(x0), append([]float64(nil), x0...)), us)
}

func (s *LinearSystem) checkState(x0 mat.Vector) error {
	if x0 == nil || x0.Len() != s.Order() {
		return vecErr("x0", x0, s.Order())
	}
	return nil
}

func vecErr(name string, v mat.Vector, want int) error {
	got := 0
	if v != nil {
		got = v.Len()
	}
	return &DimensionError{Name: name, Got: fmt.Sprintf("%d×1", got), Want: fmt.Sprintf("%d×1", want)}
}
