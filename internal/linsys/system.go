package linsys

import (
	"fmt"
	"strings"

	"github.com/elvijs/linear-systems/internal/poly"
	"gonum.org/v1/gonum/mat"
)

// LinearSystem is a discrete-time state-space realization
//
//	x[k+1] = A x[k] + B u[k]
//	y[k]   = C x[k] + D u[k]
//
// with A n×n, B n×m, C p×n and D p×m. A LinearSystem never changes after
// construction; accessors return copies.
type LinearSystem struct {
	a, b, c, d *mat.Dense
	g          *poly.TransferMatrix
}

// New validates the shapes of A, B, C and D and returns the system.
// The matrices are copied.
func New(A, B, C, D mat.Matrix) (*LinearSystem, error) {
	if err := Validate(A, B, C, D); err != nil {
		return nil, err
	}
	sys := &LinearSystem{
		a: mat.DenseCopyOf(A),
		b: mat.DenseCopyOf(B),
		c: mat.DenseCopyOf(C),
		d: mat.DenseCopyOf(D),
	}
	sys.g = transferFunction(sys.a, sys.b, sys.c, sys.d)
	return sys, nil
}

// FromRows builds a system from row-major nested slices.
func FromRows(a, b, c, d [][]float64) (*LinearSystem, error) {
	A, err := DenseFromRows("A", a)
	if err != nil {
		return nil, err
	}
	B, err := DenseFromRows("B", b)
	if err != nil {
		return nil, err
	}
	C, err := DenseFromRows("C", c)
	if err != nil {
		return nil, err
	}
	D, err := DenseFromRows("D", d)
	if err != nil {
		return nil, err
	}
	return New(A, B, C, D)
}

// Scalar builds a first-order single-input single-output system.
func Scalar(a, b, c, d float64) (*LinearSystem, error) {
	return New(
		mat.NewDense(1, 1, []float64{a}),
		mat.NewDense(1, 1, []float64{b}),
		mat.NewDense(1, 1, []float64{c}),
		mat.NewDense(1, 1, []float64{d}),
	)
}

// DenseFromRows converts a rectangular nested slice into a matrix.
func DenseFromRows(name string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMatrix, name)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &DimensionError{
				Name: fmt.Sprintf("%s row %d", name, i),
				Got:  fmt.Sprintf("%d entries", len(row)),
				Want: fmt.Sprintf("%d entries", cols),
			}
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Validate checks the standard state-space shape rules: A square, B with
// as many rows as A, C with as many columns as A, and D matching the rows
// of C and the columns of B.
func Validate(A, B, C, D mat.Matrix) error {
	for _, m := range []struct {
		name string
		m    mat.Matrix
	}{{"A", A}, {"B", B}, {"C", C}, {"D", D}} {
		if m.m == nil {
			return fmt.Errorf("%w: %s is nil", ErrEmptyMatrix, m.name)
		}
		if r, c := m.m.Dims(); r == 0 || c == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyMatrix, m.name)
		}
	}

	ar, ac := A.Dims()
	br, bc := B.Dims()
	cr, cc := C.Dims()
	dr, dc := D.Dims()
	switch {
	case ar != ac:
		return dimErr("A", ar, ac, "square")
	case br != ar:
		return dimErr("B", br, bc, fmt.Sprintf("%d×m", ar))
	case cc != ar:
		return dimErr("C", cr, cc, fmt.Sprintf("p×%d", ar))
	case dr != cr || dc != bc:
		return dimErr("D", dr, dc, fmt.Sprintf("%d×%d", cr, bc))
	}
	return nil
}

// Order is the state dimension n.
func (s *LinearSystem) Order() int {
	n, _ := s.a.Dims()
	return n
}

// Inputs is the input dimension m.
func (s *LinearSystem) Inputs() int {
	_, m := s.d.Dims()
	return m
}

// Outputs is the output dimension p.
func (s *LinearSystem) Outputs() int {
	p, _ := s.d.Dims()
	return p
}

func (s *LinearSystem) A() *mat.Dense { return mat.DenseCopyOf(s.a) }
func (s *LinearSystem) B() *mat.Dense { return mat.DenseCopyOf(s.b) }
func (s *LinearSystem) C() *mat.Dense { return mat.DenseCopyOf(s.c) }
func (s *LinearSystem) D() *mat.Dense { return mat.DenseCopyOf(s.d) }

// TransferFunction returns G(z) = C (zI - A)^-1 B + D.
func (s *LinearSystem) TransferFunction() *poly.TransferMatrix { return s.g }

// HasFeedthrough reports whether any entry of D is non-zero.
func (s *LinearSystem) HasFeedthrough() bool {
	r, c := s.d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if s.d.At(i, j) != 0 {
				return true
			}
		}
	}
	return false
}

func (s *LinearSystem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A = \n%v\n", mat.Formatted(s.a))
	fmt.Fprintf(&sb, "B = \n%v\n", mat.Formatted(s.b))
	fmt.Fprintf(&sb, "C = \n%v\n", mat.Formatted(s.c))
	fmt.Fprintf(&sb, "D = \n%v", mat.Formatted(s.d))
	return sb.String()
}
