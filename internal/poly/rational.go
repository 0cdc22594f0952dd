package poly

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroDenominator is returned when a rational function would divide by
// the zero polynomial.
var ErrZeroDenominator = errors.New("poly: zero denominator")

// DefaultCancelTol is the relative remainder size under which Euclid's
// algorithm treats two polynomials as sharing a factor.
const DefaultCancelTol = 1e-9

// Rational is Num(z) / Den(z).
type Rational struct {
	Num Poly
	Den Poly
}

// NewRational returns num/den with the denominator normalized to be monic.
func NewRational(num, den Poly) (Rational, error) {
	if den.IsZero() {
		return Rational{}, ErrZeroDenominator
	}
	lead := den.Lead()
	return Rational{Num: num.Scale(1 / lead), Den: den.Scale(1 / lead)}, nil
}

// Eval evaluates the rational function at z. Poles evaluate to complex
// infinity.
func (r Rational) Eval(z complex128) complex128 {
	return r.Num.Eval(z) / r.Den.Eval(z)
}

// Inverse returns 1/r.
func (r Rational) Inverse() (Rational, error) {
	if r.Num.IsZero() {
		return Rational{}, ErrZeroDenominator
	}
	return NewRational(r.Den, r.Num)
}

// AddConst returns r + c for a constant c.
func (r Rational) AddConst(c float64) Rational {
	return Rational{Num: r.Num.Add(r.Den.Scale(c)), Den: r.Den}
}

// Reduce divides numerator and denominator by their common factor, found
// with [GCD] at tolerance tol.
func (r Rational) Reduce(tol float64) Rational {
	if r.Num.IsZero() {
		return Rational{Num: Poly{}, Den: Const(1)}
	}
	g := GCD(r.Num, r.Den, tol)
	if g.Degree() < 1 {
		return r
	}
	num, _ := r.Num.DivMod(g)
	den, _ := r.Den.DivMod(g)
	out, err := NewRational(num, den)
	if err != nil {
		return r
	}
	return out
}

// Equal reports whether r and q have equal coefficients within tol.
// Both are compared in monic-denominator form.
func (r Rational) Equal(q Rational, tol float64) bool {
	a, err := NewRational(r.Num, r.Den)
	if err != nil {
		return false
	}
	b, err := NewRational(q.Num, q.Den)
	if err != nil {
		return false
	}
	return a.Num.Equal(b.Num, tol) && a.Den.Equal(b.Den, tol)
}

func (r Rational) String() string {
	if r.Den.Degree() == 0 {
		return r.Num.Scale(1 / r.Den.Lead()).String()
	}
	return fmt.Sprintf("(%s)/(%s)", r.Num, r.Den)
}

// TransferMatrix is a p×m matrix of rational functions.
type TransferMatrix struct {
	rows, cols int
	entries    []Rational
}

// NewTransferMatrix returns a rows×cols matrix of zero functions.
func NewTransferMatrix(rows, cols int) *TransferMatrix {
	t := &TransferMatrix{rows: rows, cols: cols, entries: make([]Rational, rows*cols)}
	for i := range t.entries {
		t.entries[i] = Rational{Num: Poly{}, Den: Const(1)}
	}
	return t
}

func (t *TransferMatrix) Dims() (r, c int) { return t.rows, t.cols }

func (t *TransferMatrix) At(i, j int) Rational {
	t.check(i, j)
	return t.entries[i*t.cols+j]
}

func (t *TransferMatrix) Set(i, j int, r Rational) {
	t.check(i, j)
	t.entries[i*t.cols+j] = r
}

func (t *TransferMatrix) check(i, j int) {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		panic(fmt.Sprintf("poly: index (%d, %d) out of range for %d×%d transfer matrix", i, j, t.rows, t.cols))
	}
}

// Eval evaluates every entry at z, row-major.
func (t *TransferMatrix) Eval(z complex128) [][]complex128 {
	out := make([][]complex128, t.rows)
	for i := range out {
		out[i] = make([]complex128, t.cols)
		for j := range out[i] {
			out[i][j] = t.At(i, j).Eval(z)
		}
	}
	return out
}

// IsSISO reports whether t is 1×1.
func (t *TransferMatrix) IsSISO() bool { return t.rows == 1 && t.cols == 1 }

func (t *TransferMatrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < t.rows; i++ {
		if i > 0 {
			sb.WriteString(",\n ")
		}
		sb.WriteString("[")
		for j := 0; j < t.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.At(i, j).String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")
	return sb.String()
}
