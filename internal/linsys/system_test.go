package linsys

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d [][]float64
		wantErr    error
		wantName   string
	}{
		{
			name: "scalar",
			a:    [][]float64{{0.5}}, b: [][]float64{{3}}, c: [][]float64{{2}}, d: [][]float64{{1}},
		},
		{
			name: "nonsquare io",
			a:    [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			b:    [][]float64{{1, 2}, {3, 4}, {5, 6}},
			c:    [][]float64{{1, 2, 3}},
			d:    [][]float64{{100, 1000}},
		},
		{
			name: "A not square",
			a:    [][]float64{{1, 2}}, b: [][]float64{{1}}, c: [][]float64{{1, 1}}, d: [][]float64{{0}},
			wantErr: ErrDimensionMismatch, wantName: "A",
		},
		{
			name: "B rows",
			a:    [][]float64{{1, 0}, {0, 1}}, b: [][]float64{{1}}, c: [][]float64{{1, 1}}, d: [][]float64{{0}},
			wantErr: ErrDimensionMismatch, wantName: "B",
		},
		{
			name: "C cols",
			a:    [][]float64{{1, 0}, {0, 1}}, b: [][]float64{{1}, {1}}, c: [][]float64{{1}}, d: [][]float64{{0}},
			wantErr: ErrDimensionMismatch, wantName: "C",
		},
		{
			name: "D shape",
			a:    [][]float64{{1}}, b: [][]float64{{1, 2}}, c: [][]float64{{1}}, d: [][]float64{{0}},
			wantErr: ErrDimensionMismatch, wantName: "D",
		},
		{
			name: "empty",
			a:    [][]float64{}, b: [][]float64{{1}}, c: [][]float64{{1}}, d: [][]float64{{0}},
			wantErr: ErrEmptyMatrix,
		},
		{
			name: "ragged",
			a:    [][]float64{{1, 0}, {0}}, b: [][]float64{{1}, {1}}, c: [][]float64{{1, 1}}, d: [][]float64{{0}},
			wantErr: ErrDimensionMismatch, wantName: "A row 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.a, tt.b, tt.c, tt.d)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantName == "" {
				return
			}
			var de *DimensionError
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not a *DimensionError", err)
			}
			if de.Name != tt.wantName {
				t.Errorf("DimensionError.Name = %q, want %q", de.Name, tt.wantName)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	one := mat.NewDense(1, 1, []float64{1})
	if _, err := New(one, nil, one, one); !errors.Is(err, ErrEmptyMatrix) {
		t.Errorf("error = %v, want ErrEmptyMatrix", err)
	}
}

func TestDimensions(t *testing.T) {
	sys, err := FromRows(
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{1, 2, 3}},
		[][]float64{{100, 1000}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if sys.Order() != 3 || sys.Inputs() != 2 || sys.Outputs() != 1 {
		t.Errorf("dims = (%d, %d, %d), want (3, 2, 1)", sys.Order(), sys.Inputs(), sys.Outputs())
	}
	if !sys.HasFeedthrough() {
		t.Error("HasFeedthrough = false, want true")
	}
}

func TestAccessorsCopy(t *testing.T) {
	sys, err := Scalar(0.5, 3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	a := sys.A()
	a.Set(0, 0, 42)
	if got := sys.A().At(0, 0); got != 0.5 {
		t.Errorf("A mutated through accessor: %v", got)
	}
}

func TestTransferFunctionScalar(t *testing.T) {
	sys, err := Scalar(0.5, 3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	g := sys.TransferFunction()
	if !g.IsSISO() {
		t.Fatal("scalar system should be SISO")
	}
	if got, want := g.At(0, 0).String(), "(z + 5.5)/(z - 0.5)"; got != want {
		t.Errorf("G = %q, want %q", got, want)
	}
}

func TestTransferFunctionCancels(t *testing.T) {
	// B = C = 0 leaves G = D.
	sys, err := Scalar(2, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := sys.TransferFunction().At(0, 0).String(); got != "1" {
		t.Errorf("G = %q, want 1", got)
	}
}

func TestTransferFunctionRepeatedPole(t *testing.T) {
	// A = I3 puts a triple pole at 1; each entry keeps only one of them.
	sys, err := FromRows(
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{1, 2, 3}},
		[][]float64{{100, 1000}},
	)
	if err != nil {
		t.Fatal(err)
	}
	g := sys.TransferFunction()

	tests := []struct {
		col      int
		num, den []float64
	}{
		{col: 0, num: []float64{-78, 100}, den: []float64{-1, 1}},
		{col: 1, num: []float64{-972, 1000}, den: []float64{-1, 1}},
	}
	for _, tt := range tests {
		r := g.At(0, tt.col)
		if r.Num.Degree() != 1 || r.Den.Degree() != 1 {
			t.Fatalf("G[0][%d] = %s, want degree 1 over degree 1", tt.col, r)
		}
		for i := range tt.num {
			if math.Abs(r.Num[i]-tt.num[i]) > 1e-9 || math.Abs(r.Den[i]-tt.den[i]) > 1e-9 {
				t.Errorf("G[0][%d] = %s, want num %v den %v", tt.col, r, tt.num, tt.den)
			}
		}
	}
}

func TestTransferFunctionMatchesResolvent(t *testing.T) {
	sys, err := FromRows(
		[][]float64{{0.5, 0}, {0, 0.5}},
		[][]float64{{2, 1}, {1, 2}},
		[][]float64{{1, 0}, {0, 1}},
		[][]float64{{4, 4}, {4, 4}},
	)
	if err != nil {
		t.Fatal(err)
	}

	// G(3) = C (3I - A)^-1 B + D = B/2.5 + D
	vals := sys.TransferFunction().Eval(3)
	want := [][]float64{{4.8, 4.4}, {4.4, 4.8}}
	for i := range want {
		for j := range want[i] {
			if d := cmplx.Abs(vals[i][j] - complex(want[i][j], 0)); d > 1e-9 {
				t.Errorf("G(3)[%d][%d] = %v, want %v", i, j, vals[i][j], want[i][j])
			}
		}
	}
}

func TestCharacteristicPolynomial(t *testing.T) {
	sys, err := FromRows(
		[][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}},
		[][]float64{{1}, {1}, {1}},
		[][]float64{{1, 2, 3}},
		[][]float64{{10}},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := sys.CharacteristicPolynomial()
	want := []float64{-6, 11, -6, 1}
	if len(got) != len(want) {
		t.Fatalf("det = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("det = %v, want %v", got, want)
			break
		}
	}
	if sys.IsStable() {
		t.Error("poles 1, 2, 3 reported stable")
	}
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		a    float64
		want bool
	}{
		{0.5, true},
		{-0.99, true},
		{1, false},
		{4, false},
	}
	for _, tt := range tests {
		sys, err := Scalar(tt.a, 1, 1, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := sys.IsStable(); got != tt.want {
			t.Errorf("IsStable(a=%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	sys, err := Scalar(0.5, 3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	s := sys.String()
	for _, part := range []string{"A = \n", "B = \n", "C = \n", "D = \n"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() missing %q:\n%s", part, s)
		}
	}
}
