package linsys

import (
	"math/cmplx"

	"github.com/elvijs/linear-systems/internal/poly"
	"gonum.org/v1/gonum/mat"
)

// leverrier runs the Faddeev-LeVerrier recursion
//
//	M_1 = I,  M_k = A M_{k-1} + c_{n-k+1} I,  c_{n-k} = -tr(A M_k) / k
//
// returning the ascending coefficients of det(zI-A) and M_1..M_n, where
// adj(zI-A) = sum M_k z^{n-k}.
func leverrier(a *mat.Dense) ([]float64, []*mat.Dense) {
	n, _ := a.Dims()
	coeffs := make([]float64, n+1)
	coeffs[n] = 1
	ms := make([]*mat.Dense, n)
	prev := mat.NewDense(n, n, nil)
	for k := 1; k <= n; k++ {
		mk := mat.NewDense(n, n, nil)
		mk.Mul(a, prev)
		for i := 0; i < n; i++ {
			mk.Set(i, i, mk.At(i, i)+coeffs[n-k+1])
		}
		var am mat.Dense
		am.Mul(a, mk)
		coeffs[n-k] = -am.Trace() / float64(k)
		ms[k-1] = mk
		prev = mk
	}
	return coeffs, ms
}

// transferFunction computes G(z) = C adj(zI-A) B / det(zI-A) + D, each
// entry reduced by cancelling common roots.
func transferFunction(a, b, c, d *mat.Dense) *poly.TransferMatrix {
	n, _ := a.Dims()
	p, _ := c.Dims()
	_, m := b.Dims()

	coeffs, ms := leverrier(a)
	det := poly.New(coeffs...)

	// cmb[k-1] is the coefficient of z^{n-k} in C adj(zI-A) B.
	cmb := make([]*mat.Dense, n)
	for k, mk := range ms {
		var cm, r mat.Dense
		cm.Mul(c, mk)
		r.Mul(&cm, b)
		cmb[k] = &r
	}

	g := poly.NewTransferMatrix(p, m)
	for i := 0; i < p; i++ {
		for j := 0; j < m; j++ {
			num := make([]float64, n)
			for k := 1; k <= n; k++ {
				num[n-k] = cmb[k-1].At(i, j)
			}
			entry := poly.New(num...).Add(det.Scale(d.At(i, j)))
			r, err := poly.NewRational(entry, det)
			if err != nil {
				// det(zI-A) is monic of degree n >= 1.
				panic(err)
			}
			g.Set(i, j, r.Reduce(poly.DefaultCancelTol))
		}
	}
	return g
}

// CharacteristicPolynomial returns det(zI - A).
func (s *LinearSystem) CharacteristicPolynomial() poly.Poly {
	coeffs, _ := leverrier(s.a)
	return poly.New(coeffs...)
}

// Poles returns the eigenvalues of A, the roots of det(zI - A).
func (s *LinearSystem) Poles() []complex128 {
	var eig mat.Eigen
	if ok := eig.Factorize(s.a, mat.EigenNone); !ok {
		return s.CharacteristicPolynomial().Roots()
	}
	return eig.Values(nil)
}

// IsStable reports whether every pole lies strictly inside the unit circle.
func (s *LinearSystem) IsStable() bool {
	for _, p := range s.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}
