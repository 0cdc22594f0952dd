package linsys

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// DefaultQuadratureNodes is the Gauss-Legendre order used by Discretize.
const DefaultQuadratureNodes = 20

// Discretize converts a continuous-time system to discrete time with a
// sample-and-hold of width delta:
//
//	A_d = exp(A delta)
//	B_d = (integral_0^delta exp(A xi) dxi) B
//
// C and D are unchanged.
func (s *LinearSystem) Discretize(delta float64) (*LinearSystem, error) {
	return s.DiscretizeN(delta, DefaultQuadratureNodes)
}

// DiscretizeN is Discretize with an explicit number of quadrature nodes.
func (s *LinearSystem) DiscretizeN(delta float64, nodes int) (*LinearSystem, error) {
	if !(delta > 0) || math.IsInf(delta, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDelta, delta)
	}
	if nodes <= 0 {
		return nil, fmt.Errorf("linsys: quadrature nodes must be positive, got %d", nodes)
	}

	n := s.Order()
	var scaled, ad mat.Dense
	scaled.Scale(delta, s.a)
	ad.Exp(&scaled)

	// Every entry integral visits the same nodes, so each exp(A xi) is
	// computed once.
	cache := make(map[float64]*mat.Dense, nodes)
	expAt := func(xi float64) *mat.Dense {
		if e, ok := cache[xi]; ok {
			return e
		}
		var axi mat.Dense
		axi.Scale(xi, s.a)
		e := mat.NewDense(n, n, nil)
		e.Exp(&axi)
		cache[xi] = e
		return e
	}

	integral := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f := func(xi float64) float64 { return expAt(xi).At(i, j) }
			integral.Set(i, j, quad.Fixed(f, 0, delta, nodes, quad.Legendre{}, 0))
		}
	}

	var bd mat.Dense
	bd.Mul(integral, s.b)
	return New(&ad, &bd, s.c, s.d)
}
