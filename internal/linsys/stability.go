package linsys

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultBoundaryPoints is the number of unit-circle samples used for the
// stabilizing-gain boundary.
const DefaultBoundaryPoints = 100

// StabilityBoundary samples 1/G(z) on the unit circle at n+1 equally
// spaced angles from 0 to 2π inclusive. The returned anchor is 1/G(0), a
// point known to lie in the set of stabilizing gains. Only SISO systems
// have a boundary.
func (s *LinearSystem) StabilityBoundary(n int) ([]complex128, complex128, error) {
	if !s.g.IsSISO() {
		p, m := s.g.Dims()
		return nil, 0, fmt.Errorf("%w: transfer function is %d×%d", ErrNotSISO, p, m)
	}
	if n <= 0 {
		n = DefaultBoundaryPoints
	}
	inv, err := s.g.At(0, 0).Inverse()
	if err != nil {
		return nil, 0, fmt.Errorf("linsys: stability boundary: %w", err)
	}

	h := 2 * math.Pi / float64(n)
	points := make([]complex128, n+1)
	for k := range points {
		points[k] = inv.Eval(cmplx.Rect(1, float64(k)*h))
	}
	return points, inv.Eval(0), nil
}
