package poly

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Var is the formal variable used when printing polynomials.
const Var = "z"

// Poly is a real polynomial with coefficients in ascending powers:
// p(z) = c[0] + c[1] z + ... + c[n] z^n.
type Poly []float64

// New returns the polynomial with the given ascending coefficients,
// trailing zeros removed.
func New(coeffs ...float64) Poly {
	p := make(Poly, len(coeffs))
	copy(p, coeffs)
	return p.trim()
}

// Const returns the constant polynomial c.
func Const(c float64) Poly { return New(c) }

// Monomial returns c z^n.
func Monomial(c float64, n int) Poly {
	p := make(Poly, n+1)
	p[n] = c
	return p.trim()
}

func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// Degree returns the degree of p. The zero polynomial has degree -1.
func (p Poly) Degree() int { return len(p.trim()) - 1 }

// IsZero reports whether every coefficient is zero.
func (p Poly) IsZero() bool { return p.Degree() < 0 }

// Lead returns the leading coefficient, zero for the zero polynomial.
func (p Poly) Lead() float64 {
	q := p.trim()
	if len(q) == 0 {
		return 0
	}
	return q[len(q)-1]
}

func (p Poly) Add(q Poly) Poly {
	n := max(len(p), len(q))
	r := make(Poly, n)
	for i := range r {
		if i < len(p) {
			r[i] += p[i]
		}
		if i < len(q) {
			r[i] += q[i]
		}
	}
	return r.trim()
}

func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Scale(-1))
}

func (p Poly) Scale(f float64) Poly {
	r := make(Poly, len(p))
	for i, c := range p {
		r[i] = c * f
	}
	return r.trim()
}

func (p Poly) Mul(q Poly) Poly {
	p, q = p.trim(), q.trim()
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	r := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			r[i+j] += a * b
		}
	}
	return r.trim()
}

// DivMod divides p by d and returns the quotient and the remainder, with
// deg(rem) < deg(d). It panics if d is the zero polynomial.
func (p Poly) DivMod(d Poly) (quo, rem Poly) {
	d = d.trim()
	if len(d) == 0 {
		panic("poly: division by the zero polynomial")
	}
	rem = append(Poly(nil), p.trim()...)
	if len(rem) < len(d) {
		return Poly{}, rem
	}
	quo = make(Poly, len(rem)-len(d)+1)
	lead := d[len(d)-1]
	for i := len(quo) - 1; i >= 0; i-- {
		c := rem[i+len(d)-1] / lead
		quo[i] = c
		for j, dj := range d {
			rem[i+j] -= c * dj
		}
		rem[i+len(d)-1] = 0
	}
	return quo.trim(), rem[:len(d)-1].trim()
}

// GCD returns the monic greatest common divisor of p and q by Euclid's
// algorithm. A remainder whose largest coefficient is within tol of the
// dividend's (relatively) counts as zero, so nearly shared factors
// cancel. GCD of two zero polynomials is zero.
func GCD(p, q Poly, tol float64) Poly {
	a, b := p.trim(), q.trim()
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		if len(a) == 0 {
			return Poly{}
		}
		return a.Scale(1 / a.Lead())
	}
	for {
		b = b.Scale(1 / b.Lead())
		_, r := a.DivMod(b)
		if len(r) == 0 || r.maxAbs() <= tol*a.maxAbs() {
			return b
		}
		a, b = b, r
	}
}

func (p Poly) maxAbs() float64 {
	m := 0.0
	for _, c := range p {
		m = math.Max(m, math.Abs(c))
	}
	return m
}

// Eval evaluates p at a complex point using Horner's scheme.
func (p Poly) Eval(z complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*z + complex(p[i], 0)
	}
	return acc
}

// EvalReal evaluates p at a real point.
func (p Poly) EvalReal(x float64) float64 {
	acc := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*x + p[i]
	}
	return acc
}

// Roots returns the complex roots of p as the eigenvalues of its
// companion matrix. Constant polynomials have no roots.
func (p Poly) Roots() []complex128 {
	q := p.trim()
	n := len(q) - 1
	if n < 1 {
		return nil
	}
	lead := q[n]
	comp := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		comp.Set(i, n-1, -q[i]/lead)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil
	}
	return eig.Values(nil)
}

// FromRoots builds lead * prod(z - r). Imaginary residue left over from
// conjugate pairs is discarded.
func FromRoots(lead float64, roots []complex128) Poly {
	acc := []complex128{complex(lead, 0)}
	for _, r := range roots {
		next := make([]complex128, len(acc)+1)
		for i, c := range acc {
			next[i+1] += c
			next[i] -= c * r
		}
		acc = next
	}
	p := make(Poly, len(acc))
	for i, c := range acc {
		p[i] = real(c)
	}
	return p.trim()
}

// Equal reports whether p and q agree coefficient-wise within tol.
func (p Poly) Equal(q Poly, tol float64) bool {
	n := max(len(p), len(q))
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(p) {
			a = p[i]
		}
		if i < len(q) {
			b = q[i]
		}
		if math.Abs(a-b) > tol {
			return false
		}
	}
	return true
}

func (p Poly) String() string {
	q := p.trim()
	if len(q) == 0 {
		return "0"
	}
	var sb strings.Builder
	first := true
	for i := len(q) - 1; i >= 0; i-- {
		c := q[i]
		if c == 0 {
			continue
		}
		switch {
		case first && c < 0:
			sb.WriteString("-")
		case !first && c < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		first = false
		a := math.Abs(c)
		if a != 1 || i == 0 {
			sb.WriteString(formatCoeff(a))
		}
		switch {
		case i == 1:
			sb.WriteString(Var)
		case i > 1:
			sb.WriteString(Var + "^" + strconv.Itoa(i))
		}
	}
	return sb.String()
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'g', 6, 64)
}
