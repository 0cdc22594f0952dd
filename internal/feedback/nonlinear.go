// Package feedback provides named static nonlinearities for closing a
// linear plant into a Lur'e system.
package feedback

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Feedback is a static map applied to the plant output C x. Apply has the
// signature of linsys.Nonlinearity.
type Feedback interface {
	Apply(y mat.Vector) (*mat.VecDense, error)
	String() string
}

// Gain is u = K y.
type Gain struct {
	K float64
}

func NewGain(k float64) *Gain {
	return &Gain{K: k}
}

func (g *Gain) Apply(y mat.Vector) (*mat.VecDense, error) {
	out := mat.NewVecDense(y.Len(), nil)
	out.ScaleVec(g.K, y)
	return out, nil
}

func (g *Gain) String() string { return fmt.Sprintf("gain(k=%g)", g.K) }

// NegLog is u = -log(1 + ||y||), repeated over Dim inputs.
type NegLog struct {
	Dim int
}

func NewNegLog(dim int) *NegLog {
	if dim <= 0 {
		dim = 1
	}
	return &NegLog{Dim: dim}
}

func (n *NegLog) Apply(y mat.Vector) (*mat.VecDense, error) {
	v := -math.Log1p(mat.Norm(y, 2))
	out := mat.NewVecDense(n.Dim, nil)
	for i := 0; i < n.Dim; i++ {
		out.SetVec(i, v)
	}
	return out, nil
}

func (n *NegLog) String() string { return "neglog" }

// Saturation clips each component of K y to [-Limit, Limit].
type Saturation struct {
	K     float64
	Limit float64
}

func NewSaturation(k, limit float64) (*Saturation, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("saturation limit must be positive, got %g", limit)
	}
	return &Saturation{K: k, Limit: limit}, nil
}

func (s *Saturation) Apply(y mat.Vector) (*mat.VecDense, error) {
	return elementwise(y, func(v float64) float64 {
		return math.Max(-s.Limit, math.Min(s.Limit, s.K*v))
	}), nil
}

func (s *Saturation) String() string {
	return fmt.Sprintf("saturation(k=%g, limit=%g)", s.K, s.Limit)
}

// DeadZone is zero on [-Width, Width] and K (|y| - Width) sign(y) outside.
type DeadZone struct {
	K     float64
	Width float64
}

func NewDeadZone(k, width float64) (*DeadZone, error) {
	if width < 0 {
		return nil, fmt.Errorf("dead zone width must be non-negative, got %g", width)
	}
	return &DeadZone{K: k, Width: width}, nil
}

func (d *DeadZone) Apply(y mat.Vector) (*mat.VecDense, error) {
	return elementwise(y, func(v float64) float64 {
		switch {
		case v > d.Width:
			return d.K * (v - d.Width)
		case v < -d.Width:
			return d.K * (v + d.Width)
		}
		return 0
	}), nil
}

func (d *DeadZone) String() string {
	return fmt.Sprintf("deadzone(k=%g, width=%g)", d.K, d.Width)
}

// Tanh is u = K tanh(y), componentwise.
type Tanh struct {
	K float64
}

func NewTanh(k float64) *Tanh {
	return &Tanh{K: k}
}

func (t *Tanh) Apply(y mat.Vector) (*mat.VecDense, error) {
	return elementwise(y, func(v float64) float64 { return t.K * math.Tanh(v) }), nil
}

func (t *Tanh) String() string { return fmt.Sprintf("tanh(k=%g)", t.K) }

func elementwise(y mat.Vector, f func(float64) float64) *mat.VecDense {
	out := mat.NewVecDense(y.Len(), nil)
	for i := 0; i < y.Len(); i++ {
		out.SetVec(i, f(y.AtVec(i)))
	}
	return out
}
