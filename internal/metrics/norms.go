package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type PeakStateNorm struct {
	name string
	peak float64
}

func NewPeakStateNorm() *PeakStateNorm {
	return &PeakStateNorm{name: "peak_state_norm"}
}

func (p *PeakStateNorm) Name() string { return p.name }

func (p *PeakStateNorm) Observe(x, y, u mat.Vector, k int) {
	p.peak = math.Max(p.peak, mat.Norm(x, 2))
}

func (p *PeakStateNorm) Value() float64 { return p.peak }

func (p *PeakStateNorm) Reset() { p.peak = 0 }

type FinalStateNorm struct {
	name string
	last float64
}

func NewFinalStateNorm() *FinalStateNorm {
	return &FinalStateNorm{name: "final_state_norm"}
}

func (f *FinalStateNorm) Name() string { return f.name }

func (f *FinalStateNorm) Observe(x, y, u mat.Vector, k int) {
	f.last = mat.Norm(x, 2)
}

func (f *FinalStateNorm) Value() float64 { return f.last }

func (f *FinalStateNorm) Reset() { f.last = 0 }
