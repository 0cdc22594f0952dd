package metrics

import (
	"gonum.org/v1/gonum/mat"
)

// InputEnergy is the sum of ||u[k]||^2 over the run.
type InputEnergy struct {
	name string
	sum  float64
}

func NewInputEnergy() *InputEnergy {
	return &InputEnergy{
		name: "input_energy",
	}
}

func (e *InputEnergy) Name() string {
	return e.name
}

func (e *InputEnergy) Observe(x, y, u mat.Vector, k int) {
	e.sum += mat.Dot(u, u)
}

func (e *InputEnergy) Value() float64 {
	return e.sum
}

func (e *InputEnergy) Reset() {
	e.sum = 0
}
