// Package metrics summarizes simulated trajectories.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

// Metric accumulates a scalar over the steps of a trajectory. y is nil for
// Lur'e trajectories.
type Metric interface {
	Name() string
	Observe(x, y, u mat.Vector, k int)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded with every stored run.
func Defaults(threshold float64) []Metric {
	return []Metric{
		NewPeakStateNorm(),
		NewFinalStateNorm(),
		NewInputEnergy(),
		NewBounded(threshold),
	}
}

// Evaluate resets each metric, feeds it every step of tr and returns the
// values by name.
func Evaluate(tr *linsys.Trajectory, ms ...Metric) (map[string]float64, error) {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		if _, dup := out[m.Name()]; dup {
			return nil, fmt.Errorf("duplicate metric: %s", m.Name())
		}
		out[m.Name()] = 0
		m.Reset()
	}
	for k := 0; k < tr.Len(); k++ {
		var y mat.Vector
		if tr.HasOutputs() {
			y = tr.Outputs[k]
		}
		for _, m := range ms {
			m.Observe(tr.States[k], y, tr.Inputs[k], k)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out, nil
}
