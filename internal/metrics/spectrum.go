package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k| for k = 0..n/2 of the mean-removed sequence.
func PowerSpectrum(vals []float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	mean := stat.Mean(vals, nil)
	centered := make([]float64, len(vals))
	for i, v := range vals {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(vals)/2+1)
	for k := range ps {
		ps[k] = cmplx.Abs(spectrum[k])
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency of vals in
// cycles per step, or 0 for sequences without oscillation.
func DominantFrequency(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	ps := PowerSpectrum(vals)
	best, peak := 0, 1e-12
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	return float64(best) / float64(len(vals))
}
