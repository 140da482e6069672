// Package zeta derives the spectral signal used to animate and sonify a
// rendered manifold.
//
// The imaginary parts of the first non-trivial Riemann zeta zeros serve
// purely as a fixed, aesthetically meaningful frequency basis; nothing in
// this package depends on analytic number theory beyond the constants.
// The generator is a pure function of manifold metrics.
package zeta

import (
	"math"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

// zeroIm holds the imaginary parts of the first five non-trivial zeros of
// the Riemann zeta function.
var zeroIm = [5]float64{14.134725, 21.022040, 25.010858, 30.424876, 32.935062}

// Frequency clamp bounds in Hz. The perturbed frequencies must stay inside
// the band the spectral animator is tuned for.
const (
	MinFrequency = 14.0
	MaxFrequency = 35.0
)

// Envelope constants. decay controls how fast amplitudes fall off by
// index; damping scales how strongly epsilon quiets the whole spectrum.
// damping < 1 keeps the envelope strictly positive, which in turn keeps
// the amplitude sequence strictly decreasing.
const (
	decay   = 2.0
	damping = 0.5
)

// Perturbation weights applied to each base frequency.
const (
	curvatureWeight = 0.2
	epsilonWeight   = 0.5
)

// Source records the parameter pair a spectrum was derived from.
type Source struct {
	CurvatureK float64 `json:"curvatureK"`
	Epsilon    float64 `json:"epsilon"`
}

// Spectrum is a five-component frequency/amplitude signal. Frequencies are
// in [14,35] Hz; amplitudes form a non-increasing envelope in [0,1],
// ordered to match the zero order.
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Amplitudes  []float64 `json:"amplitudes"`
	Source      Source    `json:"source"`
}

// FromMetrics derives the spectrum for the given manifold metrics.
func FromMetrics(m manifold.Metrics) Spectrum {
	return Generate(m.CurvatureK, m.Epsilon)
}

// Generate derives the spectrum from a raw curvature/epsilon pair. Exposed
// separately so the simulate path can produce spectra for synthetic
// packets without fabricating metrics.
func Generate(curvatureK, epsilon float64) Spectrum {
	frequencies := make([]float64, len(zeroIm))
	amplitudes := make([]float64, len(zeroIm))

	for i, z := range zeroIm {
		f := z + curvatureK*curvatureWeight + epsilon*epsilonWeight
		frequencies[i] = clamp(f, MinFrequency, MaxFrequency)

		a := math.Exp(-float64(i)/decay) * (1 - epsilon*damping)
		amplitudes[i] = clamp(a, 0, 1)
	}

	return Spectrum{
		Frequencies: frequencies,
		Amplitudes:  amplitudes,
		Source:      Source{CurvatureK: curvatureK, Epsilon: epsilon},
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
