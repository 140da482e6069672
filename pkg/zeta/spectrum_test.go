package zeta

import (
	"reflect"
	"testing"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

func assertSpectrumInvariants(t *testing.T, s Spectrum) {
	t.Helper()
	if len(s.Frequencies) != 5 || len(s.Amplitudes) != 5 {
		t.Fatalf("expected 5 components, got %d/%d", len(s.Frequencies), len(s.Amplitudes))
	}
	for i, f := range s.Frequencies {
		if f < MinFrequency || f > MaxFrequency {
			t.Errorf("frequency[%d] out of band: %v", i, f)
		}
	}
	for i, a := range s.Amplitudes {
		if a < 0 || a > 1 {
			t.Errorf("amplitude[%d] out of range: %v", i, a)
		}
		if i > 0 && a > s.Amplitudes[i-1] {
			t.Errorf("amplitude envelope increases at index %d: %v > %v", i, a, s.Amplitudes[i-1])
		}
	}
}

func TestGenerate_InvariantsAcrossParameterGrid(t *testing.T) {
	for _, k := range []float64{-5, -2.3, -1, 0, 1, 2.7, 5} {
		for _, eps := range []float64{0, 0.25, 0.5, 1} {
			assertSpectrumInvariants(t, Generate(k, eps))
		}
	}
}

func TestGenerate_StrictlyDecreasingEnvelope(t *testing.T) {
	s := Generate(0, 1) // worst case: maximum damping
	for i := 1; i < len(s.Amplitudes); i++ {
		if s.Amplitudes[i] >= s.Amplitudes[i-1] {
			t.Fatalf("expected strictly decreasing amplitudes, got %v", s.Amplitudes)
		}
	}
}

func TestGenerate_SourceRecordsInputs(t *testing.T) {
	s := Generate(-2.5, 0.35)
	if s.Source.CurvatureK != -2.5 || s.Source.Epsilon != 0.35 {
		t.Errorf("unexpected source: %+v", s.Source)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	if !reflect.DeepEqual(Generate(1.5, 0.4), Generate(1.5, 0.4)) {
		t.Error("expected identical spectra for identical inputs")
	}
}

func TestGenerate_ZeroPerturbationMatchesZetaZeros(t *testing.T) {
	s := Generate(0, 0)
	expected := []float64{14.134725, 21.022040, 25.010858, 30.424876, 32.935062}
	if !reflect.DeepEqual(s.Frequencies, expected) {
		t.Errorf("expected unperturbed zeta zeros, got %v", s.Frequencies)
	}
	if s.Amplitudes[0] != 1 {
		t.Errorf("expected leading amplitude 1 with zero damping, got %v", s.Amplitudes[0])
	}
}

func TestFromMetrics_UsesMetricParameters(t *testing.T) {
	m := manifold.Metrics{CurvatureK: 4.2, Epsilon: 0.9}
	s := FromMetrics(m)
	if s.Source.CurvatureK != 4.2 || s.Source.Epsilon != 0.9 {
		t.Errorf("unexpected source: %+v", s.Source)
	}
	assertSpectrumInvariants(t, s)
}
