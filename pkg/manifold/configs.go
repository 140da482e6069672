package manifold

import (
	"os"
	"strconv"
)

// Defaults for the analyzer configuration.
const (
	// DefaultSampleCap bounds the heuristic-path sample size.
	DefaultSampleCap = 100

	// DefaultExactSampleCap bounds the exact-path sample size; the
	// four-point scan is O(N^4), so 30 keeps it near 27k tuples.
	DefaultExactSampleCap = 30

	// DefaultTupleBudget caps the number of 4-tuples the exact path may
	// visit before falling back to the heuristic delta.
	DefaultTupleBudget = 30000
)

type Config struct {
	// ExactDelta enables the opt-in O(N^4) four-point computation.
	// Heuristic-only when false; callers requesting exact mode while the
	// flag is off still get the heuristic result with ExactUsed=false.
	ExactDelta bool `yaml:"exact_delta" envconfig:"EXACT_DELTA"`

	// SampleCap is the maximum heuristic sample size.
	SampleCap int `yaml:"sample_cap" envconfig:"SAMPLE_CAP"`

	// ExactSampleCap is the maximum exact-path sample size.
	ExactSampleCap int `yaml:"exact_sample_cap" envconfig:"EXACT_SAMPLE_CAP"`

	// TupleBudget is the exact-path iteration budget.
	TupleBudget int `yaml:"exact_tuple_budget" envconfig:"EXACT_TUPLE_BUDGET"`
}

// NewConfig reads the analyzer configuration from the environment.
func NewConfig() Config {
	return Config{
		ExactDelta:     os.Getenv("EXACT_DELTA") == "true",
		SampleCap:      getenvInt("SAMPLE_CAP", DefaultSampleCap),
		ExactSampleCap: getenvInt("EXACT_SAMPLE_CAP", DefaultExactSampleCap),
		TupleBudget:    getenvInt("EXACT_TUPLE_BUDGET", DefaultTupleBudget),
	}
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
