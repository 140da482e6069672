package engine

import (
	"os"
	"strconv"
)

// DefaultExactConcurrency bounds how many exact-mode computations may run
// at once. The exact path is O(N^4) over the sample, and unbounded
// parallelism would let a burst of exact requests starve the heuristic
// path.
const DefaultExactConcurrency = 4

type Config struct {
	// ExactConcurrency is the maximum number of concurrent exact-mode
	// computations.
	ExactConcurrency int64
}

// NewConfig builds the engine configuration from environment variables.
func NewConfig() Config {
	concurrency := int64(DefaultExactConcurrency)
	if v := os.Getenv("ENGINE_EXACT_CONCURRENCY"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			concurrency = parsed
		}
	}
	return Config{ExactConcurrency: concurrency}
}
