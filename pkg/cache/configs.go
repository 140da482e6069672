package cache

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the metrics cache. The TTL is deliberately short: document
// embeddings change whenever the ingestion pipeline reprocesses a source,
// and a stale classification is worse than a recomputation.
const (
	DefaultTTL           = 120 * time.Second
	DefaultSweepInterval = time.Minute
)

// shardCount is the number of independently locked map shards. Reads
// dominate this cache, so spreading keys over shards keeps contention low
// without a reader-writer lock per entry.
const shardCount = 16

type Config struct {
	// TTL is how long a computed result stays servable.
	TTL time.Duration `yaml:"ttl" envconfig:"CACHE_TTL_SECONDS"`

	// SweepInterval is how often the background sweeper removes expired
	// entries. Eviction is lazy on read regardless; the sweep only bounds
	// memory held by keys that are never read again.
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"CACHE_SWEEP_INTERVAL_SECONDS"`
}

// NewConfig reads the cache configuration from the environment.
func NewConfig() Config {
	return Config{
		TTL:           getenvSeconds("CACHE_TTL_SECONDS", DefaultTTL),
		SweepInterval: getenvSeconds("CACHE_SWEEP_INTERVAL_SECONDS", DefaultSweepInterval),
	}
}

func getenvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
