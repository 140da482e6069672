// Package cache holds recently computed manifold metrics so repeated
// requests for the same document skip the analyzer. It is an injectable
// component constructed once per process and passed by handle into the
// engine, never a package-level singleton.
package cache

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
	"github.com/cipheratlas/geometry-engine/pkg/observability"
)

// Store is the cache contract consumed by the engine.
type Store interface {
	// Get returns the cached metrics for a document/mode pair, or false if
	// absent or expired.
	Get(documentID string, mode manifold.Mode) (manifold.Metrics, bool)

	// Put stores freshly computed metrics for a document/mode pair.
	Put(documentID string, mode manifold.Mode, m manifold.Metrics)

	// Invalidate removes all mode variants for a document. Called when the
	// ingestion pipeline signals that its embeddings changed.
	Invalidate(documentID string)
}

type entry struct {
	metrics    manifold.Metrics
	insertedAt time.Time
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// MetricsCache is a sharded, TTL-bounded in-memory Store.
// All methods are safe for concurrent use.
type MetricsCache struct {
	cfg      Config
	shards   [shardCount]*shard
	observer observability.Observer

	// now is swapped out in tests for TTL control.
	now func() time.Time
}

// NewMetricsCache constructs an empty cache from configuration.
func NewMetricsCache(cfg Config) *MetricsCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	c := &MetricsCache{cfg: cfg, now: time.Now}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[string]entry)}
	}
	return c
}

// WithObserver sets the observer for this cache and returns the cache for
// method chaining. The observer receives get/put/evict events.
func (c *MetricsCache) WithObserver(obs observability.Observer) *MetricsCache {
	c.observer = obs
	return c
}

// WithClock overrides the cache's time source. Intended for tests.
func (c *MetricsCache) WithClock(now func() time.Time) *MetricsCache {
	c.now = now
	return c
}

func key(documentID string, mode manifold.Mode) string {
	return documentID + "|" + string(mode)
}

func (c *MetricsCache) shardFor(k string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k))
	return c.shards[h.Sum32()%shardCount]
}

// Get implements Store. Expired entries are evicted lazily here.
func (c *MetricsCache) Get(documentID string, mode manifold.Mode) (manifold.Metrics, bool) {
	start := c.now()
	k := key(documentID, mode)
	s := c.shardFor(k)

	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()

	if ok && start.Sub(e.insertedAt) >= c.cfg.TTL {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have
		// refreshed the entry.
		if cur, still := s.entries[k]; still && start.Sub(cur.insertedAt) >= c.cfg.TTL {
			delete(s.entries, k)
		}
		s.mu.Unlock()
		ok = false
	}

	c.observe("get", documentID, mode, start, ok)
	if !ok {
		return manifold.Metrics{}, false
	}
	return e.metrics, true
}

// Put implements Store.
func (c *MetricsCache) Put(documentID string, mode manifold.Mode, m manifold.Metrics) {
	start := c.now()
	k := key(documentID, mode)
	s := c.shardFor(k)

	s.mu.Lock()
	s.entries[k] = entry{metrics: m, insertedAt: start}
	s.mu.Unlock()

	c.observe("put", documentID, mode, start, true)
}

// Invalidate implements Store.
func (c *MetricsCache) Invalidate(documentID string) {
	start := c.now()
	for _, mode := range []manifold.Mode{manifold.ModeHeuristic, manifold.ModeExact} {
		k := key(documentID, mode)
		s := c.shardFor(k)
		s.mu.Lock()
		delete(s.entries, k)
		s.mu.Unlock()
	}
	c.observe("invalidate", documentID, "", start, true)
}

// Sweep removes every expired entry and returns the number evicted. The fx
// lifecycle runs it periodically; it is exported so operators can trigger
// it directly in tests and tooling.
func (c *MetricsCache) Sweep() int {
	now := c.now()
	evicted := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for k, e := range s.entries {
			if now.Sub(e.insertedAt) >= c.cfg.TTL {
				delete(s.entries, k)
				evicted++
			}
		}
		s.mu.Unlock()
	}
	if evicted > 0 {
		c.observe("sweep", "", "", now, true)
	}
	return evicted
}

// Len returns the number of resident entries, expired or not.
func (c *MetricsCache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

func (c *MetricsCache) observe(op, documentID string, mode manifold.Mode, start time.Time, hit bool) {
	if c.observer == nil {
		return
	}
	var err error
	if op == "get" && !hit {
		err = errCacheMiss
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "cache",
		Operation:   op,
		Resource:    documentID,
		SubResource: string(mode),
		Duration:    c.now().Sub(start),
		Err:         err,
	})
}
