package scoring

import (
	"sync"
	"time"
)

// StressCache memoizes the stress multiplier for a bounded window. It is the
// only mutable state shared between concurrent assessments; last-writer-wins
// is fine since the value only affects freshness within the TTL, not
// correctness.
type StressCache struct {
	mu        sync.Mutex
	value     float64
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewStressCache creates a cache with the given validity window.
func NewStressCache(ttl time.Duration) *StressCache {
	return &StressCache{ttl: ttl, now: time.Now}
}

// NewStressCacheWithClock injects a clock for deterministic tests.
func NewStressCacheWithClock(ttl time.Duration, now func() time.Time) *StressCache {
	return &StressCache{ttl: ttl, now: now}
}

// Get returns the cached multiplier if it is still within the window.
func (c *StressCache) Get() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl {
		return 0, false
	}
	return c.value, true
}

// Put stores a freshly resolved multiplier.
func (c *StressCache) Put(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.fetchedAt = c.now()
}
