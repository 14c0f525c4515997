package geometry

import (
	"sync"

	"github.com/paulmach/orb"
)

// DistanceCache memoizes haversine distances between quantized coordinates.
// Keys are canonicalized, so a -> b and b -> a share one entry.
// The cache only grows and is safe for concurrent use.
type DistanceCache struct {
	mu      sync.RWMutex
	entries map[pairKey]float64
	hits    int
	misses  int
}

type pairKey struct {
	a, b string
}

func NewDistanceCache() *DistanceCache {
	return &DistanceCache{entries: make(map[pairKey]float64)}
}

func makePairKey(a, b orb.Point) pairKey {
	ka, kb := Key(a), Key(b)
	if kb < ka {
		ka, kb = kb, ka
	}
	return pairKey{a: ka, b: kb}
}

// Distance returns the haversine distance between a and b in meters.
// A nil cache computes the distance directly.
func (c *DistanceCache) Distance(a, b orb.Point) float64 {
	if c == nil {
		return Haversine(a, b)
	}
	key := makePairKey(a, b)

	c.mu.RLock()
	d, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return d
	}

	d = Haversine(a, b)
	c.mu.Lock()
	c.entries[key] = d
	c.misses++
	c.mu.Unlock()
	return d
}

// Len returns the number of cached pairs.
func (c *DistanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and misses.
func (c *DistanceCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
