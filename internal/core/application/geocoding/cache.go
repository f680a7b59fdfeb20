package geocoding

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// Cache memoizes resolved coordinates per postal code. It is safe for
// concurrent use: lookups share a read lock, writes are exclusive.
type Cache struct {
	mu     sync.RWMutex
	points map[string]kernel.GeoPoint
}

func NewCache() *Cache {
	return &Cache{points: make(map[string]kernel.GeoPoint)}
}

func (c *Cache) Get(postalCode string) (kernel.GeoPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.points[postalCode]
	return p, ok
}

func (c *Cache) Put(postalCode string, point kernel.GeoPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points[postalCode] = point
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.points)
}
