package catalog

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest product data available to the UI.
type Snapshot struct {
	Products            []Product
	HasProducts         bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the catalog has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Cache coordinates concurrent updates to the snapshot.
type Cache struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewCache returns an empty Cache stamped with now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{now: now}
}

// Update replaces the stored products. When err is non-nil the previous list
// is kept but the error is recorded for visibility.
func (c *Cache) Update(products []Product, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot.LastUpdated = c.now()
	if err != nil {
		c.snapshot.LastError = err
		c.snapshot.ConsecutiveFailures++
		return
	}

	c.snapshot.Products = cloneProducts(products)
	c.snapshot.HasProducts = true
	c.snapshot.LastError = nil
	c.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snapshot
	snap.Products = cloneProducts(c.snapshot.Products)
	if c.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", c.snapshot.LastError)
	}
	return snap
}

func cloneProducts(items []Product) []Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Product, len(items))
	copy(dup, items)
	return dup
}
