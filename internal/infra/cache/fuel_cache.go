// Package cache holds the process-wide fuel price cache. It is the only
// state shared across concurrent quote requests.
package cache

import (
	"sync"
	"time"

	"lanerate/internal/domain/quote"
)

// staleRetention bounds how long an expired entry is kept for stale reuse
// before a read evicts it, expressed in multiples of the TTL.
const staleRetention = 7

// FuelPriceCache is a TTL-bounded state→price store. Concurrent reads are
// safe; concurrent writes to the same key are last-write-wins. Entries are
// evicted lazily on read, never torn down explicitly.
type FuelPriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]fuelEntry
}

type fuelEntry struct {
	price    quote.FuelPriceResult
	storedAt time.Time
}

// NewFuelPriceCache creates an empty cache with the given TTL.
func NewFuelPriceCache(ttl time.Duration) *FuelPriceCache {
	return &FuelPriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]fuelEntry),
	}
}

// Get returns a fresh entry for the state, if one exists within the TTL.
func (c *FuelPriceCache) Get(state string) (quote.FuelPriceResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[state]
	c.mu.RUnlock()

	if !ok {
		return quote.FuelPriceResult{}, false
	}

	age := c.now().Sub(e.storedAt)
	if age > c.ttl {
		if age > time.Duration(staleRetention)*c.ttl {
			c.evict(state, e.storedAt)
		}

		return quote.FuelPriceResult{}, false
	}

	return e.price, true
}

// GetStale returns an entry regardless of age. Used only after the live
// provider has failed; the caller reports it with the cache source tag and
// the original LastUpdated timestamp so staleness stays visible.
func (c *FuelPriceCache) GetStale(state string) (quote.FuelPriceResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[state]
	if !ok {
		return quote.FuelPriceResult{}, false
	}

	return e.price, true
}

// Put stores a price for a state, overwriting any existing entry.
func (c *FuelPriceCache) Put(state string, price quote.FuelPriceResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[state] = fuelEntry{price: price, storedAt: c.now()}
}

// Len reports the number of stored entries.
func (c *FuelPriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// evict removes the entry only if it has not been replaced since the read
// that found it expired.
func (c *FuelPriceCache) evict(state string, storedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[state]; ok && e.storedAt.Equal(storedAt) {
		delete(c.entries, state)
	}
}
