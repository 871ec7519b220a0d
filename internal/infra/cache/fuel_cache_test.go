package cache

import (
	"sync"
	"testing"
	"time"

	"lanerate/internal/domain/quote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(state string, v float64) quote.FuelPriceResult {
	return quote.FuelPriceResult{State: state, PricePerGallon: v, Source: quote.SourceAPI}
}

func TestFuelPriceCache_HitWithinTTL(t *testing.T) {
	c := NewFuelPriceCache(time.Hour)
	c.Put("IL", price("IL", 3.99))

	got, ok := c.Get("IL")
	require.True(t, ok)
	assert.Equal(t, 3.99, got.PricePerGallon)
}

func TestFuelPriceCache_MissAfterTTL(t *testing.T) {
	c := NewFuelPriceCache(time.Hour)
	c.Put("IL", price("IL", 3.99))

	// Advance the clock past the TTL but inside the stale retention window.
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, ok := c.Get("IL")
	assert.False(t, ok)

	stale, ok := c.GetStale("IL")
	require.True(t, ok)
	assert.Equal(t, 3.99, stale.PricePerGallon)
}

func TestFuelPriceCache_EvictionAfterRetention(t *testing.T) {
	c := NewFuelPriceCache(time.Hour)
	c.Put("IL", price("IL", 3.99))

	c.now = func() time.Time { return time.Now().Add(8 * time.Hour) }

	_, ok := c.Get("IL")
	assert.False(t, ok)

	// The read evicted the entry, so even stale reuse is gone.
	_, ok = c.GetStale("IL")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestFuelPriceCache_PutOverwrites(t *testing.T) {
	c := NewFuelPriceCache(time.Hour)
	c.Put("IL", price("IL", 3.99))
	c.Put("IL", price("IL", 4.25))

	got, ok := c.Get("IL")
	require.True(t, ok)
	assert.Equal(t, 4.25, got.PricePerGallon)
	assert.Equal(t, 1, c.Len())
}

func TestFuelPriceCache_ConcurrentAccess(t *testing.T) {
	c := NewFuelPriceCache(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put("TX", price("TX", 3.50))
				c.Get("TX")
				c.GetStale("TX")
			}
		}()
	}
	wg.Wait()

	got, ok := c.Get("TX")
	require.True(t, ok)
	assert.Equal(t, 3.50, got.PricePerGallon)
}
