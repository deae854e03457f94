package cache

import (
	"countries/internal/domain"
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

type RistrettoCountryCache struct {
	cache *ristretto.Cache

	// mu orders Set against Del and Clear so a stale Set cannot land after an
	// invalidation.
	mu  sync.Mutex
	gen uint64
}

func NewCountryCache(maxItems int64) (*RistrettoCountryCache, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create country cache failed: %w", err)
	}
	return &RistrettoCountryCache{cache: c}, nil
}

func (c *RistrettoCountryCache) Get(name string) (domain.Country, bool) {
	if v, ok := c.cache.Get(domain.NameKey(name)); ok {
		country, ok := v.(domain.Country)
		return country, ok
	}
	return domain.Country{}, false
}

// Generation must be read before loading the value later passed to Set.
func (c *RistrettoCountryCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set stores country unless a Del or Clear happened since gen was read.
func (c *RistrettoCountryCache) Set(country domain.Country, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	return c.cache.Set(domain.NameKey(country.Name), country, 1)
}

func (c *RistrettoCountryCache) Del(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Del(domain.NameKey(name))
}

// Clear drops every entry; used after a refresh rewrites the table.
func (c *RistrettoCountryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Clear()
}

// Wait blocks until buffered writes are applied.
func (c *RistrettoCountryCache) Wait() { c.cache.Wait() }

func (c *RistrettoCountryCache) Close() { c.cache.Close() }
