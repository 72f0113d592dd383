// Package cache provides a generic thread-safe LRU cache with a soft
// limit, used for memoizing expensive derivations such as shader
// compilation.
package cache

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe cache with a soft entry limit. When
// the cache exceeds the limit, the least recently used quarter of the
// entries is evicted.
//
// Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache with the given soft limit. A limit of 0 means
// unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value. Returns (zero, false) on a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value, evicting old entries when the soft limit is
// exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrCreate returns the cached value for key, calling create on a
// miss. The creation runs under the cache lock so concurrent callers
// never compute the same key twice; failed creations are not cached.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		c.hits.Add(1)
		return e.value, nil
	}
	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.set(key, value)
	return value, nil
}

// Delete removes an entry, reporting whether it existed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
}

// Len returns the current entry count.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports hit and miss counts since creation.
func (c *Cache[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// set stores under lock and evicts when over the limit.
func (c *Cache[K, V]) set(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// evictOldest drops the least recently used quarter of the entries so
// eviction cost amortizes instead of running on every insert.
func (c *Cache[K, V]) evictOldest() {
	type aged[K2 comparable] struct {
		key   K2
		atime int64
	}
	all := make([]aged[K], 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged[K]{key: k, atime: e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })

	drop := len(all) / 4
	if drop < 1 {
		drop = 1
	}
	for _, a := range all[:drop] {
		delete(c.entries, a.key)
	}
}
