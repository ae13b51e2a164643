package engine

import (
	"container/list"
	"sync"
)

// DecodeCache is a byte-bounded LRU cache of materialised intensity grids.
// It is safe for concurrent use.
type DecodeCache struct {
	mu       sync.Mutex
	capacity int64
	used     int64
	order    *list.List
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key  string
	grid *grid
}

// NewDecodeCache creates a cache holding at most capacity bytes.
// A capacity of zero or less disables caching.
func NewDecodeCache(capacity int64) *DecodeCache {
	return &DecodeCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Capacity returns the cache size limit in bytes.
func (c *DecodeCache) Capacity() int64 {
	return c.capacity
}

// Used returns the bytes currently held.
func (c *DecodeCache) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// Len returns the number of cached grids.
func (c *DecodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *DecodeCache) get(key string) (*grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).grid, true
}

// put stores g under key, evicting least recently used grids as needed.
// Grids larger than the whole cache are not stored.
func (c *DecodeCache) put(key string, g *grid) {
	size := g.size()
	if key == "" || size > c.capacity {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.used -= el.Value.(*cacheEntry).grid.size()
		c.order.Remove(el)
		delete(c.entries, key)
	}

	for c.used+size > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		c.used -= entry.grid.size()
		c.order.Remove(oldest)
		delete(c.entries, entry.key)
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, grid: g})
	c.used += size
}
