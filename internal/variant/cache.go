package variant

import "container/list"

// DefaultCacheSize bounds the dataset cache to keep peak memory small when a
// session touches several seeds.
const DefaultCacheSize = 3

// DatasetCache memoizes generated datasets per seed with LRU eviction. It is
// owned by the session that creates it and is not safe for concurrent use;
// the demo recomputes on a single goroutine per interaction.
type DatasetCache struct {
	capacity int
	order    *list.List // front = most recently used
	entries  map[int64]*list.Element
}

type cacheEntry struct {
	seed    int64
	records []Record
}

// NewDatasetCache returns a cache bounded to capacity entries. A capacity
// below one falls back to DefaultCacheSize.
func NewDatasetCache(capacity int) *DatasetCache {
	if capacity < 1 {
		capacity = DefaultCacheSize
	}
	return &DatasetCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[int64]*list.Element, capacity),
	}
}

// GetOrGenerate returns the cached dataset for seed, generating and caching
// it on a miss. Cached datasets are shared; callers must treat them as
// immutable.
func (c *DatasetCache) GetOrGenerate(seed int64, generate func() []Record) []Record {
	if el, ok := c.entries[seed]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).records
	}

	records := generate()
	c.entries[seed] = c.order.PushFront(&cacheEntry{seed: seed, records: records})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).seed)
	}
	return records
}

// Len reports the number of cached datasets.
func (c *DatasetCache) Len() int {
	return c.order.Len()
}

// Clear drops every cached dataset. Sessions call this on teardown.
func (c *DatasetCache) Clear() {
	c.order.Init()
	clear(c.entries)
}
