package memory

import (
	"container/list"
	"fmt"
	"hash/fnv"
	"sync"
)

// DefaultCacheCapacity bounds the response cache when no capacity is
// given.
const DefaultCacheCapacity = 20

// ResponseCache is a bounded in-memory map from a hash of
// (feature, prompt) to the last successful completion. Eviction is
// strictly insertion-order (FIFO), not recency-based; there is no TTL
// and the cache is never persisted. Construct one per composition root
// and inject it; there is no package-level instance.
type ResponseCache struct {
	mu      sync.Mutex
	cap     int
	entries map[uint64]string
	order   *list.List // uint64 keys, oldest at front
}

// NewResponseCache creates a cache holding at most capacity entries.
func NewResponseCache(capacity int) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResponseCache{
		cap:     capacity,
		entries: make(map[uint64]string, capacity),
		order:   list.New(),
	}
}

func cacheKey(feature, prompt string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s", feature, prompt)
	return h.Sum64()
}

// Get returns the cached completion for (feature, prompt), if any.
func (c *ResponseCache) Get(feature, prompt string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[cacheKey(feature, prompt)]
	return v, ok
}

// Put stores a completion. Overwriting an existing key keeps its
// original insertion position.
func (c *ResponseCache) Put(feature, prompt, content string) {
	k := cacheKey(feature, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; exists {
		c.entries[k] = content
		return
	}

	for c.order.Len() >= c.cap {
		front := c.order.Front()
		c.order.Remove(front)
		delete(c.entries, front.Value.(uint64))
	}

	c.entries[k] = content
	c.order.PushBack(k)
}

// Len reports the number of cached entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
