// Package memory provides an in-process LRU cache for AI responses.
package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ResponseCache = (*LRU)(nil)

type entry struct {
	key  string
	resp domain.AIResponse
}

// LRU is a least recently used response cache.
// A capacity of zero or less means the cache never evicts.
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	lruList  *list.List

	// Statistics
	hits      int64
	misses    int64
	evictions int64
}

// NewLRU creates a new LRU cache with the given capacity.
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

// Get retrieves a response from the cache.
func (c *LRU) Get(_ context.Context, key string) (domain.AIResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		c.misses++
		return domain.AIResponse{}, false, nil
	}

	c.lruList.MoveToFront(elem)
	c.hits++
	return elem.Value.(*entry).resp, true, nil
}

// Put adds or replaces a response.
func (c *LRU) Put(_ context.Context, key string, resp domain.AIResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.lruList.MoveToFront(elem)
		elem.Value.(*entry).resp = resp
		return nil
	}

	c.items[key] = c.lruList.PushFront(&entry{key: key, resp: resp})

	if c.capacity > 0 && c.lruList.Len() > c.capacity {
		c.evictOldest()
	}
	return nil
}

// Len returns the number of cached responses.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// evictOldest removes the least recently used item
func (c *LRU) evictOldest() {
	elem := c.lruList.Back()
	if elem == nil {
		return
	}

	c.lruList.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
	c.evictions++
}

// Stats holds cache statistics.
type Stats struct {
	Items     int
	Hits      int64
	Misses    int64
	Evictions int64
	Capacity  int
}

// HitRate calculates the cache hit rate.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns current cache statistics.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Items:     c.lruList.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Capacity:  c.capacity,
	}
}
