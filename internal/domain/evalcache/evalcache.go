// Package evalcache memoizes complete ranked recommendations.
//
// The evaluation pipeline is deterministic, so two requests with the same
// canonical fingerprint produce byte-identical rankings; serving the second
// from memory skips N classifier calls.
package evalcache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// Cache stores ranked results keyed by request fingerprint.
type Cache interface {
	// Get returns the cached recommendation for key, if present.
	Get(ctx context.Context, key string) (model.Recommendation, bool)

	// Put stores the recommendation for key, evicting the oldest entry
	// when the cache is full.
	Put(ctx context.Context, key string, rec model.Recommendation)

	Size() int64
}

// node is a singly linked list entry; the list orders keys by insertion so
// eviction can drop the oldest.
type node struct {
	key  string
	rec  model.Recommendation
	next *node
}

func (n *node) reset() {
	n.key = ""
	n.rec = model.Recommendation{}
	n.next = nil
}

// inMemoryCache implements Cache with a map plus insertion-ordered list.
// maxSize <= 0 disables bounding.
type inMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]*node
	head     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates an in-memory cache with configuration options.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 10_000, // default max size
	}

	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*node)
	if c.maxSize > 0 {
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}

	return c
}

// Get returns the cached recommendation for key, if present.
func (c *inMemoryCache) Get(ctx context.Context, key string) (model.Recommendation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[key]
	if !ok {
		return model.Recommendation{}, false
	}
	return n.rec, true
}

// Put stores the recommendation for key. Re-putting an existing key updates
// it in place without growing the list.
func (c *inMemoryCache) Put(ctx context.Context, key string, rec model.Recommendation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		existing.rec = rec
		return
	}

	if c.maxSize > 0 {
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}

		n := c.nodePool.Get().(*node)
		n.key = key
		n.rec = rec
		n.next = c.head

		c.head = n
		c.entries[key] = n
	} else {
		c.entries[key] = &node{key: key, rec: rec}
	}
	c.size.Add(1)
}

// evictOldest removes the tail of the insertion list. Must be called with
// c.mu held.
func (c *inMemoryCache) evictOldest() {
	if c.head == nil {
		return
	}

	if c.head.next == nil {
		delete(c.entries, c.head.key)
		c.head.reset()
		c.nodePool.Put(c.head)
		c.head = nil
		c.size.Add(-1)
		return
	}

	prev := c.head
	for prev.next.next != nil {
		prev = prev.next
	}

	tail := prev.next
	prev.next = nil
	delete(c.entries, tail.key)
	tail.reset()
	c.nodePool.Put(tail)
	c.size.Add(-1)
}

// Size returns the current number of cached recommendations.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
