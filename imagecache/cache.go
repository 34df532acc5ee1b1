// Package imagecache caches decoded image layers so repeated exports and
// previews do not decode the same data URI again.
package imagecache

import (
	"container/list"
	"hash/fnv"
	"image"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 8

	// DefaultCapacity is the default number of images kept per shard.
	DefaultCapacity = 16

	shardMask = ShardCount - 1
)

// DecodeFunc decodes an image source, typically a data URI.
type DecodeFunc func(src string) (image.Image, error)

// Stats holds cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a sharded LRU of decoded images keyed by their source string.
// Failed decodes are not cached.
//
// Cache is safe for concurrent use.
type Cache struct {
	shards   [ShardCount]*shard
	capacity int
	decode   DecodeFunc

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // front = most recently used
}

type entry struct {
	src string
	img image.Image
}

// New creates a cache holding up to capacity images per shard.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int, decode DecodeFunc) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{capacity: capacity, decode: decode}
	for i := range c.shards {
		c.shards[i] = &shard{
			entries: make(map[string]*list.Element),
			lru:     list.New(),
		}
	}
	return c
}

func (c *Cache) shardFor(src string) *shard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src)) // fnv.Write never returns an error
	return c.shards[h.Sum64()&shardMask]
}

// Get returns the decoded image for src, decoding it on a miss.
// The decode runs under the shard lock so concurrent misses on the same
// source decode once.
func (c *Cache) Get(src string) (image.Image, error) {
	s := c.shardFor(src)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[src]; ok {
		s.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry).img, nil
	}
	c.misses.Add(1)

	img, err := c.decode(src)
	if err != nil {
		return nil, err
	}
	for s.lru.Len() >= c.capacity {
		oldest := s.lru.Back()
		if oldest == nil {
			break
		}
		s.lru.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry).src)
		c.evictions.Add(1)
	}
	s.entries[src] = s.lru.PushFront(&entry{src: src, img: img})
	return img, nil
}

// Contains reports whether src is cached without updating recency.
func (c *Cache) Contains(src string) bool {
	s := c.shardFor(src)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[src]
	return ok
}

// Delete drops src from the cache.
func (c *Cache) Delete(src string) bool {
	s := c.shardFor(src)
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.entries[src]
	if !ok {
		return false
	}
	s.lru.Remove(el)
	delete(s.entries, src)
	return true
}

// Clear removes all entries. Counters are kept.
func (c *Cache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]*list.Element)
		s.lru.Init()
		s.mu.Unlock()
	}
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Capacity returns the per-shard capacity.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
