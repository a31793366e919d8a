// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of byte payloads keyed by string.

When created with compression enabled via [New], payloads are stored zstd-compressed
whenever that saves space and are transparently decompressed by [Cache.Get].
*/
package lrucache

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity LRU cache that is safe for concurrent use.
// Instances must be constructed with [New].
type Cache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	lock      sync.Mutex

	zstdEnc *zstd.Encoder // nil when compression is disabled
	zstdDec *zstd.Decoder

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	key        string
	payload    []byte
	compressed bool
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// New creates a cache holding at most size entries.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
	}

	if compress {
		// A nil writer/reader allows EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores value under key, making it the most recently used entry.
// It reports whether an older entry was evicted to make room.
func (c *Cache) Add(key string, value []byte) bool {
	payload, compressed := c.encode(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.payload = payload
		ent.compressed = compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, payload: payload, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	c.removeElement(c.evictList.Back())

	return true
}

// Get returns a copy of the value for key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	c.evictList.MoveToFront(el)
	ent := el.Value.(*entry)
	payload, compressed := ent.payload, ent.compressed

	c.lock.Unlock()

	value, err := c.decode(payload, compressed)
	if err != nil {
		// A payload we wrote ourselves failed to decode; drop it.
		c.Remove(key)
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return value, true
}

// Remove deletes key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}

	return ok
}

// RemovePrefix deletes every key starting with prefix and returns how many were removed.
func (c *Cache) RemovePrefix(prefix string) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	removed := 0

	for el := c.evictList.Front(); el != nil; {
		next := el.Next()

		if strings.HasPrefix(el.Value.(*entry).key, prefix) {
			c.removeElement(el)

			removed++
		}

		el = next
	}

	return removed
}

// Purge deletes every entry.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	clear(c.items)
}

// Keys returns all keys from the oldest to the newest.
func (c *Cache) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key)
	}

	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns the entry count and the hit/miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Len: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Close releases the decoder goroutines. The cache must not be used afterwards.
func (c *Cache) Close() {
	if c.zstdDec != nil {
		c.zstdDec.Close()
	}
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// encode compresses value when enabled and worthwhile, else stores a copy.
// The zstd encoder supports concurrent EncodeAll, so no lock is held.
func (c *Cache) encode(value []byte) ([]byte, bool) {
	if c.zstdEnc != nil && len(value) > 0 {
		if packed := c.zstdEnc.EncodeAll(value, nil); len(packed) < len(value) {
			return packed, true
		}
	}

	return append([]byte(nil), value...), false
}

func (c *Cache) decode(payload []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return append([]byte(nil), payload...), nil
	}

	return c.zstdDec.DecodeAll(payload, nil)
}
