// Package render holds the per-document page bitmap cache and the raster
// compositing helpers that draw search highlights and error placeholders.
package render

import "image"

// DefaultCacheSize is the bound used when no capacity is configured.
const DefaultCacheSize = 10

// Key addresses one cached rendering: a page at a zoom level.
type Key struct {
	Page int
	Zoom float64
}

// Cache is a bounded map of rendered page bitmaps. Eviction is FIFO by
// insertion order: a cache hit does not protect an entry. The owning
// document clears the cache wholesale on any page-set mutation or zoom
// change, so entries never outlive the page list they were rendered from.
type Cache struct {
	cap     int
	entries map[Key]image.Image
	order   []Key
}

// NewCache returns an empty cache bounded to cap entries. A non-positive
// cap falls back to DefaultCacheSize.
func NewCache(cap int) *Cache {
	if cap <= 0 {
		cap = DefaultCacheSize
	}
	return &Cache{
		cap:     cap,
		entries: make(map[Key]image.Image),
	}
}

// Get returns the cached bitmap for key, or nil.
func (c *Cache) Get(key Key) image.Image {
	return c.entries[key]
}

// Put inserts a bitmap, evicting the oldest-inserted entry when full.
// Re-inserting an existing key refreshes the bitmap but keeps its original
// insertion position.
func (c *Cache) Put(key Key, img image.Image) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = img
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = img
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }

// Clear discards every entry.
func (c *Cache) Clear() {
	c.entries = make(map[Key]image.Image)
	c.order = c.order[:0]
}
