// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	c := cache.NewLRUCache[string, string](1024, 5*time.Minute)
//	c.Put("stores/1/productattach/view/items_per_page", "20")
//
//	if v, ok := c.Get("stores/1/productattach/view/items_per_page"); ok {
//		// fresh value
//	}
//
// Get, Put and Remove are O(1). Expired entries are dropped lazily on Get
// or when they fall off the end of the eviction list.
package cache
