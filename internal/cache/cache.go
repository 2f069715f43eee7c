// Package cache holds the process-wide search result cache: a TTL- and
// capacity-bounded store keyed by a canonical serialization of the query.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vinamart/searchd/internal/domain/search/result"
)

// Results caches fully built result pages. Safe for concurrent use; entries
// expire after the configured TTL and are never served past it. State lives
// only in-process: a restart starts cold.
type Results struct {
	lru *expirable.LRU[string, result.Page]
}

// New creates a result cache holding at most maxEntries pages for ttl each.
func New(maxEntries int, ttl time.Duration) *Results {
	return &Results{
		lru: expirable.NewLRU[string, result.Page](maxEntries, nil, ttl),
	}
}

// Get returns the cached page for key, if present and unexpired.
func (c *Results) Get(key string) (result.Page, bool) {
	return c.lru.Get(key)
}

// Set stores a page under key with the write time as its creation time.
// Last writer wins on concurrent writes to the same key.
func (c *Results) Set(key string, page result.Page) {
	c.lru.Add(key, page)
}

// Len returns the number of live entries.
func (c *Results) Len() int { return c.lru.Len() }

// Purge drops every entry.
func (c *Results) Purge() { c.lru.Purge() }
