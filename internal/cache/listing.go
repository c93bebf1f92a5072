// Package cache holds the in-process caches for catalog listings and
// presigned object URLs. Both are per-process state: nothing persists across
// restarts and separate server instances cache independently.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultListingTTL is how long a cached listing stays valid
const DefaultListingTTL = 15 * time.Minute

const keyDelimiter = "|"

type listingEntry struct {
	data      interface{}
	createdAt time.Time
	expiresAt time.Time
}

// ListingCache memoizes assembled listing responses per query combination.
// Listings are expensive (full prefix scan plus URL signing) and change only
// on explicit mutation, so a short TTL plus mutation-triggered invalidation
// is sufficient.
type ListingCache struct {
	mu      sync.Mutex
	entries map[string]listingEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewListingCache creates a cache with the given TTL. The clock defaults to
// time.Now and can be replaced with SetClock for deterministic tests.
func NewListingCache(ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{
		entries: make(map[string]listingEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the cache's time source
func (c *ListingCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Key builds the deterministic cache key for one listing query. Equal inputs
// always produce equal keys and any field difference changes the key.
func Key(prefix, dir, search string, page, limit int, all bool) string {
	return strings.Join([]string{
		prefix,
		dir,
		search,
		strconv.Itoa(page),
		strconv.Itoa(limit),
		strconv.FormatBool(all),
	}, keyDelimiter)
}

// Get returns the cached value for key if it has not expired. Expired entries
// are removed on access.
func (c *ListingCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// Put stores data under key with expiry now+TTL
func (c *ListingCache) Put(key string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = listingEntry{
		data:      data,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
}

// Invalidate removes every entry whose key starts with prefix. With no
// arguments it clears the cache entirely. Prefix matching is plain string
// matching, not path-aware: invalidating "A/" also drops "A/B/" keys, which
// is what mutations under a directory need.
func (c *ListingCache) Invalidate(prefix ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(prefix) == 0 {
		c.entries = make(map[string]listingEntry)
		return
	}
	for key := range c.entries {
		for _, p := range prefix {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Len reports how many entries are stored, expired or not
func (c *ListingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
