package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	return func() time.Time { return current },
		func(d time.Duration) { current = current.Add(d) }
}

func TestListingCachePutThenGet(t *testing.T) {
	c := NewListingCache(15 * time.Minute)

	key := Key("public/files/", "", "", 1, 50, false)
	c.Put(key, "listing-data")

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "listing-data", got)
}

func TestListingCacheExpiryRemovesEntry(t *testing.T) {
	c := NewListingCache(15 * time.Minute)
	now, advance := newTestClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	c.SetClock(now)

	key := Key("public/files/", "", "", 1, 50, false)
	c.Put(key, "listing-data")

	advance(14 * time.Minute)
	_, ok := c.Get(key)
	assert.True(t, ok, "entry should survive inside the TTL window")

	advance(2 * time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry should be gone after the TTL")
	assert.Equal(t, 0, c.Len(), "expired entry should be removed from storage")
}

func TestListingCacheKeyDeterminism(t *testing.T) {
	a := Key("public/files/", "animals", "cat", 2, 25, false)
	b := Key("public/files/", "animals", "cat", 2, 25, false)
	assert.Equal(t, a, b)

	variants := []string{
		Key("public/files/x/", "animals", "cat", 2, 25, false),
		Key("public/files/", "plants", "cat", 2, 25, false),
		Key("public/files/", "animals", "dog", 2, 25, false),
		Key("public/files/", "animals", "cat", 3, 25, false),
		Key("public/files/", "animals", "cat", 2, 50, false),
		Key("public/files/", "animals", "cat", 2, 25, true),
	}
	for _, v := range variants {
		assert.NotEqual(t, a, v)
	}
}

func TestListingCacheInvalidatePrefix(t *testing.T) {
	c := NewListingCache(15 * time.Minute)

	c.Put(Key("public/files/A/", "A", "", 1, 50, false), 1)
	c.Put(Key("public/files/A/B/", "A/B", "", 1, 50, false), 2)
	c.Put(Key("public/files/Z/", "Z", "", 1, 50, false), 3)
	require.Equal(t, 3, c.Len())

	// Prefix invalidation drops the directory and its descendants but
	// leaves unrelated directories alone.
	c.Invalidate("public/files/A/")
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(Key("public/files/Z/", "Z", "", 1, 50, false))
	assert.True(t, ok)
}

func TestListingCacheInvalidateAll(t *testing.T) {
	c := NewListingCache(15 * time.Minute)

	c.Put(Key("public/files/A/", "A", "", 1, 50, false), 1)
	c.Put(Key("public/files/Z/", "Z", "", 1, 50, false), 2)

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}
