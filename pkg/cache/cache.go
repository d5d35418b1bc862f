// Package cache keeps query result snapshots for a fixed time.
// Expired entries are not swept, they stay until overwritten or cleared and are never returned.
package cache

import (
	"sync"
	"time"

	"github.com/umputun/trendscope/pkg/domain"
)

// DefaultTTL matches the refresh interval
const DefaultTTL = 15 * time.Minute

// cache keys
const (
	KeyTrending      = "viral:trending:topics"
	KeyAllTrending   = "viral:trending:all_topics"
	KeyReddit        = "viral:trending:reddit"
	KeyGoogleTrends  = "viral:trending:google_trends"
	KeyYouTube       = "viral:trending:youtube"
	KeyStatsOverview = "viral:stats:overview"
)

// Names maps status names to cache keys
var Names = map[string]string{
	"trending_topics":      KeyTrending,
	"all_trending_topics":  KeyAllTrending,
	"reddit_topics":        KeyReddit,
	"google_trends_topics": KeyGoogleTrends,
	"youtube_topics":       KeyYouTube,
	"stats":                KeyStatsOverview,
}

// Snapshot is a cached query result
type Snapshot struct {
	Topics    []domain.Topic
	Timestamp time.Time // when the result was built
}

type entry struct {
	snap     Snapshot
	storedAt time.Time
}

// Cache is a keyed snapshot store with a single ttl, safe for concurrent use
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// Option customizes Cache
type Option func(c *Cache)

// WithClock sets time source, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New makes a cache with the given ttl, DefaultTTL if ttl is not positive
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	res := &Cache{ttl: ttl, now: time.Now, entries: map[string]entry{}}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// TTL returns cache ttl
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of the snapshot stored under key if it is younger than ttl
func (c *Cache) Get(key string) (Snapshot, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return Snapshot{Topics: copyTopics(e.snap.Topics), Timestamp: e.snap.Timestamp}, true
}

// Set stores snapshot under key, replacing any previous one
func (c *Cache) Set(key string, snap Snapshot) {
	snap.Topics = copyTopics(snap.Topics)
	c.mu.Lock()
	c.entries[key] = entry{snap: snap, storedAt: c.now()}
	c.mu.Unlock()
}

// Clear removes the entry stored under key
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// ClearAll removes all entries
func (c *Cache) ClearAll() {
	c.mu.Lock()
	c.entries = map[string]entry{}
	c.mu.Unlock()
}

// Info reports if a live entry exists under key and its remaining ttl
func (c *Cache) Info(key string) domain.CacheInfo {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return domain.CacheInfo{}
	}
	remaining := c.ttl - c.now().Sub(e.storedAt)
	if remaining <= 0 {
		return domain.CacheInfo{}
	}
	secs := int(remaining / time.Second)
	return domain.CacheInfo{Exists: true, TTLSeconds: secs, TTLMinutes: secs / 60}
}

// copyTopics copies the list, callers can reorder their copy without touching cached data
func copyTopics(src []domain.Topic) []domain.Topic {
	if src == nil {
		return nil
	}
	res := make([]domain.Topic, len(src))
	copy(res, src)
	return res
}
