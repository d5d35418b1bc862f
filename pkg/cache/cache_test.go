package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/trendscope/pkg/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Add(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(900*time.Second, WithClock(clock.Now))
	snap := Snapshot{Topics: []domain.Topic{{Title: "A"}}, Timestamp: clock.Now()}
	c.Set(KeyTrending, snap)

	clock.Add(899 * time.Second)
	got, ok := c.Get(KeyTrending)
	require.True(t, ok, "hit just before ttl")
	assert.Equal(t, snap, got)
	info := c.Info(KeyTrending)
	assert.Equal(t, domain.CacheInfo{Exists: true, TTLSeconds: 1, TTLMinutes: 0}, info)

	clock.Add(2 * time.Second)
	_, ok = c.Get(KeyTrending)
	assert.False(t, ok, "miss after ttl")
	assert.Equal(t, domain.CacheInfo{}, c.Info(KeyTrending))

	// expired entry is replaced by set
	c.Set(KeyTrending, Snapshot{Topics: []domain.Topic{{Title: "B"}}})
	got, ok = c.Get(KeyTrending)
	require.True(t, ok)
	assert.Equal(t, "B", got.Topics[0].Title)
}

func TestCache_Info(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := New(0, WithClock(clock.Now))
	assert.Equal(t, DefaultTTL, c.TTL())

	assert.Equal(t, domain.CacheInfo{}, c.Info(KeyAllTrending))
	c.Set(KeyAllTrending, Snapshot{})
	clock.Add(4*time.Minute + 30*time.Second)
	assert.Equal(t, domain.CacheInfo{Exists: true, TTLSeconds: 630, TTLMinutes: 10}, c.Info(KeyAllTrending))
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)
	c.Set(KeyTrending, Snapshot{})
	c.Set(KeyAllTrending, Snapshot{})

	c.Clear(KeyTrending)
	_, ok := c.Get(KeyTrending)
	assert.False(t, ok)
	_, ok = c.Get(KeyAllTrending)
	assert.True(t, ok)

	c.ClearAll()
	_, ok = c.Get(KeyAllTrending)
	assert.False(t, ok)
	assert.False(t, c.Info(KeyAllTrending).Exists)
}

func TestCache_CopyIsolation(t *testing.T) {
	c := New(time.Minute)
	topics := []domain.Topic{{Title: "A", Engagement: 1}, {Title: "B", Engagement: 2}}
	c.Set(KeyTrending, Snapshot{Topics: topics})
	topics[0].Title = "changed by producer"

	got, ok := c.Get(KeyTrending)
	require.True(t, ok)
	got.Topics[0], got.Topics[1] = got.Topics[1], got.Topics[0]

	again, ok := c.Get(KeyTrending)
	require.True(t, ok)
	assert.Equal(t, "A", again.Topics[0].Title)
	assert.Equal(t, "B", again.Topics[1].Title)
}

func TestCache_Concurrent(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); c.Set(KeyTrending, Snapshot{Topics: []domain.Topic{{Title: "x"}}}) }()
		go func() { defer wg.Done(); c.Get(KeyTrending) }()
		go func() { defer wg.Done(); c.ClearAll() }()
	}
	wg.Wait()
}

func TestNames(t *testing.T) {
	assert.Len(t, Names, 6)
	assert.Equal(t, KeyTrending, Names["trending_topics"])
	assert.Equal(t, KeyAllTrending, Names["all_trending_topics"])
}
