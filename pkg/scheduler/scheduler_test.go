package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/trendscope/pkg/domain"
	"github.com/umputun/trendscope/pkg/scheduler/mocks"
)

var testNow = time.Date(2025, 4, 8, 12, 0, 0, 0, time.UTC)

func staticSource(name string, items []domain.RawItem, err error) *mocks.SourceMock {
	return &mocks.SourceMock{
		NameFunc: func() string { return name },
		FetchFunc: func(ctx context.Context) ([]domain.RawItem, error) {
			return items, err
		},
	}
}

func okStore() *mocks.StoreMock {
	return &mocks.StoreMock{
		UpsertFunc:         func(ctx context.Context, topic domain.Topic) error { return nil },
		EvictOlderThanFunc: func(ctx context.Context, cutoff time.Time) (int64, error) { return 3, nil },
		DeduplicateAllFunc: func(ctx context.Context) (domain.CleanupReport, error) {
			return domain.CleanupReport{Before: 10, After: 8, Removed: 2}, nil
		},
	}
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(Params{})
	assert.Equal(t, 15*time.Minute, s.interval)
	assert.Equal(t, 7*24*time.Hour, s.retention)
	assert.Equal(t, 60*time.Second, s.sourceTimeout)
	assert.Equal(t, 200, s.perPlatformCap)
	assert.NotNil(t, s.normalizer)
	assert.NotNil(t, s.now)

	st := s.Status()
	assert.False(t, st.Running)
	assert.Equal(t, domain.StateIdle, st.State)
	assert.Equal(t, "update_database", st.JobID)
	assert.Equal(t, "Update database with fresh API data", st.JobName)
	assert.True(t, st.NextRun.IsZero())
	assert.True(t, s.LastUpdate().IsZero())
}

func TestScheduler_Refresh(t *testing.T) {
	reddit := staticSource("reddit", []domain.RawItem{
		{Platform: domain.PlatformReddit, Source: "technology", Title: "New chip", URL: "u1", Score: 5, Comments: 2},
		{Platform: domain.PlatformReddit, Source: "technology", Title: "  ", URL: "u2"},
	}, nil)
	hn := staticSource("hacker-news", []domain.RawItem{
		{Platform: domain.PlatformHackerNews, Source: "top", Title: "New chip", URL: "u3"},
		{Platform: domain.PlatformHackerNews, Source: "top", Title: "Rust 2.0", URL: "u4", Score: 10},
	}, nil)
	broken := staticSource("youtube", nil, errors.New("quota exceeded"))
	panicky := &mocks.SourceMock{
		NameFunc:  func() string { return "github" },
		FetchFunc: func(ctx context.Context) ([]domain.RawItem, error) { panic("boom") },
	}
	store := okStore()
	cache := &mocks.CacheClearerMock{ClearAllFunc: func() {}}

	s := NewScheduler(Params{Sources: []Source{reddit, broken, panicky, hn}, Store: store, Cache: cache,
		Now: func() time.Time { return testNow }})
	report := s.Refresh(context.Background())

	assert.NotEmpty(t, report.CycleID)
	assert.Equal(t, 4, report.Fetched)
	assert.Equal(t, 2, report.Merged, "blank title dropped, repeated title merged")
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, int64(3), report.Evicted)
	assert.False(t, report.Skipped)
	assert.Equal(t, testNow, report.FinishedAt)

	require.Len(t, store.EvictOlderThanCalls(), 1)
	assert.Equal(t, testNow.Add(-7*24*time.Hour), store.EvictOlderThanCalls()[0].Cutoff)

	upserts := store.UpsertCalls()
	require.Len(t, upserts, 2)
	assert.Equal(t, domain.PlatformReddit, upserts[0].Topic.Platform, "first seen wins, sources keep their order")
	assert.Equal(t, "New chip", upserts[0].Topic.Title)
	assert.Equal(t, int64(9), upserts[0].Topic.Engagement)
	assert.Equal(t, testNow, upserts[0].Topic.Timestamp)
	assert.Equal(t, "Rust 2.0", upserts[1].Topic.Title)

	assert.Len(t, cache.ClearAllCalls(), 1)
	assert.Equal(t, testNow, s.LastUpdate())
	assert.Equal(t, domain.StateIdle, s.Status().State)
	assert.Equal(t, 0, s.Status().ActiveCycles)
	assert.Equal(t, testNow, s.Status().LastRun)
}

func TestScheduler_RefreshNoData(t *testing.T) {
	store := &mocks.StoreMock{}
	cache := &mocks.CacheClearerMock{}
	s := NewScheduler(Params{
		Sources: []Source{staticSource("reddit", nil, errors.New("down")), staticSource("youtube", []domain.RawItem{}, nil)},
		Store:   store, Cache: cache, Now: func() time.Time { return testNow },
	})

	report := s.Refresh(context.Background())
	assert.True(t, report.Skipped)
	assert.Equal(t, 0, report.Fetched)
	assert.Empty(t, store.UpsertCalls())
	assert.Empty(t, store.EvictOlderThanCalls())
	assert.Empty(t, cache.ClearAllCalls())
	assert.True(t, s.LastUpdate().IsZero(), "last update recorded only after a commit")
}

func TestScheduler_RefreshStoreFailures(t *testing.T) {
	store := okStore()
	store.EvictOlderThanFunc = func(ctx context.Context, cutoff time.Time) (int64, error) {
		return 0, errors.New("database is locked")
	}
	store.UpsertFunc = func(ctx context.Context, topic domain.Topic) error {
		if topic.Title == "bad" {
			return errors.New("constraint failed")
		}
		return nil
	}
	cache := &mocks.CacheClearerMock{ClearAllFunc: func() {}}
	src := staticSource("reddit", []domain.RawItem{
		{Platform: domain.PlatformReddit, Title: "good 1"},
		{Platform: domain.PlatformReddit, Title: "bad"},
		{Platform: domain.PlatformReddit, Title: "good 2"},
	}, nil)

	s := NewScheduler(Params{Sources: []Source{src}, Store: store, Cache: cache})
	report := s.Refresh(context.Background())
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, store.UpsertCalls(), 3, "failed upsert does not stop the cycle")
	assert.Len(t, cache.ClearAllCalls(), 1)
	assert.False(t, s.LastUpdate().IsZero())
}

func TestScheduler_RefreshNothingStored(t *testing.T) {
	store := okStore()
	store.UpsertFunc = func(ctx context.Context, topic domain.Topic) error { return context.Canceled }
	cache := &mocks.CacheClearerMock{}
	src := staticSource("reddit", []domain.RawItem{
		{Platform: domain.PlatformReddit, Title: "post 1"},
		{Platform: domain.PlatformReddit, Title: "post 2"},
	}, nil)

	s := NewScheduler(Params{Sources: []Source{src}, Store: store, Cache: cache})
	report := s.Refresh(context.Background())
	assert.Equal(t, 0, report.Stored)
	assert.Equal(t, 2, report.Failed)
	assert.False(t, report.FinishedAt.IsZero())
	assert.Empty(t, cache.ClearAllCalls(), "cache kept when nothing was stored")
	assert.True(t, s.LastUpdate().IsZero(), "last update kept when nothing was stored")
	assert.Equal(t, domain.StateIdle, s.Status().State)
}

func TestScheduler_RefreshPerPlatformCap(t *testing.T) {
	items := make([]domain.RawItem, 0, 5)
	for i := range 5 {
		items = append(items, domain.RawItem{Platform: domain.PlatformYouTube, Title: fmt.Sprintf("video %d", i)})
	}
	store := okStore()
	s := NewScheduler(Params{
		Sources: []Source{
			staticSource("youtube", items, nil),
			staticSource("reddit", []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil),
		},
		Store: store, PerPlatformCap: 2,
	})

	report := s.Refresh(context.Background())
	assert.Equal(t, 3, report.Stored)
	titles := make([]string, 0, 3)
	for _, c := range store.UpsertCalls() {
		titles = append(titles, c.Topic.Title)
	}
	assert.Equal(t, []string{"video 0", "video 1", "post"}, titles)
}

func TestScheduler_RefreshSourceTimeout(t *testing.T) {
	slow := &mocks.SourceMock{
		NameFunc: func() string { return "slow" },
		FetchFunc: func(ctx context.Context) ([]domain.RawItem, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	fast := staticSource("fast", []domain.RawItem{{Platform: domain.PlatformGitHub, Title: "owner/repo"}}, nil)
	store := okStore()

	s := NewScheduler(Params{Sources: []Source{slow, fast}, Store: store, SourceTimeout: 20 * time.Millisecond})
	st := time.Now()
	report := s.Refresh(context.Background())
	assert.Less(t, time.Since(st), 5*time.Second)
	assert.Equal(t, 1, report.Stored)
}

func TestScheduler_TriggerRefresh(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	blocking := &mocks.SourceMock{
		NameFunc: func() string { return "reddit" },
		FetchFunc: func(ctx context.Context) ([]domain.RawItem, error) {
			started <- struct{}{}
			<-release
			return []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil
		},
	}
	store := okStore()
	cache := &mocks.CacheClearerMock{ClearAllFunc: func() {}}
	s := NewScheduler(Params{Sources: []Source{blocking}, Store: store, Cache: cache})

	s.TriggerRefresh()
	s.TriggerRefresh()
	<-started
	<-started

	st := s.Status()
	assert.Equal(t, 2, st.ActiveCycles, "overlapping cycles are allowed")
	assert.Equal(t, domain.StateFetching, st.State)

	close(release)
	assert.Eventually(t, func() bool {
		st := s.Status()
		return st.ActiveCycles == 0 && st.State == domain.StateIdle
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Len(t, store.UpsertCalls(), 2)
	assert.Len(t, cache.ClearAllCalls(), 2)
}

func TestScheduler_TriggerCleanup(t *testing.T) {
	t.Run("removed rows clear cache", func(t *testing.T) {
		store := okStore()
		cache := &mocks.CacheClearerMock{ClearAllFunc: func() {}}
		s := NewScheduler(Params{Store: store, Cache: cache})
		s.TriggerCleanup()
		s.Stop()
		assert.Len(t, store.DeduplicateAllCalls(), 1)
		assert.Len(t, cache.ClearAllCalls(), 1)
	})

	t.Run("nothing removed", func(t *testing.T) {
		store := okStore()
		store.DeduplicateAllFunc = func(ctx context.Context) (domain.CleanupReport, error) {
			return domain.CleanupReport{Before: 5, After: 5}, nil
		}
		cache := &mocks.CacheClearerMock{ClearAllFunc: func() {}}
		s := NewScheduler(Params{Store: store, Cache: cache})
		s.TriggerCleanup()
		s.Stop()
		assert.Len(t, store.DeduplicateAllCalls(), 1)
		assert.Empty(t, cache.ClearAllCalls())
	})

	t.Run("error", func(t *testing.T) {
		store := &mocks.StoreMock{DeduplicateAllFunc: func(ctx context.Context) (domain.CleanupReport, error) {
			return domain.CleanupReport{}, errors.New("disk full")
		}}
		cache := &mocks.CacheClearerMock{}
		s := NewScheduler(Params{Store: store, Cache: cache})
		s.TriggerCleanup()
		s.Stop()
		assert.Len(t, store.DeduplicateAllCalls(), 1)
		assert.Empty(t, cache.ClearAllCalls())
	})
}

func TestScheduler_TriggerAfterStop(t *testing.T) {
	store := okStore()
	src := staticSource("reddit", []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil)
	s := NewScheduler(Params{Sources: []Source{src}, Store: store, Interval: time.Hour})

	s.Start(context.Background())
	s.Stop()
	s.TriggerRefresh()
	s.TriggerCleanup()
	s.Stop()

	assert.Empty(t, src.FetchCalls(), "refresh ignored after stop")
	assert.Empty(t, store.DeduplicateAllCalls(), "cleanup ignored after stop")
}

func TestScheduler_StopWithConcurrentTriggers(t *testing.T) {
	for range 200 {
		src := staticSource("reddit", []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil)
		s := NewScheduler(Params{Sources: []Source{src}, Store: okStore(), Interval: time.Hour})
		s.Start(context.Background())

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
		go func() {
			defer wg.Done()
			s.TriggerRefresh()
		}()
		go func() {
			defer wg.Done()
			s.TriggerCleanup()
		}()
		wg.Wait()

		s.Stop() // waits for a trigger accepted before the first stop
		assert.Equal(t, 0, s.Status().ActiveCycles)
		assert.False(t, s.Status().Running)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	var mu sync.Mutex
	var order []string
	track := func(op string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, op)
	}

	store := &mocks.StoreMock{
		UpsertFunc: func(ctx context.Context, topic domain.Topic) error {
			track("upsert")
			return nil
		},
		EvictOlderThanFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			track("evict")
			return 0, nil
		},
		DeduplicateAllFunc: func(ctx context.Context) (domain.CleanupReport, error) {
			track("dedup")
			return domain.CleanupReport{}, nil
		},
	}
	src := staticSource("reddit", []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil)
	s := NewScheduler(Params{Sources: []Source{src}, Store: store, Cache: &mocks.CacheClearerMock{ClearAllFunc: func() {}},
		Interval: time.Hour, RefreshOnStart: true, CleanupOnStart: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.Eventually(t, func() bool { return !s.LastUpdate().IsZero() }, time.Second, 5*time.Millisecond)
	st := s.Status()
	assert.True(t, st.Running)
	assert.Equal(t, time.Hour, st.Interval)
	assert.False(t, st.NextRun.IsZero())

	s.Stop()
	assert.False(t, s.Status().Running)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"dedup", "evict", "upsert"}, order)
}

func TestScheduler_Ticker(t *testing.T) {
	src := staticSource("reddit", []domain.RawItem{{Platform: domain.PlatformReddit, Title: "post"}}, nil)
	store := okStore()
	s := NewScheduler(Params{Sources: []Source{src}, Store: store, Interval: 10 * time.Millisecond})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return len(src.FetchCalls()) >= 2 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()
	assert.Empty(t, store.DeduplicateAllCalls(), "no cleanup unless requested")
}
