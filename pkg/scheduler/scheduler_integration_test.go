package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/trendscope/pkg/cache"
	"github.com/umputun/trendscope/pkg/domain"
	"github.com/umputun/trendscope/pkg/repository"
	"github.com/umputun/trendscope/pkg/scheduler/mocks"
)

func TestScheduler_Integration_RefreshCycle(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	now := time.Now().UTC()
	// an expired row and a fresh one, both from an earlier refresh
	require.NoError(t, repos.Topic.Upsert(ctx, domain.Topic{Platform: domain.PlatformReddit, Title: "ancient",
		URL: "u0", Timestamp: now.Add(-10 * 24 * time.Hour), Topic: domain.TagGeneral}))
	require.NoError(t, repos.Topic.Upsert(ctx, domain.Topic{Platform: domain.PlatformReddit, Title: "A",
		URL: "u1", Engagement: 5, Timestamp: now.Add(-24 * time.Hour), Topic: domain.TagGeneral}))

	results := cache.New(time.Minute)
	results.Set(cache.KeyTrending, cache.Snapshot{Topics: []domain.Topic{{Title: "stale"}}, Timestamp: now})

	var fail bool
	reddit := &mocks.SourceMock{
		NameFunc: func() string { return "reddit" },
		FetchFunc: func(ctx context.Context) ([]domain.RawItem, error) {
			if fail {
				return nil, errors.New("reddit is down")
			}
			return []domain.RawItem{
				{Platform: domain.PlatformReddit, Source: "technology", Title: "A", URL: "u1", Score: 5, Comments: 2},
				{Platform: domain.PlatformReddit, Source: "cryptocurrency", Title: "bitcoin moon soon", URL: "u2"},
			}, nil
		},
	}

	s := NewScheduler(Params{Sources: []Source{reddit}, Store: repos.Topic, Cache: results})
	report := s.Refresh(ctx)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, int64(1), report.Evicted)

	count, err := repos.Topic.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "expired row evicted, A replaced in place")

	topics, err := repos.Topic.QueryWindow(ctx, domain.WindowQuery{
		Platform: domain.PlatformReddit, Since: now.Add(-7 * 24 * time.Hour),
		Sort: domain.Sort{By: domain.SortEngagement, Order: domain.OrderDesc},
	})
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "A", topics[0].Title)
	assert.Equal(t, int64(9), topics[0].Engagement)
	assert.Equal(t, domain.TagCrypto, topics[1].Topic)

	_, ok := results.Get(cache.KeyTrending)
	assert.False(t, ok, "cache cleared after commit")

	// a failed refresh keeps stored rows and cached results
	results.Set(cache.KeyTrending, cache.Snapshot{Topics: topics, Timestamp: now})
	lastUpdate := s.LastUpdate()
	fail = true
	report = s.Refresh(ctx)
	assert.True(t, report.Skipped)

	count, err = repos.Topic.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	_, ok = results.Get(cache.KeyTrending)
	assert.True(t, ok)
	assert.Equal(t, lastUpdate, s.LastUpdate())
}
