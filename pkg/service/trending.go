// Package service answers trending queries, reading through the result cache into the topic store.
package service

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/trendscope/pkg/aggregate"
	"github.com/umputun/trendscope/pkg/cache"
	"github.com/umputun/trendscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/update_tracker.go -pkg mocks -skip-ensure -fmt goimports . UpdateTracker

// default limits
const (
	DefaultWindow           = 7 * 24 * time.Hour
	DefaultMaxDatabaseFetch = 1000
	DefaultMaxTotal         = 500
	DefaultScopedLimit      = 200
)

// Store reads stored topics
type Store interface {
	QueryWindow(ctx context.Context, q domain.WindowQuery) ([]domain.Topic, error)
	Aggregate(ctx context.Context, since time.Time) (domain.Stats, error)
	LatestTimestamp(ctx context.Context) (time.Time, error)
}

// UpdateTracker reports completion time of the last successful refresh
type UpdateTracker interface {
	LastUpdate() time.Time
}

// Params holds service dependencies and limits
type Params struct {
	Store   Store
	Cache   *cache.Cache
	Updates UpdateTracker

	Platforms        []domain.Platform // platforms mixed into the trending list, all known if empty
	Window           time.Duration     // only topics newer than now-Window are served
	MaxDatabaseFetch int               // rows read per platform for the trending list
	MaxTotal         int               // size of the trending list
	ScopedLimit      int               // rows read for platform and topic lists

	Now func() time.Time
}

// TrendingService implements trending queries
type TrendingService struct {
	store            Store
	cache            *cache.Cache
	updates          UpdateTracker
	platforms        []domain.Platform
	window           time.Duration
	maxDatabaseFetch int
	maxTotal         int
	scopedLimit      int
	now              func() time.Time
}

// NewTrendingService creates a new trending service
func NewTrendingService(params Params) *TrendingService {
	if params.Cache == nil {
		params.Cache = cache.New(cache.DefaultTTL)
	}
	if len(params.Platforms) == 0 {
		params.Platforms = domain.Platforms()
	}
	if params.Window <= 0 {
		params.Window = DefaultWindow
	}
	if params.MaxDatabaseFetch <= 0 {
		params.MaxDatabaseFetch = DefaultMaxDatabaseFetch
	}
	if params.MaxTotal <= 0 {
		params.MaxTotal = DefaultMaxTotal
	}
	if params.ScopedLimit <= 0 {
		params.ScopedLimit = DefaultScopedLimit
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &TrendingService{
		store:            params.Store,
		cache:            params.Cache,
		updates:          params.Updates,
		platforms:        params.Platforms,
		window:           params.Window,
		maxDatabaseFetch: params.MaxDatabaseFetch,
		maxTotal:         params.MaxTotal,
		scopedLimit:      params.ScopedLimit,
		now:              params.Now,
	}
}

// Trending returns the capped mix of all configured platforms.
// The list is cached in random order, the requested sort is applied to a copy.
func (s *TrendingService) Trending(ctx context.Context, sort domain.Sort) (domain.Listing, error) {
	if l, ok := s.cached(cache.KeyTrending, sort); ok {
		return l, nil
	}
	topics, err := s.trendingBaseline(ctx)
	if err != nil {
		return domain.Listing{}, err
	}
	snap := cache.Snapshot{Topics: topics, Timestamp: s.now()}
	s.cache.Set(cache.KeyTrending, snap)
	lgr.Printf("[DEBUG] trending list built from store, %d topics", len(topics))
	return domain.Listing{Topics: SortTopics(topics, sort), Timestamp: snap.Timestamp}, nil
}

// AllTrending returns every topic of the window without a cap, deduplicated by title and url
func (s *TrendingService) AllTrending(ctx context.Context, sort domain.Sort) (domain.Listing, error) {
	if l, ok := s.cached(cache.KeyAllTrending, sort); ok {
		return l, nil
	}
	topics, err := s.store.QueryWindow(ctx, domain.WindowQuery{Since: s.since(), Sort: domain.Sort{By: domain.SortRandom}})
	if err != nil {
		return domain.Listing{}, fmt.Errorf("query all topics: %w", err)
	}
	snap := cache.Snapshot{Topics: topics, Timestamp: s.now()}
	s.cache.Set(cache.KeyAllTrending, snap)
	lgr.Printf("[DEBUG] full trending list built from store, %d topics", len(topics))
	return domain.Listing{Topics: SortTopics(topics, sort), Timestamp: snap.Timestamp}, nil
}

// PlatformTrending returns topics of one platform, not cached.
// The platform is resolved by name or slug, the resolved platform is returned along with topics.
// A blank platform matches nothing.
func (s *TrendingService) PlatformTrending(ctx context.Context, platform string, sort domain.Sort) (domain.Platform, []domain.Topic, error) {
	p := domain.ParsePlatform(platform)
	if p == "" {
		return p, []domain.Topic{}, nil
	}
	topics, err := s.store.QueryWindow(ctx, domain.WindowQuery{Platform: p, Since: s.since(), Sort: sort, Limit: s.scopedLimit})
	if err != nil {
		return p, nil, fmt.Errorf("query %s topics: %w", p, err)
	}
	return p, topics, nil
}

// TopicTrending returns topics with the given topic tag, not cached. A blank tag matches nothing.
func (s *TrendingService) TopicTrending(ctx context.Context, tag domain.TopicTag, sort domain.Sort) ([]domain.Topic, error) {
	if strings.TrimSpace(string(tag)) == "" {
		return []domain.Topic{}, nil
	}
	topics, err := s.store.QueryWindow(ctx, domain.WindowQuery{Topic: tag, Since: s.since(), Sort: sort, Limit: s.scopedLimit})
	if err != nil {
		return nil, fmt.Errorf("query %s topics: %w", tag, err)
	}
	return topics, nil
}

// TopicCounts returns the number of trending topics per topic tag, most populated first.
// Counted over the cached trending list if fresh, otherwise over the same list built from the store.
func (s *TrendingService) TopicCounts(ctx context.Context) ([]domain.TopicCount, error) {
	topics := []domain.Topic{}
	if snap, ok := s.cache.Get(cache.KeyTrending); ok {
		topics = snap.Topics
	} else {
		var err error
		if topics, err = s.trendingBaseline(ctx); err != nil {
			return nil, err
		}
	}

	counts := map[domain.TopicTag]int{}
	for _, t := range topics {
		tag := t.Topic
		if tag == "" {
			tag = domain.TagGeneral
		}
		counts[tag]++
	}
	res := make([]domain.TopicCount, 0, len(counts))
	for tag, n := range counts {
		res = append(res, domain.TopicCount{Topic: tag, Count: n})
	}
	slices.SortFunc(res, func(a, b domain.TopicCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Topic, b.Topic)
	})
	return res, nil
}

// Stats returns platform and category counts of the window and the total number of stored topics
func (s *TrendingService) Stats(ctx context.Context) (domain.Stats, error) {
	res, err := s.store.Aggregate(ctx, s.since())
	if err != nil {
		return domain.Stats{}, fmt.Errorf("aggregate topics: %w", err)
	}
	return res, nil
}

// CacheStatus returns state of all named cache entries
func (s *TrendingService) CacheStatus() map[string]domain.CacheInfo {
	res := make(map[string]domain.CacheInfo, len(cache.Names))
	for name, key := range cache.Names {
		res[name] = s.cache.Info(key)
	}
	return res
}

// ClearCache drops all cached results
func (s *TrendingService) ClearCache() {
	s.cache.ClearAll()
	lgr.Printf("[INFO] cache cleared")
}

// LastUpdate returns time of the last successful refresh.
// Before the first refresh it falls back to the newest stored topic, then to the current time.
func (s *TrendingService) LastUpdate(ctx context.Context) (time.Time, error) {
	if s.updates != nil {
		if ts := s.updates.LastUpdate(); !ts.IsZero() {
			return ts, nil
		}
	}
	ts, err := s.store.LatestTimestamp(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("get last update: %w", err)
	}
	if ts.IsZero() {
		return s.now(), nil
	}
	return ts, nil
}

// cached returns listing from the cache entry sorted as requested
func (s *TrendingService) cached(key string, sort domain.Sort) (domain.Listing, bool) {
	snap, ok := s.cache.Get(key)
	if !ok {
		return domain.Listing{}, false
	}
	return domain.Listing{
		Topics:          SortTopics(snap.Topics, sort),
		Timestamp:       snap.Timestamp,
		Cached:          true,
		CacheTTLMinutes: s.cache.Info(key).TTLMinutes,
	}, true
}

// trendingBaseline reads a random sample of every platform, keeps the first topic of each title,
// shuffles the mix and caps it
func (s *TrendingService) trendingBaseline(ctx context.Context) ([]domain.Topic, error) {
	var all []domain.Topic
	since := s.since()
	for _, p := range s.platforms {
		topics, err := s.store.QueryWindow(ctx, domain.WindowQuery{Platform: p, Since: since,
			Sort: domain.Sort{By: domain.SortRandom}, Limit: s.maxDatabaseFetch})
		if err != nil {
			return nil, fmt.Errorf("query %s topics: %w", p, err)
		}
		all = append(all, topics...)
	}
	res := aggregate.Merge(all, aggregate.MergeOptions{})
	rand.Shuffle(len(res), func(i, j int) { res[i], res[j] = res[j], res[i] })
	if len(res) > s.maxTotal {
		res = res[:s.maxTotal]
	}
	return res, nil
}

func (s *TrendingService) since() time.Time {
	return s.now().Add(-s.window)
}

// SortTopics returns a sorted copy of topics. Random order keeps the input order.
// The sort is stable, topics with equal keys keep their relative order.
func SortTopics(topics []domain.Topic, sort domain.Sort) []domain.Topic {
	res := slices.Clone(topics)
	if res == nil {
		res = []domain.Topic{}
	}
	var compare func(a, b domain.Topic) int
	switch sort.By {
	case domain.SortEngagement:
		compare = func(a, b domain.Topic) int { return cmp.Compare(a.Engagement, b.Engagement) }
	case domain.SortDate:
		compare = func(a, b domain.Topic) int { return a.Timestamp.Compare(b.Timestamp) }
	default:
		return res
	}
	if sort.Order != domain.OrderAsc {
		asc := compare
		compare = func(a, b domain.Topic) int { return asc(b, a) }
	}
	slices.SortStableFunc(res, compare)
	return res
}
