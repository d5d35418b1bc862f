// Package scheduler runs refresh cycles pulling trending records from all sources into the topic store.
// A cycle is started by the internal ticker or by a manual trigger, cycles may overlap.
package scheduler

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/trendscope/pkg/aggregate"
	"github.com/umputun/trendscope/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/cache_clearer.go -pkg mocks -skip-ensure -fmt goimports . CacheClearer

// job identity reported by Status
const (
	JobID   = "update_database"
	JobName = "Update database with fresh API data"
)

// Source fetches raw trending records of one platform
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// Store persists refreshed topics
type Store interface {
	Upsert(ctx context.Context, topic domain.Topic) error
	EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeduplicateAll(ctx context.Context) (domain.CleanupReport, error)
}

// CacheClearer invalidates cached query results
type CacheClearer interface {
	ClearAll()
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Sources    []Source
	Store      Store
	Cache      CacheClearer
	Normalizer *aggregate.Normalizer

	Interval       time.Duration // time between refresh cycles
	Retention      time.Duration // topics older than this are evicted on every refresh
	SourceTimeout  time.Duration // max time for a single source fetch
	PerPlatformCap int           // max topics accepted from one platform per refresh
	RefreshOnStart bool
	CleanupOnStart bool

	Now func() time.Time // time source, time.Now if nil
}

// Scheduler manages periodic refresh of trending topics
type Scheduler struct {
	sources        []Source
	store          Store
	cache          CacheClearer
	normalizer     *aggregate.Normalizer
	interval       time.Duration
	retention      time.Duration
	sourceTimeout  time.Duration
	perPlatformCap int
	refreshOnStart bool
	cleanupOnStart bool
	now            func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu         sync.Mutex
	baseCtx    context.Context
	running    bool
	stopped    bool // set by Stop, no background work is accepted after it
	state      domain.SchedulerState
	active     int
	lastRun    time.Time
	nextRun    time.Time
	lastUpdate time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.Interval <= 0 {
		params.Interval = 15 * time.Minute
	}
	if params.Retention <= 0 {
		params.Retention = 7 * 24 * time.Hour
	}
	if params.SourceTimeout <= 0 {
		params.SourceTimeout = 60 * time.Second
	}
	if params.PerPlatformCap <= 0 {
		params.PerPlatformCap = aggregate.DefaultPerPlatformCap
	}
	if params.Normalizer == nil {
		params.Normalizer = aggregate.NewNormalizer(aggregate.DefaultDescriptionLength)
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	return &Scheduler{
		sources:        params.Sources,
		store:          params.Store,
		cache:          params.Cache,
		normalizer:     params.Normalizer,
		interval:       params.Interval,
		retention:      params.Retention,
		sourceTimeout:  params.SourceTimeout,
		perPlatformCap: params.PerPlatformCap,
		refreshOnStart: params.RefreshOnStart,
		cleanupOnStart: params.CleanupOnStart,
		now:            params.Now,
		baseCtx:        context.Background(),
		state:          domain.StateIdle,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.mu.Lock()
	s.baseCtx = ctx
	s.running = true
	s.stopped = false
	s.nextRun = s.now().Add(s.interval)
	s.wg.Add(1)
	s.mu.Unlock()

	go s.refreshWorker(ctx)

	lgr.Printf("[INFO] scheduler started with refresh interval %v, retention %v, %d sources",
		s.interval, s.retention, len(s.sources))
}

// Stop gracefully stops the scheduler and waits for running cycles
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	lgr.Printf("[INFO] scheduler stopped")
}

// refreshWorker runs start-up work and then refreshes on every tick
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	if s.cleanupOnStart {
		s.cleanup(ctx)
	}
	if s.refreshOnStart {
		s.Refresh(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.nextRun = s.now().Add(s.interval)
			s.mu.Unlock()
			s.Refresh(ctx)
		}
	}
}

// TriggerRefresh starts a refresh cycle in background and returns immediately.
// Ignored after Stop.
func (s *Scheduler) TriggerRefresh() {
	lgr.Printf("[INFO] triggered immediate refresh")
	s.background("refresh", func(ctx context.Context) { s.Refresh(ctx) })
}

// TriggerCleanup starts a duplicate cleanup pass in background and returns immediately.
// Ignored after Stop.
func (s *Scheduler) TriggerCleanup() {
	lgr.Printf("[INFO] triggered duplicate cleanup")
	s.background("cleanup", s.cleanup)
}

// background runs fn in a goroutine tracked by the wait group, unless the scheduler is stopped.
// wg.Add is done under the same lock Stop takes before Wait.
func (s *Scheduler) background(name string, fn func(ctx context.Context)) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		lgr.Printf("[WARN] scheduler is stopped, %s ignored", name)
		return
	}
	ctx := s.baseCtx
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		fn(ctx)
	}()
}

// Refresh runs a full refresh cycle: fetch all sources, normalize and merge records,
// evict expired topics, store the merged set and invalidate the cache.
// Nothing is evicted, stored or invalidated if no source returned usable records,
// the cache and last update are kept if every store write failed.
func (s *Scheduler) Refresh(ctx context.Context) domain.RefreshReport {
	report := domain.RefreshReport{CycleID: uuid.NewString(), StartedAt: s.now()}
	s.enter(domain.StateFetching)
	defer s.leave()

	lgr.Printf("[INFO] refresh %s started, %d sources", report.CycleID, len(s.sources))
	raw := s.fetchAll(ctx, report.CycleID)

	candidates := make([]domain.Topic, 0)
	for _, items := range raw {
		report.Fetched += len(items)
		for _, item := range items {
			topic, ok := s.normalizer.Normalize(item, report.StartedAt)
			if !ok {
				lgr.Printf("[DEBUG] refresh %s: dropped record without title from %q", report.CycleID, item.Platform)
				continue
			}
			candidates = append(candidates, topic)
		}
	}
	topics := aggregate.Merge(candidates, aggregate.MergeOptions{PerPlatformCap: s.perPlatformCap})
	report.Merged = len(topics)

	if len(topics) == 0 {
		report.Skipped = true
		report.FinishedAt = s.now()
		lgr.Printf("[WARN] refresh %s: no topics fetched from any source, store and cache left untouched", report.CycleID)
		return report
	}

	s.setState(domain.StateCommitting)
	cutoff := report.StartedAt.Add(-s.retention)
	evicted, err := s.store.EvictOlderThan(ctx, cutoff)
	if err != nil {
		lgr.Printf("[WARN] refresh %s: failed to evict topics older than %s: %v", report.CycleID, cutoff.Format(time.RFC3339), err)
	}
	report.Evicted = evicted

	for _, topic := range topics {
		if err := s.store.Upsert(ctx, topic); err != nil {
			lgr.Printf("[WARN] refresh %s: failed to store %s topic %q: %v", report.CycleID, topic.Platform, topic.Title, err)
			report.Failed++
			continue
		}
		report.Stored++
	}

	report.FinishedAt = s.now()
	if report.Stored == 0 {
		lgr.Printf("[WARN] refresh %s: none of %d topics stored, cache and last update left untouched",
			report.CycleID, len(topics))
		return report
	}

	if s.cache != nil {
		s.cache.ClearAll()
	}
	s.mu.Lock()
	s.lastUpdate = report.FinishedAt
	s.mu.Unlock()

	lgr.Printf("[INFO] refresh %s completed in %v: fetched %d, merged %d, stored %d, failed %d, evicted %d",
		report.CycleID, report.FinishedAt.Sub(report.StartedAt), report.Fetched, report.Merged,
		report.Stored, report.Failed, report.Evicted)
	return report
}

// fetchAll runs all sources concurrently, each under its own timeout.
// Results are in source order, a failed or panicking source contributes nothing.
func (s *Scheduler) fetchAll(ctx context.Context, cycleID string) [][]domain.RawItem {
	res := make([][]domain.RawItem, len(s.sources))
	var g errgroup.Group
	for i, src := range s.sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					lgr.Printf("[WARN] refresh %s: source %s panicked: %v\n%s", cycleID, src.Name(), r, debug.Stack())
				}
			}()

			fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
			defer cancel()

			st := time.Now()
			items, err := src.Fetch(fetchCtx)
			if err != nil {
				lgr.Printf("[WARN] refresh %s: source %s failed: %v", cycleID, src.Name(), err)
				return nil
			}
			lgr.Printf("[DEBUG] refresh %s: source %s returned %d records in %v", cycleID, src.Name(), len(items), time.Since(st))
			res[i] = items
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return res
}

// cleanup removes stored duplicates
func (s *Scheduler) cleanup(ctx context.Context) {
	report, err := s.store.DeduplicateAll(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to clean up duplicate topics: %v", err)
		return
	}
	if report.Removed > 0 && s.cache != nil {
		s.cache.ClearAll()
	}
	lgr.Printf("[INFO] duplicate cleanup completed: %d rows before, %d after, %d removed",
		report.Before, report.After, report.Removed)
}

// Status returns current scheduler status
func (s *Scheduler) Status() domain.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := domain.SchedulerStatus{
		Running:      s.running,
		JobID:        JobID,
		JobName:      JobName,
		Interval:     s.interval,
		LastRun:      s.lastRun,
		LastUpdate:   s.lastUpdate,
		State:        s.state,
		ActiveCycles: s.active,
	}
	if s.running {
		res.NextRun = s.nextRun
	}
	return res
}

// LastUpdate returns completion time of the last refresh which stored topics, zero if none yet
func (s *Scheduler) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

// enter registers a started cycle
func (s *Scheduler) enter(state domain.SchedulerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active++
	s.state = state
	s.lastRun = s.now()
}

// leave registers a finished cycle, the state goes back to idle with the last running cycle
func (s *Scheduler) leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active--
	if s.active <= 0 {
		s.active = 0
		s.state = domain.StateIdle
	}
}

func (s *Scheduler) setState(state domain.SchedulerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
