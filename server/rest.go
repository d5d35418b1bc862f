package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/trendscope/pkg/domain"
)

// lastUpdateLayout is the human readable last update format
const lastUpdateLayout = "2006-01-02 15:04:05"

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type listingResponse struct {
	Success         bool             `json:"success"`
	Topics          []domain.Topic   `json:"topics"`
	Count           int              `json:"count"`
	Timestamp       time.Time        `json:"timestamp"`
	Cached          bool             `json:"cached"`
	CacheTTLMinutes *int             `json:"cache_ttl_minutes,omitempty"`
	SortBy          domain.SortBy    `json:"sort_by"`
	SortOrder       domain.SortOrder `json:"sort_order"`
}

type platformResponse struct {
	Success   bool             `json:"success"`
	Platform  domain.Platform  `json:"platform"`
	Topics    []domain.Topic   `json:"topics"`
	Count     int              `json:"count"`
	SortBy    domain.SortBy    `json:"sort_by"`
	SortOrder domain.SortOrder `json:"sort_order"`
}

type topicResponse struct {
	Success   bool             `json:"success"`
	Topic     domain.TopicTag  `json:"topic"`
	Topics    []domain.Topic   `json:"topics"`
	Count     int              `json:"count"`
	SortBy    domain.SortBy    `json:"sort_by"`
	SortOrder domain.SortOrder `json:"sort_order"`
}

type statsResponse struct {
	Success            bool                      `json:"success"`
	PlatformStats      map[domain.Platform]int64 `json:"platform_stats"`
	CategoryStats      map[string]int64          `json:"category_stats"`
	TotalTopicsWindow  int64                     `json:"total_topics_7d"`
	TotalTopicsAllTime int64                     `json:"total_topics_all_time"`
	Cached             bool                      `json:"cached"`
}

type schedulerStatusResponse struct {
	Success         bool                  `json:"success"`
	Running         bool                  `json:"scheduler_running"`
	JobID           string                `json:"job_id"`
	JobName         string                `json:"job_name"`
	NextRun         *time.Time            `json:"next_run"`
	LastRun         *time.Time            `json:"last_run"`
	LastUpdate      *time.Time            `json:"last_update"`
	State           domain.SchedulerState `json:"state"`
	ActiveCycles    int                   `json:"active_cycles"`
	IntervalMinutes int                   `json:"interval_minutes"`
}

type messageResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// trendingHandler returns the capped trending mix, GET /api/trending?sort=&order=
func (s *Server) trendingHandler(w http.ResponseWriter, r *http.Request) {
	sort := sortParams(r)
	listing, err := s.trending.Trending(r.Context(), sort)
	if err != nil {
		log.Printf("[ERROR] failed to get trending topics: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, makeListingResponse(listing, sort))
}

// allTrendingHandler returns all topics of the window, GET /api/trending/all?sort=&order=
func (s *Server) allTrendingHandler(w http.ResponseWriter, r *http.Request) {
	sort := sortParams(r)
	listing, err := s.trending.AllTrending(r.Context(), sort)
	if err != nil {
		log.Printf("[ERROR] failed to get all trending topics: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, makeListingResponse(listing, sort))
}

// platformTrendingHandler returns topics of one platform, GET /api/trending/{platform}
func (s *Server) platformTrendingHandler(w http.ResponseWriter, r *http.Request) {
	sort := sortParams(r)
	platform, topics, err := s.trending.PlatformTrending(r.Context(), r.PathValue("platform"), sort)
	if err != nil {
		log.Printf("[ERROR] failed to get %s topics: %v", r.PathValue("platform"), err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	topics = nonNil(topics)
	RenderJSON(w, r, http.StatusOK, platformResponse{Success: true, Platform: platform, Topics: topics,
		Count: len(topics), SortBy: sort.By, SortOrder: sort.Order})
}

// topicTrendingHandler returns topics with one topic tag, GET /api/trending/topic/{topic}
func (s *Server) topicTrendingHandler(w http.ResponseWriter, r *http.Request) {
	sort := sortParams(r)
	tag := domain.TopicTag(strings.ToLower(strings.TrimSpace(r.PathValue("topic"))))
	topics, err := s.trending.TopicTrending(r.Context(), tag, sort)
	if err != nil {
		log.Printf("[ERROR] failed to get %s topics: %v", tag, err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	topics = nonNil(topics)
	RenderJSON(w, r, http.StatusOK, topicResponse{Success: true, Topic: tag, Topics: topics,
		Count: len(topics), SortBy: sort.By, SortOrder: sort.Order})
}

// topicsHandler returns topic tags with counts, GET /api/topics
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.trending.TopicCounts(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get topic counts: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if counts == nil {
		counts = []domain.TopicCount{}
	}
	RenderJSON(w, r, http.StatusOK, map[string]any{"success": true, "topics": counts})
}

// statsHandler returns platform and category statistics, GET /api/stats
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trending.Stats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get stats: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	resp := statsResponse{
		Success:            true,
		PlatformStats:      stats.Platforms,
		CategoryStats:      make(map[string]int64, len(stats.Categories)),
		TotalTopicsWindow:  stats.TotalWindow,
		TotalTopicsAllTime: stats.TotalAllTime,
	}
	if resp.PlatformStats == nil {
		resp.PlatformStats = map[domain.Platform]int64{}
	}
	for _, c := range stats.Categories {
		resp.CategoryStats[c.Category] = c.Count
	}
	RenderJSON(w, r, http.StatusOK, resp)
}

// lastUpdateHandler returns time of the last refresh, GET /api/last-update
func (s *Server) lastUpdateHandler(w http.ResponseWriter, r *http.Request) {
	ts, err := s.trending.LastUpdate(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get last update: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	ts = ts.UTC()
	RenderJSON(w, r, http.StatusOK, map[string]any{
		"success":     true,
		"last_update": ts.Format(time.RFC3339),
		"formatted":   ts.Format(lastUpdateLayout),
	})
}

// cacheStatusHandler reports all named cache entries, GET /api/cache/status
func (s *Server) cacheStatusHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, map[string]any{
		"success":      true,
		"cache_status": s.trending.CacheStatus(),
		"cache_type":   "memory",
	})
}

// cacheClearHandler drops all cached results, POST /api/cache/clear
func (s *Server) cacheClearHandler(w http.ResponseWriter, r *http.Request) {
	s.trending.ClearCache()
	RenderJSON(w, r, http.StatusOK, messageResponse{Success: true, Message: "Cache cleared successfully"})
}

// triggerUpdateHandler starts a refresh in background, POST /api/update/trigger
func (s *Server) triggerUpdateHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.TriggerRefresh()
	now := time.Now().UTC()
	RenderJSON(w, r, http.StatusOK, messageResponse{Success: true,
		Message: "Background update triggered successfully", Timestamp: &now})
}

// cleanupHandler starts a duplicate cleanup in background, POST /api/database/cleanup
func (s *Server) cleanupHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.TriggerCleanup()
	now := time.Now().UTC()
	RenderJSON(w, r, http.StatusOK, messageResponse{Success: true,
		Message: "Database cleanup triggered successfully", Timestamp: &now})
}

// schedulerStatusHandler reports the refresh job, GET /api/scheduler/status
func (s *Server) schedulerStatusHandler(w http.ResponseWriter, r *http.Request) {
	st := s.scheduler.Status()
	RenderJSON(w, r, http.StatusOK, schedulerStatusResponse{
		Success:         true,
		Running:         st.Running,
		JobID:           st.JobID,
		JobName:         st.JobName,
		NextRun:         timePtr(st.NextRun),
		LastRun:         timePtr(st.LastRun),
		LastUpdate:      timePtr(st.LastUpdate),
		State:           st.State,
		ActiveCycles:    st.ActiveCycles,
		IntervalMinutes: int(st.Interval / time.Minute),
	})
}

// sortParams reads sort and order query parameters
func sortParams(r *http.Request) domain.Sort {
	return domain.ParseSort(r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
}

func makeListingResponse(l domain.Listing, sort domain.Sort) listingResponse {
	topics := nonNil(l.Topics)
	res := listingResponse{Success: true, Topics: topics, Count: len(topics), Timestamp: l.Timestamp,
		Cached: l.Cached, SortBy: sort.By, SortOrder: sort.Order}
	if l.Cached {
		ttl := l.CacheTTLMinutes
		res.CacheTTLMinutes = &ttl
	}
	return res
}

// nonNil makes sure empty lists are rendered as [] and not null
func nonNil(topics []domain.Topic) []domain.Topic {
	if topics == nil {
		return []domain.Topic{}
	}
	return topics
}

// timePtr returns nil for zero time, rendered as null
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
