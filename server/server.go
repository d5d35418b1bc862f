package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/trendscope/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/trending.go -pkg mocks -skip-ensure -fmt goimports . Trending
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	trending  Trending
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Trending interface for trending queries
type Trending interface {
	Trending(ctx context.Context, sort domain.Sort) (domain.Listing, error)
	AllTrending(ctx context.Context, sort domain.Sort) (domain.Listing, error)
	PlatformTrending(ctx context.Context, platform string, sort domain.Sort) (domain.Platform, []domain.Topic, error)
	TopicTrending(ctx context.Context, tag domain.TopicTag, sort domain.Sort) ([]domain.Topic, error)
	TopicCounts(ctx context.Context) ([]domain.TopicCount, error)
	Stats(ctx context.Context) (domain.Stats, error)
	CacheStatus() map[string]domain.CacheInfo
	ClearCache()
	LastUpdate(ctx context.Context) (time.Time, error)
}

// Scheduler interface for on-demand operations
type Scheduler interface {
	TriggerRefresh()
	TriggerCleanup()
	Status() domain.SchedulerStatus
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, trending Trending, scheduler Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		trending:  trending,
		scheduler: scheduler,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("trendscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /trending", s.trendingHandler)
		r.HandleFunc("GET /trending/all", s.allTrendingHandler)
		r.HandleFunc("GET /trending/topic/{topic}", s.topicTrendingHandler)
		r.HandleFunc("GET /trending/{platform}", s.platformTrendingHandler)
		r.HandleFunc("GET /topics", s.topicsHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /last-update", s.lastUpdateHandler)

		r.HandleFunc("GET /cache/status", s.cacheStatusHandler)
		r.HandleFunc("POST /cache/clear", s.cacheClearHandler)

		r.HandleFunc("POST /update/trigger", s.triggerUpdateHandler)
		r.HandleFunc("POST /database/cleanup", s.cleanupHandler)
		r.HandleFunc("GET /scheduler/status", s.schedulerStatusHandler)
	})
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends failure envelope with the error message
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, errorResponse{Success: false, Error: errMsg})
}
