package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Refresh scheduler configuration"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" jsonschema:"description=Result cache configuration"`
	Limits   LimitsConfig   `yaml:"limits" json:"limits" jsonschema:"description=Size limits of stored and served lists"`
	Sources  SourcesConfig  `yaml:"sources" json:"sources" jsonschema:"description=Trending sources configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:trendscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds refresh scheduler settings
type ScheduleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"default=15m,description=Interval between refresh cycles"`
	Retention       time.Duration `yaml:"retention" json:"retention" jsonschema:"default=168h,description=Topics older than this are evicted on refresh"`
	SourceTimeout   time.Duration `yaml:"source_timeout" json:"source_timeout" jsonschema:"default=60s,description=Time limit of one source fetch"`
	RefreshOnStart  bool          `yaml:"refresh_on_start" json:"refresh_on_start" jsonschema:"default=false,description=Run a refresh cycle right after start"`
	CleanupOnStart  bool          `yaml:"cleanup_on_start" json:"cleanup_on_start" jsonschema:"default=false,description=Remove stored duplicates right after start"`
}

// CacheConfig holds result cache settings
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=15m,description=Life time of cached trending lists"`
}

// LimitsConfig holds list size limits
type LimitsConfig struct {
	PerPlatform       int `yaml:"per_platform" json:"per_platform" jsonschema:"default=200,minimum=1,description=Topics kept per platform in one refresh cycle"`
	DescriptionLength int `yaml:"description_length" json:"description_length" jsonschema:"default=200,minimum=1,description=Maximum description length in characters"`
	MaxTotal          int `yaml:"max_total" json:"max_total" jsonschema:"default=500,minimum=1,description=Size of the trending list"`
	MaxDatabaseFetch  int `yaml:"max_database_fetch" json:"max_database_fetch" jsonschema:"default=1000,minimum=1,description=Rows read per platform to build the trending list"`
	Scoped            int `yaml:"scoped" json:"scoped" jsonschema:"default=200,minimum=1,description=Size of platform and topic lists"`
}

// SourcesConfig holds settings of all trending sources
type SourcesConfig struct {
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for source requests"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP client timeout of source requests"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per source request"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Initial delay between attempts"`

	Reddit       RedditConfig       `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit hot posts"`
	YouTube      YouTubeConfig      `yaml:"youtube" json:"youtube" jsonschema:"description=YouTube most popular videos"`
	GoogleTrends GoogleTrendsConfig `yaml:"google_trends" json:"google_trends" jsonschema:"description=Google Trends daily searches"`
	HackerNews   HackerNewsConfig   `yaml:"hacker_news" json:"hacker_news" jsonschema:"description=Hacker News top and best stories"`
	GitHub       GitHubConfig       `yaml:"github" json:"github" jsonschema:"description=GitHub trending repositories"`
}

// RedditConfig holds reddit source settings
type RedditConfig struct {
	Disabled     bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source"`
	ClientID     string   `yaml:"client_id" json:"client_id" jsonschema:"description=OAuth client id (public listings are used if empty)"`
	ClientSecret string   `yaml:"client_secret" json:"client_secret" jsonschema:"description=OAuth client secret (can use environment variable)"`
	Subreddits   []string `yaml:"subreddits" json:"subreddits" jsonschema:"description=Subreddits to read"`
	Limit        int      `yaml:"limit" json:"limit" jsonschema:"default=25,minimum=1,maximum=100,description=Posts per subreddit"`
}

// YouTubeConfig holds youtube source settings
type YouTubeConfig struct {
	Disabled   bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source"`
	APIKey     string   `yaml:"api_key" json:"api_key" jsonschema:"description=YouTube data API key (source is skipped if empty)"`
	Regions    []string `yaml:"regions" json:"regions" jsonschema:"description=Region codes of the most popular chart"`
	MaxResults int      `yaml:"max_results" json:"max_results" jsonschema:"default=50,minimum=1,maximum=50,description=Videos per region"`
}

// GoogleTrendsConfig holds google trends source settings
type GoogleTrendsConfig struct {
	Disabled bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source"`
	Geos     []string `yaml:"geos" json:"geos" jsonschema:"description=Geo codes of trending searches"`
	Limit    int      `yaml:"limit" json:"limit" jsonschema:"default=20,minimum=1,description=Search terms per geo"`
}

// HackerNewsConfig holds hacker news source settings
type HackerNewsConfig struct {
	Disabled   bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source"`
	Lists      []string `yaml:"lists" json:"lists" jsonschema:"description=Story lists to read (top and best)"`
	Limit      int      `yaml:"limit" json:"limit" jsonschema:"default=30,minimum=1,description=Stories per list"`
	MaxWorkers int      `yaml:"max_workers" json:"max_workers" jsonschema:"default=10,minimum=1,description=Concurrent item requests"`
}

// GitHubConfig holds github trending source settings
type GitHubConfig struct {
	Disabled  bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source"`
	Languages []string `yaml:"languages" json:"languages" jsonschema:"description=Trending languages (empty string for all)"`
	Since     string   `yaml:"since" json:"since" jsonschema:"default=daily,enum=daily,enum=weekly,enum=monthly,description=Trending period"`
}

// Load reads configuration from a YAML file. Empty path means built-in defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:trendscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if c.Schedule.RefreshInterval == 0 {
		c.Schedule.RefreshInterval = 15 * time.Minute
	}
	if c.Schedule.Retention == 0 {
		c.Schedule.Retention = 7 * 24 * time.Hour
	}
	if c.Schedule.SourceTimeout == 0 {
		c.Schedule.SourceTimeout = 60 * time.Second
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 15 * time.Minute
	}

	// limits
	setInt(&c.Limits.PerPlatform, 200)
	setInt(&c.Limits.DescriptionLength, 200)
	setInt(&c.Limits.MaxTotal, 500)
	setInt(&c.Limits.MaxDatabaseFetch, 1000)
	setInt(&c.Limits.Scoped, 200)

	// sources, lists are left empty and adapters fill their own defaults
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 30 * time.Second
	}
	setInt(&c.Sources.Retries, 3)
	if c.Sources.RetryDelay == 0 {
		c.Sources.RetryDelay = time.Second
	}
	setInt(&c.Sources.Reddit.Limit, 25)
	setInt(&c.Sources.YouTube.MaxResults, 50)
	setInt(&c.Sources.GoogleTrends.Limit, 20)
	setInt(&c.Sources.HackerNews.Limit, 30)
	setInt(&c.Sources.HackerNews.MaxWorkers, 10)
	if c.Sources.GitHub.Since == "" {
		c.Sources.GitHub.Since = "daily"
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	if cfg.Schedule.RefreshInterval < time.Minute {
		return errors.New("schedule.refresh_interval must be at least 1 minute")
	}
	if cfg.Schedule.Retention < time.Hour {
		return errors.New("schedule.retention must be at least 1 hour")
	}
	if cfg.Schedule.SourceTimeout < time.Second {
		return errors.New("schedule.source_timeout must be at least 1 second")
	}
	if cfg.Cache.TTL < 0 {
		return errors.New("cache.ttl must be non-negative")
	}

	limits := map[string]int{
		"limits.per_platform":       cfg.Limits.PerPlatform,
		"limits.description_length": cfg.Limits.DescriptionLength,
		"limits.max_total":          cfg.Limits.MaxTotal,
		"limits.max_database_fetch": cfg.Limits.MaxDatabaseFetch,
		"limits.scoped":             cfg.Limits.Scoped,
		"sources.retries":           cfg.Sources.Retries,
	}
	for name, v := range limits {
		if v < 1 {
			return fmt.Errorf("%s must be at least 1", name)
		}
	}

	if cfg.Sources.Reddit.Limit > 100 {
		return errors.New("sources.reddit.limit must be at most 100")
	}
	if cfg.Sources.YouTube.MaxResults > 50 {
		return errors.New("sources.youtube.max_results must be at most 50")
	}
	if (cfg.Sources.Reddit.ClientID == "") != (cfg.Sources.Reddit.ClientSecret == "") {
		return errors.New("sources.reddit client_id and client_secret must be set together")
	}
	if !slices.Contains([]string{"daily", "weekly", "monthly"}, cfg.Sources.GitHub.Since) {
		return fmt.Errorf("sources.github.since must be daily, weekly or monthly, got %q", cfg.Sources.GitHub.Since)
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// Secrets returns configured credentials, used to mask them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.Sources.Reddit.ClientSecret, c.Sources.YouTube.APIKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
