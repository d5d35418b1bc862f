package main

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/trendscope/pkg/config"
	"github.com/umputun/trendscope/pkg/scheduler"
	"github.com/umputun/trendscope/pkg/source"
)

// makeSources creates adapters of all enabled sources, YouTube without an api key is skipped
func makeSources(cfg *config.Config) (sources []scheduler.Source) {
	sc := cfg.Sources
	params := source.Params{
		Client:     &http.Client{Timeout: sc.Timeout},
		UserAgent:  sc.UserAgent,
		Retries:    sc.Retries,
		RetryDelay: sc.RetryDelay,
	}

	add := func(s scheduler.Source) {
		sources = append(sources, s)
		lgr.Printf("[DEBUG] source %s enabled", s.Name())
	}

	if !sc.Reddit.Disabled {
		add(source.NewReddit(source.RedditConfig{
			Params:       params,
			ClientID:     sc.Reddit.ClientID,
			ClientSecret: sc.Reddit.ClientSecret,
			Subreddits:   sc.Reddit.Subreddits,
			Limit:        sc.Reddit.Limit,
		}))
	}

	switch {
	case sc.YouTube.Disabled:
	case sc.YouTube.APIKey == "":
		lgr.Printf("[WARN] youtube api key is not set, youtube source skipped")
	default:
		add(source.NewYouTube(source.YouTubeConfig{
			Params:     params,
			APIKey:     sc.YouTube.APIKey,
			Regions:    sc.YouTube.Regions,
			MaxResults: sc.YouTube.MaxResults,
		}))
	}

	if !sc.GoogleTrends.Disabled {
		add(source.NewGoogleTrends(source.GoogleTrendsConfig{
			Params: params,
			Geos:   sc.GoogleTrends.Geos,
			Limit:  sc.GoogleTrends.Limit,
		}))
	}

	if !sc.HackerNews.Disabled {
		add(source.NewHackerNews(source.HackerNewsConfig{
			Params:     params,
			Lists:      sc.HackerNews.Lists,
			Limit:      sc.HackerNews.Limit,
			MaxWorkers: sc.HackerNews.MaxWorkers,
		}))
	}

	if !sc.GitHub.Disabled {
		add(source.NewGitHub(source.GitHubConfig{
			Params:    params,
			Languages: sc.GitHub.Languages,
			Since:     sc.GitHub.Since,
		}))
	}

	lgr.Printf("[INFO] %d sources enabled", len(sources))
	return sources
}
