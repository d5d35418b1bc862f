package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/trendscope/pkg/domain"
)

// GoogleTrendsConfig configures the google trends adapter
type GoogleTrendsConfig struct {
	Params
	FeedURL string // trending searches rss, https://trends.google.com/trending/rss
	Geos    []string
	Limit   int // terms per geo
}

// GoogleTrends reads daily trending searches from the public rss feed
type GoogleTrends struct {
	cfg    GoogleTrendsConfig
	req    requester
	parser *gofeed.Parser
}

// NewGoogleTrends makes google trends adapter
func NewGoogleTrends(cfg GoogleTrendsConfig) *GoogleTrends {
	if cfg.FeedURL == "" {
		cfg.FeedURL = "https://trends.google.com/trending/rss"
	}
	if len(cfg.Geos) == 0 {
		cfg.Geos = []string{"US"}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	return &GoogleTrends{cfg: cfg, req: newRequester(cfg.Params), parser: gofeed.NewParser()}
}

// Name returns adapter name
func (g *GoogleTrends) Name() string { return "google-trends" }

// Fetch returns trending search terms of all geos
func (g *GoogleTrends) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	var res []domain.RawItem
	var lastErr error
	failed := 0
	for _, geo := range g.cfg.Geos {
		items, err := g.fetchGeo(ctx, geo)
		if err != nil {
			lgr.Printf("[WARN] google trends: failed to fetch geo %s: %v", geo, err)
			lastErr = err
			failed++
			continue
		}
		res = append(res, items...)
	}
	if failed == len(g.cfg.Geos) && lastErr != nil {
		return nil, fmt.Errorf("all geos failed: %w", lastErr)
	}
	return res, nil
}

func (g *GoogleTrends) fetchGeo(ctx context.Context, geo string) ([]domain.RawItem, error) {
	body, err := g.req.get(ctx, g.cfg.FeedURL+"?geo="+url.QueryEscape(geo), addBrowserHeaders)
	if err != nil {
		return nil, err
	}
	feed, err := g.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	res := make([]domain.RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		term := strings.TrimSpace(item.Title)
		if term == "" {
			continue
		}
		if len(res) >= g.cfg.Limit {
			break
		}
		raw := domain.RawItem{
			Platform:    domain.PlatformGoogleTrends,
			Source:      strings.ToLower(geo),
			Title:       term,
			Description: newsTitle(item),
			URL:         "https://www.google.com/search?q=" + url.QueryEscape(term),
			Author:      "Google Trends",
			Rank:        len(res),
		}
		if item.PublishedParsed != nil {
			raw.Published = *item.PublishedParsed
		}
		res = append(res, raw)
	}
	return res, nil
}

// newsTitle returns title of the first related news article from the ht:news_item extension, if any
func newsTitle(item *gofeed.Item) string {
	ht, ok := item.Extensions["ht"]
	if !ok {
		return ""
	}
	for _, news := range ht["news_item"] {
		for _, t := range news.Children["news_item_title"] {
			if v := strings.TrimSpace(t.Value); v != "" {
				return v
			}
		}
	}
	return ""
}
