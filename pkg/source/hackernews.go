package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/trendscope/pkg/domain"
)

// HackerNewsConfig configures the hacker news adapter
type HackerNewsConfig struct {
	Params
	BaseURL    string   // firebase api, https://hacker-news.firebaseio.com/v0
	Lists      []string // story lists, e.g. top, best
	Limit      int      // stories per list
	MaxWorkers int      // concurrent item requests
}

// HackerNews reads stories of configured lists from the firebase api
type HackerNews struct {
	cfg HackerNewsConfig
	req requester
}

type hnItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	By          string `json:"by"`
	Score       int64  `json:"score"`
	Descendants int64  `json:"descendants"`
	Time        int64  `json:"time"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// NewHackerNews makes hacker news adapter
func NewHackerNews(cfg HackerNewsConfig) *HackerNews {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if len(cfg.Lists) == 0 {
		cfg.Lists = []string{"top"}
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 30
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 8
	}
	return &HackerNews{cfg: cfg, req: newRequester(cfg.Params)}
}

// Name returns adapter name
func (h *HackerNews) Name() string { return "hacker-news" }

// Fetch returns stories of all lists, in list order
func (h *HackerNews) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	var res []domain.RawItem
	var lastErr error
	failed := 0
	for _, list := range h.cfg.Lists {
		items, err := h.fetchList(ctx, list)
		if err != nil {
			lgr.Printf("[WARN] hacker news: failed to fetch %s stories: %v", list, err)
			lastErr = err
			failed++
			continue
		}
		res = append(res, items...)
	}
	if failed == len(h.cfg.Lists) && lastErr != nil {
		return nil, fmt.Errorf("all story lists failed: %w", lastErr)
	}
	return res, nil
}

func (h *HackerNews) fetchList(ctx context.Context, list string) ([]domain.RawItem, error) {
	var ids []int64
	if err := h.req.getJSON(ctx, fmt.Sprintf("%s/%sstories.json", h.cfg.BaseURL, list), nil, &ids); err != nil {
		return nil, err
	}
	if len(ids) > h.cfg.Limit {
		ids = ids[:h.cfg.Limit]
	}

	// items are fetched concurrently, a failed item is skipped
	items := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.cfg.MaxWorkers)
	for i, id := range ids {
		g.Go(func() error {
			var item hnItem
			if err := h.req.getJSON(gctx, fmt.Sprintf("%s/item/%d.json", h.cfg.BaseURL, id), nil, &item); err != nil {
				lgr.Printf("[DEBUG] hacker news: failed to fetch item %d: %v", id, err)
				return nil
			}
			items[i] = &item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	res := make([]domain.RawItem, 0, len(items))
	for _, it := range items {
		if it == nil || it.Dead || it.Deleted || it.Title == "" || (it.Type != "" && it.Type != "story") {
			continue
		}
		link := it.URL
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + strconv.FormatInt(it.ID, 10)
		}
		raw := domain.RawItem{
			Platform:    domain.PlatformHackerNews,
			Source:      list,
			Title:       it.Title,
			Description: it.Text,
			URL:         link,
			Author:      it.By,
			Rank:        len(res),
			Score:       it.Score,
			Comments:    it.Descendants,
		}
		if it.Time > 0 {
			raw.Published = time.Unix(it.Time, 0).UTC()
		}
		res = append(res, raw)
	}
	return res, nil
}
