package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/trendscope/pkg/domain"
)

// YouTubeConfig configures the youtube adapter
type YouTubeConfig struct {
	Params
	BaseURL    string // https://www.googleapis.com/youtube/v3
	APIKey     string
	Regions    []string
	MaxResults int // per region, api allows up to 50
}

// YouTube reads the most popular videos chart of configured regions from the data api
type YouTube struct {
	cfg YouTubeConfig
	req requester
}

type youtubeVideos struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			CategoryID   string    `json:"categoryId"`
			PublishedAt  time.Time `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// NewYouTube makes youtube adapter
func NewYouTube(cfg YouTubeConfig) *YouTube {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if len(cfg.Regions) == 0 {
		cfg.Regions = []string{"US", "GB", "CA", "AU"}
	}
	if cfg.MaxResults <= 0 || cfg.MaxResults > 50 {
		cfg.MaxResults = 50
	}
	return &YouTube{cfg: cfg, req: newRequester(cfg.Params)}
}

// Name returns adapter name
func (y *YouTube) Name() string { return "youtube" }

// Fetch returns trending videos of all regions. A failing region is skipped,
// error is returned only if nothing could be fetched.
func (y *YouTube) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	if y.cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube api key is not set")
	}
	var res []domain.RawItem
	var lastErr error
	failed := 0
	for _, region := range y.cfg.Regions {
		items, err := y.fetchRegion(ctx, region)
		if err != nil {
			lgr.Printf("[WARN] youtube: failed to fetch region %s: %v", region, err)
			lastErr = err
			failed++
			continue
		}
		res = append(res, items...)
	}
	if failed == len(y.cfg.Regions) && lastErr != nil {
		return nil, fmt.Errorf("all regions failed: %w", lastErr)
	}
	return res, nil
}

func (y *YouTube) fetchRegion(ctx context.Context, region string) ([]domain.RawItem, error) {
	params := url.Values{
		"part":       {"snippet,statistics"},
		"chart":      {"mostPopular"},
		"regionCode": {region},
		"maxResults": {strconv.Itoa(y.cfg.MaxResults)},
		"key":        {y.cfg.APIKey},
	}
	var resp youtubeVideos
	if err := y.req.getJSON(ctx, y.cfg.BaseURL+"/videos?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	res := make([]domain.RawItem, 0, len(resp.Items))
	for i, v := range resp.Items {
		author := v.Snippet.ChannelTitle
		if author == "" {
			author = "Unknown Channel"
		}
		res = append(res, domain.RawItem{
			Platform:    domain.PlatformYouTube,
			Source:      strings.ToLower(region),
			Title:       v.Snippet.Title,
			Description: v.Snippet.Description,
			URL:         "https://www.youtube.com/watch?v=" + v.ID,
			Author:      author,
			Category:    v.Snippet.CategoryID,
			Rank:        i,
			Views:       parseCount(v.Statistics.ViewCount),
			Likes:       parseCount(v.Statistics.LikeCount),
			Comments:    parseCount(v.Statistics.CommentCount),
			Published:   v.Snippet.PublishedAt,
		})
	}
	return res, nil
}

// parseCount parses counters like "12345" or "1,234", zero for anything else
func parseCount(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
