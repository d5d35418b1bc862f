package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/trendscope/pkg/domain"
)

// DefaultSubreddits are fetched when RedditConfig.Subreddits is empty
var DefaultSubreddits = []string{
	"trending", "popular", "all", "technology", "science",
	"sports", "gaming", "movies", "music", "books", "food",
	"cryptocurrency", "wallstreetbets", "investing", "personalfinance",
}

// RedditConfig configures the reddit adapter.
// With ClientID and ClientSecret set listings are read through the oauth api, otherwise from public json endpoints.
type RedditConfig struct {
	Params
	BaseURL      string // public listings, https://www.reddit.com
	OAuthURL     string // authorized listings, https://oauth.reddit.com
	TokenURL     string // https://www.reddit.com/api/v1/access_token
	ClientID     string
	ClientSecret string
	Subreddits   []string
	Limit        int // posts per subreddit
}

// Reddit reads hot posts of configured subreddits
type Reddit struct {
	cfg RedditConfig
	req requester

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Stickied    bool    `json:"stickied"`
}

// NewReddit makes reddit adapter
func NewReddit(cfg RedditConfig) *Reddit {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.OAuthURL == "" {
		cfg.OAuthURL = "https://oauth.reddit.com"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if len(cfg.Subreddits) == 0 {
		cfg.Subreddits = DefaultSubreddits
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	return &Reddit{cfg: cfg, req: newRequester(cfg.Params)}
}

// Name returns adapter name
func (r *Reddit) Name() string { return "reddit" }

// Fetch returns hot posts of all subreddits. A failing subreddit is skipped,
// error is returned only if nothing could be fetched.
func (r *Reddit) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	var res []domain.RawItem
	var lastErr error
	failed := 0
	for _, sub := range r.cfg.Subreddits {
		items, err := r.fetchSubreddit(ctx, sub)
		if err != nil {
			lgr.Printf("[WARN] reddit: failed to fetch r/%s: %v", sub, err)
			lastErr = err
			failed++
			continue
		}
		res = append(res, items...)
	}
	if failed == len(r.cfg.Subreddits) && lastErr != nil {
		return nil, fmt.Errorf("all subreddits failed: %w", lastErr)
	}
	return res, nil
}

func (r *Reddit) fetchSubreddit(ctx context.Context, sub string) ([]domain.RawItem, error) {
	var listing redditListing
	if r.cfg.ClientID != "" && r.cfg.ClientSecret != "" {
		token, err := r.accessToken(ctx)
		if err != nil {
			return nil, err
		}
		u := fmt.Sprintf("%s/r/%s/hot?limit=%d&raw_json=1", r.cfg.OAuthURL, url.PathEscape(sub), r.cfg.Limit)
		err = r.req.getJSON(ctx, u, func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, &listing)
		if err != nil {
			return nil, err
		}
	} else {
		u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d&raw_json=1", r.cfg.BaseURL, url.PathEscape(sub), r.cfg.Limit)
		if err := r.req.getJSON(ctx, u, nil, &listing); err != nil {
			return nil, err
		}
	}

	res := make([]domain.RawItem, 0, len(listing.Data.Children))
	for i, c := range listing.Data.Children {
		p := c.Data
		if p.Stickied {
			continue
		}
		author := p.Author
		if author == "" || author == "[deleted]" {
			author = "Anonymous"
		}
		item := domain.RawItem{
			Platform:    domain.PlatformReddit,
			Source:      sub,
			Title:       p.Title,
			Description: p.Selftext,
			URL:         "https://www.reddit.com" + p.Permalink,
			Author:      author,
			Rank:        i,
			Score:       p.Score,
			Comments:    p.NumComments,
		}
		if p.CreatedUTC > 0 {
			item.Published = time.Unix(int64(p.CreatedUTC), 0).UTC()
		}
		res = append(res, item)
	}
	return res, nil
}

// accessToken returns cached application-only oauth token, requesting a new one when expired
func (r *Reddit) accessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token != "" && time.Now().Before(r.tokenExp) {
		return r.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(r.cfg.ClientID, r.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.req.userAgent)

	resp, err := r.req.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request token: status %s", resp.Status)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	r.token = tok.AccessToken
	r.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return r.token, nil
}
