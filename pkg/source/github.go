package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/trendscope/pkg/domain"
)

// GitHubConfig configures the github trending adapter
type GitHubConfig struct {
	Params
	BaseURL   string   // https://github.com
	Languages []string // empty string means all languages
	Since     string   // daily, weekly or monthly
}

// GitHub scrapes the trending repositories page
type GitHub struct {
	cfg GitHubConfig
	req requester
}

var starsTodayExpr = regexp.MustCompile(`([\d,]+)\s+stars?\s+(today|this week|this month)`)

// NewGitHub makes github trending adapter
func NewGitHub(cfg GitHubConfig) *GitHub {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://github.com"
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{""}
	}
	if cfg.Since == "" {
		cfg.Since = "daily"
	}
	return &GitHub{cfg: cfg, req: newRequester(cfg.Params)}
}

// Name returns adapter name
func (g *GitHub) Name() string { return "github" }

// Fetch returns trending repositories for all configured languages
func (g *GitHub) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	var res []domain.RawItem
	var lastErr error
	failed := 0
	for _, lang := range g.cfg.Languages {
		items, err := g.fetchPage(ctx, lang)
		if err != nil {
			lgr.Printf("[WARN] github: failed to fetch trending page %q: %v", lang, err)
			lastErr = err
			failed++
			continue
		}
		res = append(res, items...)
	}
	if failed == len(g.cfg.Languages) && lastErr != nil {
		return nil, fmt.Errorf("all trending pages failed: %w", lastErr)
	}
	return res, nil
}

func (g *GitHub) fetchPage(ctx context.Context, lang string) ([]domain.RawItem, error) {
	pageURL := g.cfg.BaseURL + "/trending"
	if lang != "" {
		pageURL += "/" + url.PathEscape(strings.ToLower(lang))
	}
	pageURL += "?since=" + url.QueryEscape(g.cfg.Since)

	body, err := g.req.get(ctx, pageURL, addBrowserHeaders)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return g.extract(doc), nil
}

// extract reads repository rows of the trending page
func (g *GitHub) extract(doc *goquery.Document) []domain.RawItem {
	var res []domain.RawItem
	doc.Find("article.Box-row").Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Find("h2 a").First().Attr("href")
		if !ok {
			return
		}
		name := strings.Trim(strings.TrimSpace(href), "/")
		if name == "" {
			return
		}
		item := domain.RawItem{
			Platform:    domain.PlatformGitHub,
			Source:      "trending",
			Title:       name,
			Description: strings.TrimSpace(row.Find("p").First().Text()),
			URL:         g.cfg.BaseURL + "/" + name,
			Author:      strings.SplitN(name, "/", 2)[0],
			Category:    strings.TrimSpace(row.Find(`span[itemprop="programmingLanguage"]`).First().Text()),
			Rank:        len(res),
			Score:       parseCount(row.Find(`a[href$="/stargazers"]`).First().Text()),
			Forks:       parseCount(row.Find(`a[href$="/forks"]`).First().Text()),
		}
		if m := starsTodayExpr.FindStringSubmatch(row.Text()); len(m) > 1 {
			item.StarsToday = parseCount(m[1])
		}
		res = append(res, item)
	})
	return res
}
