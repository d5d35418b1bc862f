package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/trendscope/pkg/domain"
)

func TestHackerNews_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/topstories.json":
			_, _ = w.Write([]byte(`[1, 2, 3, 4, 5, 6]`))
		case "/item/1.json":
			_, _ = w.Write([]byte(`{"id":1,"type":"story","title":"Show HN: tiny db","url":"https://example.com/db",
				"by":"pg","score":120,"descendants":40,"time":1712570400}`))
		case "/item/2.json":
			_, _ = w.Write([]byte(`{"id":2,"type":"story","title":"Ask HN: how do you test?","text":"<p>curious</p>","by":"dang","score":50}`))
		case "/item/3.json":
			_, _ = w.Write([]byte(`{"id":3,"type":"job","title":"We are hiring"}`))
		case "/item/4.json":
			_, _ = w.Write([]byte(`{"id":4,"type":"story","title":"flagged","dead":true}`))
		case "/item/5.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	h := NewHackerNews(HackerNewsConfig{Params: fastParams(1), BaseURL: ts.URL, Limit: 5, MaxWorkers: 2})
	assert.Equal(t, "hacker-news", h.Name())

	items, err := h.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, domain.RawItem{
		Platform:  domain.PlatformHackerNews,
		Source:    "top",
		Title:     "Show HN: tiny db",
		URL:       "https://example.com/db",
		Author:    "pg",
		Score:     120,
		Comments:  40,
		Published: time.Unix(1712570400, 0).UTC(),
	}, items[0])
	assert.Equal(t, "https://news.ycombinator.com/item?id=2", items[1].URL)
	assert.Equal(t, "<p>curious</p>", items[1].Description)
	assert.Equal(t, 1, items[1].Rank)
}

func TestHackerNews_ListFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	h := NewHackerNews(HackerNewsConfig{Params: fastParams(1), BaseURL: ts.URL, Lists: []string{"top", "best"}})
	_, err := h.Fetch(context.Background())
	require.Error(t, err)
}
