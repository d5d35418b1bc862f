// Package source implements platform adapters fetching raw trending records.
// Each adapter is independent, a failing adapter affects only its own contribution.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// DefaultUserAgent is sent when Params.UserAgent is empty
const DefaultUserAgent = "trendscope/1.0 (+https://github.com/umputun/trendscope)"

const maxBodySize = 10 * 1024 * 1024

// Params are common adapter parameters
type Params struct {
	Client     *http.Client
	UserAgent  string
	Retries    int
	RetryDelay time.Duration
}

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

var errPermanent = errors.New("permanent http error")

// permanentError stops retries, e.g. on 404 or 401
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

func (e *permanentError) Is(target error) bool { return target == errPermanent } //nolint:errorlint // sentinel identity

// requester makes GET requests with retries
type requester struct {
	client    *http.Client
	userAgent string
	retries   int
	delay     time.Duration
}

func newRequester(p Params) requester {
	res := requester{client: p.Client, userAgent: p.UserAgent, retries: p.Retries, delay: p.RetryDelay}
	if res.client == nil {
		res.client = &http.Client{Timeout: 30 * time.Second}
	}
	if res.userAgent == "" {
		res.userAgent = DefaultUserAgent
	}
	if res.retries <= 0 {
		res.retries = 3
	}
	if res.delay <= 0 {
		res.delay = 500 * time.Millisecond
	}
	return res
}

// get fetches url and returns the body. setup, if set, can adjust the request before sending.
// Network errors, 429 and 5xx responses are retried with backoff.
func (r requester) get(ctx context.Context, url string, setup func(req *http.Request)) ([]byte, error) {
	var body []byte
	retrier := repeater.NewBackoff(r.retries, r.delay, repeater.WithMaxDelay(10*r.delay))
	err := retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return &permanentError{err: fmt.Errorf("build request: %w", err)}
		}
		req.Header.Set("User-Agent", r.userAgent)
		if setup != nil {
			setup(req)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("request %s: status %s", url, resp.Status)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return err
			}
			return &permanentError{err: err}
		}

		if body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize)); err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		return nil
	}, errPermanent)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// getJSON fetches url and decodes json response into dst
func (r requester) getJSON(ctx context.Context, url string, setup func(req *http.Request), dst any) error {
	body, err := r.get(ctx, url, func(req *http.Request) {
		req.Header.Set("Accept", "application/json")
		if setup != nil {
			setup(req)
		}
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// addBrowserHeaders adds browser-like headers for pages and feeds served to browsers
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
	req.Header.Set("Connection", "keep-alive")
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}
}
