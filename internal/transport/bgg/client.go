// Package bgg is the HTTP client for the remote board-game catalog
// endpoint. It speaks the two listing variants (trending and text search),
// spaces upstream calls with a rate limiter, and degrades malformed
// response fields to defaults instead of failing.
package bgg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/metrics"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
)

// minRequestInterval spaces consecutive upstream calls (~3 req/sec), matching
// what the public catalog service tolerates.
const minRequestInterval = 350 * time.Millisecond

const defaultTimeout = 15 * time.Second

// Paths of the two endpoint variants.
const (
	searchPath = "/api/bgg/search"
	hotPath    = "/api/bgg/hot"
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client fetches catalog pages over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ discover.Fetcher = (*Client)(nil)

// New creates a catalog client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(minRequestInterval), 1),
		logger:  logger,
	}
}

// FetchPage retrieves one page of results. The trending variant serves
// empty queries; the search variant serves text queries. Cancellation via
// ctx surfaces as an error wrapping context.Canceled and is not a failure.
func (c *Client) FetchPage(ctx context.Context, q discover.Query) (search.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return search.Page{}, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := hotPath
	variant := "hot"
	if q.Text != "" {
		endpoint = searchPath
		variant = "search"
	}

	reqURL := c.baseURL + endpoint + "?" + encodeParams(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return search.Page{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(variant, "error").Inc()
		return search.Page{}, fmt.Errorf("catalog request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.UpstreamRequestDuration.WithLabelValues(variant).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(variant, strconv.Itoa(resp.StatusCode)).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("catalog request failed",
			zap.String("variant", variant),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return search.Page{}, fmt.Errorf("request failed: %d", resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(variant, "ok").Inc()

	var page search.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return search.Page{}, fmt.Errorf("parse catalog response: %w", err)
	}

	// Missing fields degrade, never error: nil results become empty,
	// malformed records are normalized in place.
	if page.Results == nil {
		page.Results = []game.Game{}
	}
	for i := range page.Results {
		page.Results[i].Normalize()
	}
	return page, nil
}

// encodeParams renders the wire query parameters. Unset filters are omitted
// entirely; a selected time bucket expands to min_time/max_time.
func encodeParams(q discover.Query) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("page", strconv.Itoa(q.Page))
	if q.Filters.Players > 0 {
		params.Set("players", strconv.Itoa(q.Filters.Players))
	}
	if q.Filters.Weight != "" {
		params.Set("weight", string(q.Filters.Weight))
	}
	if bucket, ok := q.Filters.Bucket(); ok {
		params.Set("min_time", strconv.Itoa(bucket.Min))
		params.Set("max_time", strconv.Itoa(bucket.Max))
	}
	if len(q.Filters.Tags) > 0 {
		params.Set("tags", strings.Join(q.Filters.Tags, ","))
	}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	return params.Encode()
}
