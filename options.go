package gamedex

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL     string
	httpTimeout time.Duration
	fetcher     Fetcher
	catalog     []Game
	locale      language.Tag
	logger      *zap.Logger
}

// WithBaseURL points the client at a remote catalog API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPTimeout sets the per-request timeout for the remote catalog.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.httpTimeout = d
	}
}

// WithFetcher supplies a custom page source. Takes precedence over
// WithBaseURL and the built-in catalog.
func WithFetcher(f Fetcher) Option {
	return func(c *clientConfig) {
		c.fetcher = f
	}
}

// WithCatalog replaces the built-in demo catalog. The catalog is also the
// candidate pool for similar-games queries.
func WithCatalog(games []Game) Option {
	return func(c *clientConfig) {
		c.catalog = games
	}
}

// WithLocale sets the collation locale for name sorting.
func WithLocale(tag language.Tag) Option {
	return func(c *clientConfig) {
		c.locale = tag
	}
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// DiscoverOption configures a discovery session.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	initial   *Page
	pageSize  int
	baseDelay time.Duration
	window    time.Duration
	slot      time.Duration
}

// WithInitialResults seeds the session with pre-fetched results. When the
// session starts on page one with default filters and a non-empty seed, the
// first fetch is skipped.
func WithInitialResults(p Page) DiscoverOption {
	return func(c *discoverConfig) {
		c.initial = &p
	}
}

// WithPageSize overrides the default page size.
func WithPageSize(n int) DiscoverOption {
	return func(c *discoverConfig) {
		c.pageSize = n
	}
}

// WithTimings overrides the debounce delay, the reserved request window, and
// the scroll cooldown slot. Zero values keep the defaults.
func WithTimings(baseDelay, requestWindow, scrollSlot time.Duration) DiscoverOption {
	return func(c *discoverConfig) {
		c.baseDelay = baseDelay
		c.window = requestWindow
		c.slot = scrollSlot
	}
}
