// Package pagecache caches catalog result pages in a key-value store with a
// TTL, so repeated identical queries do not hammer the upstream catalog.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/meeplekit/gamedex/internal/db"
	"github.com/meeplekit/gamedex/internal/domain/search"
)

const keyPrefix = "gamedex:page_cache:"

// Default TTLs: searches go stale faster than the trending list refreshes.
const (
	DefaultSearchTTL = 10 * time.Minute
	DefaultHotTTL    = 5 * time.Minute
)

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores serialized result pages with per-variant TTLs.
type Cache struct {
	store      store
	searchTTL  time.Duration
	hotTTL     time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a page cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		searchTTL:  DefaultSearchTTL,
		hotTTL:     DefaultHotTTL,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithTTLs overrides the per-variant TTLs. Non-positive values keep defaults.
func (c *Cache) WithTTLs(searchTTL, hotTTL time.Duration) *Cache {
	if searchTTL > 0 {
		c.searchTTL = searchTTL
	}
	if hotTTL > 0 {
		c.hotTTL = hotTTL
	}
	return c
}

// Get returns the cached page for the canonical query key, if present and
// unexpired. Storage failures count as misses, never as errors.
func (c *Cache) Get(ctx context.Context, query string, filters search.Filters, page int) (search.Page, bool) {
	key := c.cacheKey(query, filters, page)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return search.Page{}, false
	}

	var pg search.Page
	if err := json.Unmarshal(data, &pg); err != nil {
		c.logger.Warn("page cache entry corrupt", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return search.Page{}, false
	}

	c.incCache("hit")
	return pg, true
}

// Set stores a page under the canonical query key. Write failures are
// logged and swallowed; the cache is best-effort.
func (c *Cache) Set(ctx context.Context, query string, filters search.Filters, page int, pg search.Page) {
	key := c.cacheKey(query, filters, page)

	data, err := json.Marshal(pg)
	if err != nil {
		c.logger.Warn("page cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	ttl := c.hotTTL
	if query != "" {
		ttl = c.searchTTL
	}
	if err := c.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		c.logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) cacheKey(query string, filters search.Filters, page int) string {
	canonical := fmt.Sprintf("%s&page=%d", filters.CanonicalKey(query), page)
	h := sha256.Sum256([]byte(canonical))
	return keyPrefix + hex.EncodeToString(h[:])
}
