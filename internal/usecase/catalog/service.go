// Package catalog is the server-side search service: cache lookup, upstream
// fetch, and optional server-side ranking of the returned page.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meeplekit/gamedex/internal/domain"
	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
	"github.com/meeplekit/gamedex/internal/usecase/rank"
	"github.com/meeplekit/gamedex/internal/usecase/similar"
)

// Service serves search, trending, and similar-games queries.
type Service struct {
	upstream Upstream
	cache    PageCache
	ranker   *rank.Service
	scorer   *similar.Service
	pool     []game.Game
	logger   *zap.Logger
}

// New creates a catalog service. cache may be nil (no caching). pool is the
// candidate set for similar-games queries.
func New(
	upstream Upstream, cache PageCache,
	ranker *rank.Service, scorer *similar.Service,
	pool []game.Game, logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		upstream: upstream,
		cache:    cache,
		ranker:   ranker,
		scorer:   scorer,
		pool:     pool,
		logger:   logger,
	}
}

// Search returns one result page for the query and filters. Cached pages are
// served without touching the upstream. When sortMode is a valid sort the
// page is reordered server-side before returning.
func (s *Service) Search(
	ctx context.Context, query string, filters search.Filters,
	page, limit int, sortMode search.Sort,
) (search.Page, error) {
	if err := filters.Validate(); err != nil {
		return search.Page{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	pg, hit := s.cachedPage(ctx, query, filters, page)
	if !hit {
		var err error
		pg, err = s.upstream.FetchPage(ctx, discover.Query{
			Text:    query,
			Filters: filters,
			Page:    page,
			Limit:   limit,
		})
		if err != nil {
			return search.Page{}, fmt.Errorf("fetch page: %w", err)
		}
		if s.cache != nil {
			s.cache.Set(ctx, query, filters, page, pg)
		}
	}

	if sortMode.IsValid() {
		pg.Results = s.ranker.Rank(pg.Results, query, filters, sortMode)
	}
	return pg, nil
}

// Game looks up a game in the similarity pool.
func (s *Service) Game(id string) (game.Game, error) {
	for i := range s.pool {
		if s.pool[i].ID == id {
			return s.pool[i], nil
		}
	}
	return game.Game{}, fmt.Errorf("%w: %q", domain.ErrGameNotFound, id)
}

// Similar ranks the candidate pool against the base game, excluding the
// base itself, in descending match order.
func (s *Service) Similar(_ context.Context, baseID string) ([]similar.Scored, error) {
	base, err := s.Game(baseID)
	if err != nil {
		return nil, err
	}
	return s.scorer.RankPool(&base, s.pool), nil
}

func (s *Service) cachedPage(
	ctx context.Context, query string, filters search.Filters, page int,
) (search.Page, bool) {
	if s.cache == nil {
		return search.Page{}, false
	}
	return s.cache.Get(ctx, query, filters, page)
}
