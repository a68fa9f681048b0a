// Package gamedex is a board-game discovery SDK: a relevance ranker, a
// similarity scorer, and a debounced request orchestrator over a pluggable
// catalog source.
package gamedex

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/meeplekit/gamedex/internal/catalogdata"
	"github.com/meeplekit/gamedex/internal/domain"
	bggTransport "github.com/meeplekit/gamedex/internal/transport/bgg"
	rankuc "github.com/meeplekit/gamedex/internal/usecase/rank"
	similaruc "github.com/meeplekit/gamedex/internal/usecase/similar"
)

// ErrGameNotFound is returned when a game ID is not in the catalog.
var ErrGameNotFound = domain.ErrGameNotFound

// Client is the gamedex SDK entry point.
type Client struct {
	fetcher Fetcher
	ranker  *rankuc.Service
	scorer  *similaruc.Service
	catalog []Game
	logger  *zap.Logger
}

// New creates a gamedex Client. Without options it serves the built-in demo
// catalog; use WithBaseURL to search a remote catalog API instead.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		locale:  language.English,
		catalog: catalogdata.Games,
	}
	for _, o := range opts {
		o(cfg)
	}

	fetcher := cfg.fetcher
	if fetcher == nil && cfg.baseURL != "" {
		if !strings.HasPrefix(cfg.baseURL, "http://") && !strings.HasPrefix(cfg.baseURL, "https://") {
			return nil, fmt.Errorf("gamedex: base URL must start with http:// or https://, got %q", cfg.baseURL)
		}
		fetcher = bggTransport.New(bggTransport.Config{
			BaseURL: cfg.baseURL,
			Timeout: cfg.httpTimeout,
			Logger:  cfg.logger,
		})
	}
	if fetcher == nil {
		fetcher = catalogdata.NewSource(cfg.catalog)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		fetcher: fetcher,
		ranker:  rankuc.New(cfg.locale),
		scorer:  similaruc.New(),
		catalog: cfg.catalog,
		logger:  logger,
	}, nil
}

// Search fetches a single result page directly, bypassing the debounce
// machinery. page is 1-based.
func (c *Client) Search(
	ctx context.Context, query string, filters Filters, page int,
) (Page, error) {
	if err := filters.Validate(); err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	if page < 1 {
		page = 1
	}
	pg, err := c.fetcher.FetchPage(ctx, FetchQuery{
		Text:    query,
		Filters: filters,
		Page:    page,
		Limit:   DefaultLimit,
	})
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pg, nil
}

// Rank returns a sorted copy of games under the given sort mode. With
// SortRelevance the order reflects the query and filter match scores; an
// empty query keeps the input order.
func (c *Client) Rank(games []Game, query string, filters Filters, sort Sort) []Game {
	return c.ranker.Rank(games, query, filters, sort)
}

// Score computes the relevance score of one game against a query and filters.
func (c *Client) Score(g *Game, query string, filters Filters) float64 {
	return c.ranker.Score(g, query, filters)
}

// Similar ranks the catalog by similarity to the game with the given ID,
// excluding the game itself.
func (c *Client) Similar(id string) ([]Scored, error) {
	base, ok := catalogByID(c.catalog, id)
	if !ok {
		return nil, fmt.Errorf("similar %q: %w", id, ErrGameNotFound)
	}
	return c.scorer.RankPool(base, c.catalog), nil
}

// SimilarTo scores a candidate against a base game.
func (c *Client) SimilarTo(base, candidate *Game) Scored {
	return c.scorer.Score(base, candidate)
}

// Catalog returns the client's candidate pool.
func (c *Client) Catalog() []Game {
	return c.catalog
}

func catalogByID(pool []Game, id string) (*Game, bool) {
	for i := range pool {
		if pool[i].ID == id {
			return &pool[i], true
		}
	}
	return nil, false
}
