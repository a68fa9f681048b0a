package catalog

import (
	"context"

	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
)

// Upstream fetches result pages from the backing catalog.
type Upstream interface {
	FetchPage(ctx context.Context, q discover.Query) (search.Page, error)
}

// PageCache stores result pages keyed by the canonical query.
type PageCache interface {
	Get(ctx context.Context, query string, filters search.Filters, page int) (search.Page, bool)
	Set(ctx context.Context, query string, filters search.Filters, page int, pg search.Page)
}
