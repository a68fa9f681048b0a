package search

import (
	"math"

	"github.com/meeplekit/gamedex/internal/domain/game"
)

// UnboundedPages is the page count reported when the server returned results
// but no usable totals; pagination continues until an empty page arrives.
const UnboundedPages = math.MaxInt

// Page is one page of catalog results as returned by the remote endpoint.
type Page struct {
	Results []game.Game `json:"results"`
	Total   int         `json:"total"`
	Pages   int         `json:"pages"`
}

// EffectivePages derives the page count a paginator should trust:
// the server's count when present, else ceil(total/limit), else unbounded
// when results exist without totals, else a single page.
func (p Page) EffectivePages(limit int) int {
	if p.Pages > 0 {
		return p.Pages
	}
	if p.Total > 0 && limit > 0 {
		return (p.Total + limit - 1) / limit
	}
	if len(p.Results) > 0 {
		return UnboundedPages
	}
	return 1
}
