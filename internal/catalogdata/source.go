package catalogdata

import (
	"context"
	"strings"

	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
)

// Source serves the demo catalog through the same paginated contract as the
// remote endpoint, so a flow can run fully offline.
type Source struct {
	games []game.Game
}

var _ discover.Fetcher = (*Source)(nil)

// NewSource creates a source over the given games, defaulting to the demo set.
func NewSource(games []game.Game) *Source {
	if games == nil {
		games = Games
	}
	return &Source{games: games}
}

// FetchPage filters the catalog and slices out the requested page.
func (s *Source) FetchPage(_ context.Context, q discover.Query) (search.Page, error) {
	matched := make([]game.Game, 0, len(s.games))
	for i := range s.games {
		if matches(&s.games[i], q.Text, q.Filters) {
			matched = append(matched, s.games[i])
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	pages := (len(matched) + limit - 1) / limit

	pageNum := q.Page
	if pageNum < 1 {
		pageNum = 1
	}
	lo := (pageNum - 1) * limit
	if lo > len(matched) {
		lo = len(matched)
	}
	hi := lo + limit
	if hi > len(matched) {
		hi = len(matched)
	}

	return search.Page{
		Results: matched[lo:hi],
		Total:   len(matched),
		Pages:   pages,
	}, nil
}

// matches applies the structured filters plus a substring name match.
func matches(g *game.Game, query string, f search.Filters) bool {
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		if !strings.Contains(strings.ToLower(g.Name), q) {
			return false
		}
	}
	if f.Players > 0 && !g.Players.Contains(f.Players) {
		return false
	}
	if bucket, ok := f.Bucket(); ok && !bucket.Overlaps(g.Time) {
		return false
	}
	if f.Weight != "" && g.Weight != f.Weight {
		return false
	}
	if len(f.Tags) > 0 {
		have := g.TagSet()
		for _, t := range f.Tags {
			if !have[t] {
				return false
			}
		}
	}
	return true
}
