// Package rank scores and orders catalog games against a free-text query
// and structured filters. Ranking is a pure function over its inputs: the
// same games, query, and filters always produce the same order, and the
// input slice is never mutated.
package rank

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
)

// Name match score tiers, mutually exclusive: the first matching tier wins.
const (
	nameExactScore  = 100
	namePrefixScore = 70
	nameSubstrScore = 40
)

// missingRankSentinel sorts rank-less games last under the "rank" sort.
const missingRankSentinel = 999999

// Service ranks game lists. The collator backs the locale-aware "name" sort.
type Service struct {
	collator *collate.Collator
}

// New creates a ranking service using the given locale for name comparison.
// An undetermined tag falls back to English collation.
func New(tag language.Tag) *Service {
	if tag == language.Und {
		tag = language.English
	}
	return &Service{collator: collate.New(tag)}
}

// Score computes the relevance score of a single game for a query plus
// filters. An empty (or blank) query always scores 0.
func (s *Service) Score(g *game.Game, query string, filters search.Filters) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	var score float64
	name := strings.ToLower(g.Name)
	switch {
	case name == q:
		score += nameExactScore
	case strings.HasPrefix(name, q):
		score += namePrefixScore
	case strings.Contains(name, q):
		score += nameSubstrScore
	}

	if p := filters.Players; p > 0 {
		if g.Players.Contains(p) {
			score += 25
		} else {
			// Decaying bonus by distance to the nearest range
			// boundary, floored at 0.
			dist := p - g.Players.Max
			if p < g.Players.Min {
				dist = g.Players.Min - p
			}
			score += math.Max(0, 12-6*math.Log2(1+float64(dist)))
		}
	}

	if bucket, ok := filters.Bucket(); ok && bucket.Overlaps(g.Time) {
		if bucket.Contains(g.Time) {
			score += 20
		} else {
			score += 12
		}
	}

	if filters.Weight != "" && g.Weight == filters.Weight {
		score += 10
	}

	switch r := g.Rank(); {
	case r == 0:
		// absent
	case r <= 100:
		score += 20
	case r <= 500:
		score += 12
	case r <= 1000:
		score += 6
	}

	if g.Rating > 0 {
		score += math.Max(0, (g.Rating-5)*6)
	}

	return score
}

// Rank returns a sorted copy of games under the given sort mode. All sorts
// are stable: ties keep the input's relative order. Missing numeric fields
// degrade to defaults (rating 0, rank sentinel, year 0) instead of failing.
func (s *Service) Rank(
	games []game.Game, query string, filters search.Filters, sortMode search.Sort,
) []game.Game {
	out := make([]game.Game, len(games))
	copy(out, games)

	switch sortMode {
	case search.SortRelevance:
		if strings.TrimSpace(query) == "" {
			return out
		}
		scores := make([]float64, len(out))
		for i := range out {
			scores[i] = s.Score(&out[i], query, filters)
		}
		indices := make([]int, len(out))
		for i := range indices {
			indices[i] = i
		}
		sort.SliceStable(indices, func(a, b int) bool {
			return scores[indices[a]] > scores[indices[b]]
		})
		ranked := make([]game.Game, len(out))
		for i, idx := range indices {
			ranked[i] = out[idx]
		}
		return ranked
	case search.SortRating:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].Rating > out[b].Rating
		})
	case search.SortRank:
		sort.SliceStable(out, func(a, b int) bool {
			return rankOrSentinel(&out[a]) < rankOrSentinel(&out[b])
		})
	case search.SortYear:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].Year > out[b].Year
		})
	case search.SortTime:
		// Zero time.min sorts first: unlike rating and rank, a missing
		// playtime is not pushed to the end.
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].Time.Min < out[b].Time.Min
		})
	case search.SortName:
		sort.SliceStable(out, func(a, b int) bool {
			return s.collator.CompareString(out[a].Name, out[b].Name) < 0
		})
	}
	return out
}

func rankOrSentinel(g *game.Game) int {
	if r := g.Rank(); r > 0 {
		return r
	}
	return missingRankSentinel
}
