// Package similar computes an explainable similarity score between two
// games: a weighted composite of tag overlap, player and time range
// overlap, weight-class proximity, and rating proximity.
package similar

import (
	"fmt"
	"math"
	"sort"

	"github.com/meeplekit/gamedex/internal/domain/game"
)

// Component weights; they sum to 1.0.
const (
	tagWeight     = 0.50
	playersWeight = 0.20
	timeWeight    = 0.15
	weightWeight  = 0.10
	ratingWeight  = 0.05
)

// rangeEpsilon widens player intervals so a min==max range still has
// nonzero length for the overlap/union ratio.
const rangeEpsilon = 0.0001

// maxCommonTags caps the common-tag list attached to a result (display only).
const maxCommonTags = 4

// Scored is the outcome of comparing one candidate against the base game.
// Reasons are advisory display strings; the sortable value is Score.
type Scored struct {
	Game       game.Game
	Score      float64
	Reasons    []string
	CommonTags []string
}

// Service scores candidate games against a base game.
type Service struct{}

// New creates a similarity service.
func New() *Service {
	return &Service{}
}

// Score compares base against candidate. The tag math is symmetric; the
// common-tag list follows base's tag order.
func (s *Service) Score(base, candidate *game.Game) Scored {
	tagScore := jaccard(base.Tags, candidate.Tags)
	playersScore := overlapRatio(
		float64(base.Players.Min), float64(base.Players.Max)+rangeEpsilon,
		float64(candidate.Players.Min), float64(candidate.Players.Max)+rangeEpsilon,
	)
	timeScore := overlapRatio(
		float64(base.Time.Min), float64(base.Time.Max),
		float64(candidate.Time.Min), float64(candidate.Time.Max),
	)
	delta := math.Abs(float64(base.Weight.Ordinal() - candidate.Weight.Ordinal()))
	weightScore := 1 - math.Min(1, delta/2)

	// A zero rating counts as absent; either side missing yields the
	// neutral default.
	ratingScore := 0.5
	if base.Rating > 0 && candidate.Rating > 0 {
		ratingScore = 1 - math.Min(1, math.Abs(base.Rating-candidate.Rating)/5)
	}

	score := tagWeight*tagScore +
		playersWeight*playersScore +
		timeWeight*timeScore +
		weightWeight*weightScore +
		ratingWeight*ratingScore
	score = math.Max(0, math.Min(1, score))

	candidateTags := candidate.TagSet()
	var commonTags []string
	for _, t := range base.Tags {
		if candidateTags[t] {
			commonTags = append(commonTags, t)
		}
	}

	var reasons []string
	if n := len(commonTags); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		reasons = append(reasons, fmt.Sprintf("shares %d tag%s", n, plural))
	}
	if playersScore > 0 {
		reasons = append(reasons, "overlapping player counts")
	}
	if timeScore > 0 {
		reasons = append(reasons, "similar playtime")
	}
	if weightScore == 1 {
		reasons = append(reasons, "same weight")
	} else if weightScore >= 0.5 {
		reasons = append(reasons, "similar weight")
	}

	if len(commonTags) > maxCommonTags {
		commonTags = commonTags[:maxCommonTags]
	}

	return Scored{Game: *candidate, Score: score, Reasons: reasons, CommonTags: commonTags}
}

// RankPool scores every candidate in pool against base, excluding base
// itself, and returns the results in descending score order. The sort is
// stable: equal scores keep pool order.
func (s *Service) RankPool(base *game.Game, pool []game.Game) []Scored {
	scored := make([]Scored, 0, len(pool))
	for i := range pool {
		if pool[i].ID == base.ID {
			continue
		}
		scored = append(scored, s.Score(base, &pool[i]))
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	return scored
}

// jaccard is |intersection| / |union| of the two tag sets, 0 when both empty.
func jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}
	inter := 0
	for t := range setA {
		if setB[t] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// overlapRatio is interval overlap divided by interval union, 0 for a
// zero-length union.
func overlapRatio(aMin, aMax, bMin, bMax float64) float64 {
	overlap := math.Max(0, math.Min(aMax, bMax)-math.Max(aMin, bMin))
	union := math.Max(aMax, bMax) - math.Min(aMin, bMin)
	if union == 0 {
		return 0
	}
	return overlap / union
}
