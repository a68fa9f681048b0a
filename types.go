package gamedex

import (
	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
	"github.com/meeplekit/gamedex/internal/usecase/similar"
)

// Game is a catalog entry.
type Game = game.Game

// Range is an inclusive numeric interval (player counts, playtime minutes).
type Range = game.Range

// Stats holds community statistics for a game.
type Stats = game.Stats

// Weight is a game's complexity class.
type Weight = game.Weight

// Weight classes, light to heavy.
const (
	Light  = game.Light
	Medium = game.Medium
	Heavy  = game.Heavy
)

// TimeBucket is a named playtime interval used for filtering.
type TimeBucket = game.TimeBucket

// TimeBuckets is the fixed set of playtime filter buckets.
var TimeBuckets = game.TimeBuckets

// Filters narrows a search by players, playtime, weight, and tags.
type Filters = search.Filters

// Sort selects the result ordering.
type Sort = search.Sort

// Sort modes.
const (
	SortRelevance = search.SortRelevance
	SortRating    = search.SortRating
	SortRank      = search.SortRank
	SortYear      = search.SortYear
	SortTime      = search.SortTime
	SortName      = search.SortName
)

// Page is one page of search results with pagination totals.
type Page = search.Page

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = search.DefaultLimit

// Scored is a similarity-ranked game with explanation.
type Scored = similar.Scored

// Snapshot is a point-in-time view of a discovery session.
type Snapshot = discover.Snapshot

// Fetcher supplies result pages to a discovery session.
type Fetcher = discover.Fetcher

// FetchQuery is the request a Fetcher receives.
type FetchQuery = discover.Query
