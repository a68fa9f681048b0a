// Package catalogdata ships the built-in demo catalog: a small curated game
// set used as the similar-games pool and as a standalone catalog source when
// no upstream endpoint is configured.
package catalogdata

import (
	"sort"

	"github.com/meeplekit/gamedex/internal/domain/game"
)

// Games is the demo catalog. Records are well-formed by construction.
var Games = []game.Game{
	{
		ID: "catan", Name: "Catan", Year: 1995, Rating: 7.2,
		Players: game.Range{Min: 3, Max: 4}, Time: game.Range{Min: 60, Max: 90},
		Weight: game.Medium,
		Tags:   []string{"trading", "resource-management", "family", "strategy"},
		Stats:  &game.Stats{Rank: 429},
	},
	{
		ID: "gloomhaven", Name: "Gloomhaven", Year: 2017, Rating: 8.7,
		Players: game.Range{Min: 1, Max: 4}, Time: game.Range{Min: 90, Max: 140},
		Weight: game.Heavy,
		Tags:   []string{"campaign", "co-op", "dungeon-crawl", "hand-management"},
		Stats:  &game.Stats{Rank: 3},
	},
	{
		ID: "azul", Name: "Azul", Year: 2017, Rating: 7.8,
		Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 30, Max: 45},
		Weight: game.Light,
		Tags:   []string{"abstract", "pattern-building", "family"},
		Stats:  &game.Stats{Rank: 67},
	},
	{
		ID: "wingspan", Name: "Wingspan", Year: 2019, Rating: 8.0,
		Players: game.Range{Min: 1, Max: 5}, Time: game.Range{Min: 45, Max: 75},
		Weight: game.Medium,
		Tags:   []string{"engine-building", "set-collection", "solo"},
		Stats:  &game.Stats{Rank: 28},
	},
	{
		ID: "terraforming-mars", Name: "Terraforming Mars", Year: 2016, Rating: 8.4,
		Players: game.Range{Min: 1, Max: 5}, Time: game.Range{Min: 120, Max: 180},
		Weight: game.Heavy,
		Tags:   []string{"engine-building", "card-drafting", "science", "solo"},
		Stats:  &game.Stats{Rank: 6},
	},
	{
		ID: "ticket-to-ride", Name: "Ticket to Ride", Year: 2004, Rating: 7.4,
		Players: game.Range{Min: 2, Max: 5}, Time: game.Range{Min: 45, Max: 60},
		Weight: game.Light,
		Tags:   []string{"route-building", "set-collection", "family"},
		Stats:  &game.Stats{Rank: 212},
	},
	{
		ID: "root", Name: "Root", Year: 2018, Rating: 8.1,
		Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 60, Max: 120},
		Weight: game.Heavy,
		Tags:   []string{"asymmetric", "area-control", "strategy"},
		Stats:  &game.Stats{Rank: 31},
	},
	{
		ID: "7wonders", Name: "7 Wonders", Year: 2010, Rating: 7.7,
		Players: game.Range{Min: 2, Max: 7}, Time: game.Range{Min: 30, Max: 45},
		Weight: game.Medium,
		Tags:   []string{"card-drafting", "simultaneous", "civilization"},
		Stats:  &game.Stats{Rank: 89},
	},
	{
		ID: "pandemic", Name: "Pandemic", Year: 2008, Rating: 7.6,
		Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 45, Max: 60},
		Weight: game.Medium,
		Tags:   []string{"co-op", "hand-management", "disease"},
		Stats:  &game.Stats{Rank: 124},
	},
	{
		ID: "brass", Name: "Brass: Birmingham", Year: 2018, Rating: 8.8,
		Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 90, Max: 150},
		Weight: game.Heavy,
		Tags:   []string{"economic", "network", "card-hand-management"},
		Stats:  &game.Stats{Rank: 1},
	},
	{
		ID: "carcassonne", Name: "Carcassonne", Year: 2000, Rating: 7.4,
		Players: game.Range{Min: 2, Max: 5}, Time: game.Range{Min: 30, Max: 45},
		Weight: game.Light,
		Tags:   []string{"tile-laying", "area-control", "family"},
		Stats:  &game.Stats{Rank: 243},
	},
	{
		ID: "dune", Name: "Dune: Imperium", Year: 2020, Rating: 8.4,
		Players: game.Range{Min: 1, Max: 4}, Time: game.Range{Min: 60, Max: 120},
		Weight: game.Medium,
		Tags:   []string{"deck-building", "worker-placement", "solo"},
		Stats:  &game.Stats{Rank: 9},
	},
}

// ByID looks up a demo game by identifier.
func ByID(id string) (game.Game, bool) {
	for _, g := range Games {
		if g.ID == id {
			return g, true
		}
	}
	return game.Game{}, false
}

// AllTags returns the sorted union of every tag in the demo catalog.
func AllTags() []string {
	set := map[string]bool{}
	for _, g := range Games {
		for _, t := range g.Tags {
			set[t] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
