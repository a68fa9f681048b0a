package game

import (
	"fmt"
	"sort"
)

// Weight is the subjective complexity class of a game.
type Weight string

// Weight class constants, ordered light to heavy.
const (
	Light  Weight = "light"
	Medium Weight = "medium"
	Heavy  Weight = "heavy"
)

// IsValid checks if the weight is one of the supported classes.
func (w Weight) IsValid() bool {
	return w == Light || w == Medium || w == Heavy
}

// Ordinal maps the weight class onto the 0/1/2 scale used for proximity math.
// Unknown weights map to 0.
func (w Weight) Ordinal() int {
	switch w {
	case Medium:
		return 1
	case Heavy:
		return 2
	default:
		return 0
	}
}

// Range is an inclusive integer interval (player counts, play minutes).
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the interval.
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Stats holds optional popularity metadata.
// Rank is a positive popularity rank (lower = more popular); 0 means absent.
type Stats struct {
	Rank       int `json:"rank,omitempty"`
	UsersRated int `json:"usersRated,omitempty"`
}

// Game is a catalog record. Records arrive from the remote catalog or the
// static demo set and are treated as read-only within a computation.
// Year, Rating, and Stats.Rank use the zero value for "absent".
type Game struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Image   string   `json:"image,omitempty"`
	Year    int      `json:"year,omitempty"`
	Rating  float64  `json:"rating,omitempty"`
	Players Range    `json:"players"`
	Time    Range    `json:"time"`
	Weight  Weight   `json:"weight"`
	Tags    []string `json:"tags"`
	Stats   *Stats   `json:"stats,omitempty"`
	URL     string   `json:"url,omitempty"`
}

// Rank returns the popularity rank, or 0 when absent.
func (g *Game) Rank() int {
	if g.Stats == nil {
		return 0
	}
	return g.Stats.Rank
}

// Validate checks record invariants.
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game ID is required")
	}
	if g.Name == "" {
		return fmt.Errorf("game %q: name is required", g.ID)
	}
	if g.Players.Min < 0 || g.Players.Min > g.Players.Max {
		return fmt.Errorf("game %q: invalid players range %d-%d", g.ID, g.Players.Min, g.Players.Max)
	}
	if g.Time.Min < 0 || g.Time.Min > g.Time.Max {
		return fmt.Errorf("game %q: invalid time range %d-%d", g.ID, g.Time.Min, g.Time.Max)
	}
	if g.Rating < 0 || g.Rating > 10 {
		return fmt.Errorf("game %q: rating %.2f out of range", g.ID, g.Rating)
	}
	if g.Weight != "" && !g.Weight.IsValid() {
		return fmt.Errorf("game %q: invalid weight %q", g.ID, g.Weight)
	}
	return nil
}

// Normalize degrades malformed wire data into a well-formed record:
// nil tag slices become empty, duplicate tags are dropped (order kept),
// and inverted ranges are straightened. Never returns an error.
func (g *Game) Normalize() {
	if g.Players.Max < g.Players.Min {
		g.Players.Min, g.Players.Max = g.Players.Max, g.Players.Min
	}
	if g.Time.Max < g.Time.Min {
		g.Time.Min, g.Time.Max = g.Time.Max, g.Time.Min
	}
	if g.Tags == nil {
		g.Tags = []string{}
		return
	}
	seen := make(map[string]bool, len(g.Tags))
	deduped := g.Tags[:0]
	for _, t := range g.Tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		deduped = append(deduped, t)
	}
	g.Tags = deduped
}

// TagSet returns the tags as a set.
func (g *Game) TagSet() map[string]bool {
	set := make(map[string]bool, len(g.Tags))
	for _, t := range g.Tags {
		set[t] = true
	}
	return set
}

// SortedTags returns a sorted copy of the tags (stable display order).
func (g *Game) SortedTags() []string {
	tags := make([]string, len(g.Tags))
	copy(tags, g.Tags)
	sort.Strings(tags)
	return tags
}
