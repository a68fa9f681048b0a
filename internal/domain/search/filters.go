// Package search defines the query and result shapes shared by the ranker,
// the orchestrator, and the catalog API.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meeplekit/gamedex/internal/domain/game"
)

// DefaultLimit is the fixed page size used across the catalog API.
const DefaultLimit = 20

// Filters are the structured search constraints. Zero values mean "unset":
// Players 0, TimeBucket "", Weight "", empty Tags.
type Filters struct {
	Players    int
	TimeBucket string
	Weight     game.Weight
	Tags       []string
}

// Validate checks filter values against the known vocabularies.
func (f Filters) Validate() error {
	if f.Players < 0 {
		return fmt.Errorf("players must be positive, got %d", f.Players)
	}
	if f.TimeBucket != "" {
		if _, ok := game.BucketByID(f.TimeBucket); !ok {
			return fmt.Errorf("unknown time bucket %q", f.TimeBucket)
		}
	}
	if f.Weight != "" && !f.Weight.IsValid() {
		return fmt.Errorf("invalid weight %q", f.Weight)
	}
	return nil
}

// IsDefault reports whether no structured filter is set.
func (f Filters) IsDefault() bool {
	return f.Players == 0 && f.TimeBucket == "" && f.Weight == "" && len(f.Tags) == 0
}

// Bucket resolves the selected time bucket. ok is false when unset or unknown.
func (f Filters) Bucket() (game.TimeBucket, bool) {
	if f.TimeBucket == "" {
		return game.TimeBucket{}, false
	}
	return game.BucketByID(f.TimeBucket)
}

// CanonicalKey renders the filters plus query into a stable key suitable for
// cache lookups: sorted tags, fixed field order.
func (f Filters) CanonicalKey(query string) string {
	tags := make([]string, len(f.Tags))
	copy(tags, f.Tags)
	sort.Strings(tags)
	return strings.Join([]string{
		"q=" + strings.ToLower(strings.TrimSpace(query)),
		fmt.Sprintf("players=%d", f.Players),
		"bucket=" + f.TimeBucket,
		"weight=" + string(f.Weight),
		"tags=" + strings.Join(tags, ","),
	}, "&")
}
