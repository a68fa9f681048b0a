package search

import (
	"testing"

	"github.com/meeplekit/gamedex/internal/domain/game"
)

func TestFilters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		f       Filters
		wantErr bool
	}{
		{"empty", Filters{}, false},
		{"all set", Filters{Players: 4, TimeBucket: "30-60", Weight: game.Medium, Tags: []string{"coop"}}, false},
		{"negative players", Filters{Players: -1}, true},
		{"unknown bucket", Filters{TimeBucket: "2h"}, true},
		{"unknown weight", Filters{Weight: "extreme"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilters_IsDefault(t *testing.T) {
	if !(Filters{}).IsDefault() {
		t.Error("zero filters should be default")
	}
	if (Filters{Players: 2}).IsDefault() {
		t.Error("players set should not be default")
	}
	if (Filters{Tags: []string{"coop"}}).IsDefault() {
		t.Error("tags set should not be default")
	}
}

func TestFilters_CanonicalKey(t *testing.T) {
	a := Filters{Players: 2, Tags: []string{"coop", "cards"}}
	b := Filters{Players: 2, Tags: []string{"cards", "coop"}}
	if a.CanonicalKey("Catan") != b.CanonicalKey("  catan ") {
		t.Error("tag order and query spacing should not change the key")
	}
	if a.CanonicalKey("catan") == a.CanonicalKey("azul") {
		t.Error("different queries must produce different keys")
	}
	if a.CanonicalKey("") == (Filters{Players: 3, Tags: []string{"coop", "cards"}}).CanonicalKey("") {
		t.Error("different players must produce different keys")
	}
}

func TestPage_EffectivePages(t *testing.T) {
	tests := []struct {
		name string
		p    Page
		want int
	}{
		{"server count wins", Page{Total: 100, Pages: 3}, 3},
		{"derived from total", Page{Total: 41}, 3},
		{"exact multiple", Page{Total: 40}, 2},
		{"results without totals", Page{Results: make([]game.Game, 5)}, UnboundedPages},
		{"empty everything", Page{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.EffectivePages(DefaultLimit); got != tt.want {
				t.Errorf("EffectivePages() = %d, want %d", got, tt.want)
			}
		})
	}
}
