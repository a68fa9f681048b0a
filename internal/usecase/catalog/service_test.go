package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/meeplekit/gamedex/internal/domain"
	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
	"github.com/meeplekit/gamedex/internal/usecase/rank"
	"github.com/meeplekit/gamedex/internal/usecase/similar"
)

// --- Mocks ---

type mockUpstream struct {
	calls []discover.Query
	page  search.Page
	err   error
}

func (m *mockUpstream) FetchPage(_ context.Context, q discover.Query) (search.Page, error) {
	m.calls = append(m.calls, q)
	return m.page, m.err
}

type mockCache struct {
	entries map[string]search.Page
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]search.Page{}}
}

func (m *mockCache) key(query string, filters search.Filters, page int) string {
	return fmt.Sprintf("%s&page=%d", filters.CanonicalKey(query), page)
}

func (m *mockCache) Get(_ context.Context, query string, filters search.Filters, page int) (search.Page, bool) {
	pg, ok := m.entries[m.key(query, filters, page)]
	return pg, ok
}

func (m *mockCache) Set(_ context.Context, query string, filters search.Filters, page int, pg search.Page) {
	m.sets++
	m.entries[m.key(query, filters, page)] = pg
}

func testPool() []game.Game {
	return []game.Game{
		{ID: "catan", Name: "Catan", Players: game.Range{Min: 3, Max: 4}, Time: game.Range{Min: 60, Max: 120}, Weight: game.Medium, Tags: []string{"trading"}},
		{ID: "azul", Name: "Azul", Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 30, Max: 45}, Weight: game.Light, Tags: []string{"abstract"}},
		{ID: "brass", Name: "Brass", Players: game.Range{Min: 2, Max: 4}, Time: game.Range{Min: 120, Max: 180}, Weight: game.Heavy, Tags: []string{"economic"}},
	}
}

func newService(upstream Upstream, cache PageCache) *Service {
	return New(upstream, cache, rank.New(language.English), similar.New(), testPool(), zap.NewNop())
}

// --- Tests ---

func TestSearch_FetchesAndCaches(t *testing.T) {
	up := &mockUpstream{page: search.Page{Results: testPool(), Total: 3, Pages: 1}}
	cache := newMockCache()
	svc := newService(up, cache)

	pg, err := svc.Search(context.Background(), "catan", search.Filters{}, 1, 20, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Total != 3 {
		t.Errorf("total = %d, want 3", pg.Total)
	}
	if len(up.calls) != 1 || cache.sets != 1 {
		t.Errorf("expected one fetch and one cache write, got %d/%d", len(up.calls), cache.sets)
	}

	// Second identical query is served from cache.
	if _, err := svc.Search(context.Background(), "catan", search.Filters{}, 1, 20, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(up.calls) != 1 {
		t.Errorf("cache hit still reached upstream: %d calls", len(up.calls))
	}
}

func TestSearch_NilCache(t *testing.T) {
	up := &mockUpstream{page: search.Page{Total: 1}}
	svc := newService(up, nil)

	if _, err := svc.Search(context.Background(), "catan", search.Filters{}, 1, 20, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(up.calls) != 1 {
		t.Errorf("expected 1 upstream call, got %d", len(up.calls))
	}
}

func TestSearch_InvalidFilters(t *testing.T) {
	svc := newService(&mockUpstream{}, nil)

	_, err := svc.Search(context.Background(), "", search.Filters{TimeBucket: "bogus"}, 1, 20, "")
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestSearch_UpstreamError(t *testing.T) {
	up := &mockUpstream{err: errors.New("connection refused")}
	svc := newService(up, nil)

	_, err := svc.Search(context.Background(), "catan", search.Filters{}, 1, 20, "")
	if err == nil {
		t.Fatal("expected upstream error to surface")
	}
}

func TestSearch_NormalizesPageAndLimit(t *testing.T) {
	up := &mockUpstream{}
	svc := newService(up, nil)

	if _, err := svc.Search(context.Background(), "x", search.Filters{}, 0, -5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := up.calls[0]
	if q.Page != 1 || q.Limit != search.DefaultLimit {
		t.Errorf("page=%d limit=%d, want 1/%d", q.Page, q.Limit, search.DefaultLimit)
	}
}

func TestSearch_RanksWhenSortValid(t *testing.T) {
	up := &mockUpstream{page: search.Page{Results: testPool(), Total: 3, Pages: 1}}
	svc := newService(up, nil)

	pg, err := svc.Search(context.Background(), "", search.Filters{}, 1, 20, search.SortName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, id := range []string{"azul", "brass", "catan"} {
		if pg.Results[i].ID != id {
			t.Fatalf("position %d: got %q, want %q", i, pg.Results[i].ID, id)
		}
	}
}

func TestGame_Lookup(t *testing.T) {
	svc := newService(&mockUpstream{}, nil)

	g, err := svc.Game("azul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name != "Azul" {
		t.Errorf("name = %q, want Azul", g.Name)
	}

	_, err = svc.Game("unknown")
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSimilar_ExcludesBase(t *testing.T) {
	svc := newService(&mockUpstream{}, nil)

	scored, err := svc.Similar(context.Background(), "catan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(scored))
	}
	for _, sc := range scored {
		if sc.Game.ID == "catan" {
			t.Error("base game present in its own similarity list")
		}
	}

	_, err = svc.Similar(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}
