package gamedex

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingFetcher struct {
	mu    sync.Mutex
	calls []FetchQuery
	page  Page
	err   error
}

func (f *recordingFetcher) FetchPage(_ context.Context, q FetchQuery) (Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	return f.page, f.err
}

func (f *recordingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNew_DefaultsToDemoCatalog(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Catalog()) == 0 {
		t.Fatal("expected a built-in catalog")
	}

	pg, err := c.Search(context.Background(), "catan", Filters{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Total != 1 || pg.Results[0].ID != "catan" {
		t.Errorf("unexpected page: %+v", pg)
	}
}

func TestNew_RejectsSchemelessBaseURL(t *testing.T) {
	if _, err := New(WithBaseURL("boardgames.example.com")); err == nil {
		t.Fatal("expected error for schemeless URL")
	}
}

func TestSearch_ValidatesFilters(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Search(context.Background(), "", Filters{Weight: "extreme"}, 1); err == nil {
		t.Fatal("expected filter validation error")
	}
}

func TestSearch_UsesCustomFetcher(t *testing.T) {
	f := &recordingFetcher{page: Page{Total: 7}}
	c, err := New(WithFetcher(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pg, err := c.Search(context.Background(), "azul", Filters{Players: 2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Total != 7 {
		t.Errorf("total = %d, want 7", pg.Total)
	}

	q := f.calls[0]
	if q.Text != "azul" || q.Filters.Players != 2 || q.Page != 1 || q.Limit != DefaultLimit {
		t.Errorf("query not normalized: %+v", q)
	}
}

func TestSearch_SurfacesFetcherError(t *testing.T) {
	f := &recordingFetcher{err: errors.New("upstream down")}
	c, err := New(WithFetcher(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Search(context.Background(), "x", Filters{}, 1); err == nil {
		t.Fatal("expected fetcher error to surface")
	}
}

func TestRank_RelevanceThroughFacade(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	games := []Game{
		{ID: "sub", Name: "Settlers of Catan"},
		{ID: "exact", Name: "Catan"},
	}
	out := c.Rank(games, "catan", Filters{}, SortRelevance)
	if out[0].ID != "exact" {
		t.Errorf("expected exact match first, got %q", out[0].ID)
	}
	if c.Score(&games[1], "catan", Filters{}) <= c.Score(&games[0], "catan", Filters{}) {
		t.Error("exact match must outscore substring match")
	}
}

func TestSimilar_KnownAndUnknownIDs(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scored, err := c.Similar("catan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != len(c.Catalog())-1 {
		t.Errorf("expected %d candidates, got %d", len(c.Catalog())-1, len(scored))
	}

	if _, err := c.Similar("unknown"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSimilar_RespectsCustomCatalog(t *testing.T) {
	catalog := []Game{
		{ID: "a", Name: "A", Tags: []string{"coop"}},
		{ID: "b", Name: "B", Tags: []string{"coop"}},
	}
	c, err := New(WithCatalog(catalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scored, err := c.Similar("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 1 || scored[0].Game.ID != "b" {
		t.Errorf("unexpected pool result: %+v", scored)
	}
}

func TestDiscover_EndToEnd(t *testing.T) {
	f := &recordingFetcher{page: Page{
		Results: []Game{{ID: "catan", Name: "Catan"}},
		Total:   1,
		Pages:   1,
	}}
	c, err := New(WithFetcher(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := c.Discover(WithTimings(5*time.Millisecond, 15*time.Millisecond, 30*time.Millisecond))
	defer s.Close()

	s.SetQuery("catan")
	deadline := time.Now().Add(2 * time.Second)
	var snap Snapshot
	for time.Now().Before(deadline) {
		snap = s.Snapshot()
		if !snap.Loading && len(snap.Results) > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if len(snap.Results) != 1 || snap.Results[0].ID != "catan" {
		t.Fatalf("session never settled with results: %+v", snap)
	}
	if f.callCount() != 1 {
		t.Errorf("expected 1 fetch, got %d", f.callCount())
	}
}

func TestDiscover_SeededSessionSkipsInitialFetch(t *testing.T) {
	f := &recordingFetcher{}
	c, err := New(WithFetcher(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seed := Page{Results: []Game{{ID: "a", Name: "A"}}, Total: 1, Pages: 1}
	s := c.Discover(
		WithInitialResults(seed),
		WithTimings(5*time.Millisecond, 15*time.Millisecond, 30*time.Millisecond),
	)
	defer s.Close()

	s.Start()
	time.Sleep(60 * time.Millisecond)
	if f.callCount() != 0 {
		t.Errorf("seeded start fetched anyway: %d calls", f.callCount())
	}
	if snap := s.Snapshot(); len(snap.Results) != 1 {
		t.Errorf("seed lost: %+v", snap)
	}
}
