package bgg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/discover"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}), srv
}

func TestFetchPage_SearchVariant(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":"catan","name":"Catan","players":{"min":3,"max":4},"time":{"min":60,"max":120},"weight":"medium","tags":["classic"]}],"total":1,"pages":1}`))
	})

	pg, err := client.FetchPage(context.Background(), discover.Query{
		Text: "catan",
		Filters: search.Filters{
			Players:    4,
			TimeBucket: "60-90",
			Weight:     game.Medium,
			Tags:       []string{"classic", "trading"},
		},
		Page:  2,
		Limit: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/bgg/search" {
		t.Errorf("path = %q, want search variant", gotPath)
	}
	wantParams := map[string]string{
		"q":        "catan",
		"page":     "2",
		"limit":    "20",
		"players":  "4",
		"weight":   "medium",
		"min_time": "61",
		"max_time": "90",
		"tags":     "classic,trading",
	}
	for k, want := range wantParams {
		if got := gotQuery.Get(k); got != want {
			t.Errorf("param %s = %q, want %q", k, got, want)
		}
	}

	if pg.Total != 1 || len(pg.Results) != 1 || pg.Results[0].ID != "catan" {
		t.Errorf("unexpected page: %+v", pg)
	}
}

func TestFetchPage_HotVariantOmitsUnsetFilters(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"results":[],"total":0,"pages":0}`))
	})

	_, err := client.FetchPage(context.Background(), discover.Query{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/bgg/hot" {
		t.Errorf("path = %q, want hot variant", gotPath)
	}
	for _, k := range []string{"q", "players", "weight", "min_time", "max_time", "tags"} {
		if gotQuery.Has(k) {
			t.Errorf("unset param %s sent as %q", k, gotQuery.Get(k))
		}
	}
}

func TestFetchPage_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.FetchPage(context.Background(), discover.Query{Page: 1, Limit: 20})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if want := "request failed: 429"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestFetchPage_NormalizesMalformedRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":"x","name":"X","players":{"min":4,"max":2},"time":{"min":0,"max":0},"tags":null}],"total":1,"pages":1}`))
	})

	pg, err := client.FetchPage(context.Background(), discover.Query{Text: "x", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := pg.Results[0]
	if g.Players != (game.Range{Min: 2, Max: 4}) {
		t.Errorf("inverted range not straightened: %+v", g.Players)
	}
	if g.Tags == nil {
		t.Error("nil tags should become empty slice")
	}
}

func TestFetchPage_NilResultsBecomeEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":null,"total":0,"pages":0}`))
	})

	pg, err := client.FetchPage(context.Background(), discover.Query{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Results == nil {
		t.Error("nil results should decode to empty slice")
	}
}

func TestFetchPage_ContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.FetchPage(ctx, discover.Query{Page: 1, Limit: 20})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := client.FetchPage(context.Background(), discover.Query{Page: 1, Limit: 20})
	if err == nil {
		t.Fatal("expected error for truncated body")
	}
}
