package gamedex

import (
	"github.com/meeplekit/gamedex/internal/usecase/discover"
)

// Session is a stateful discovery session: it debounces filter changes,
// rate-limits infinite scroll, and keeps the newest response authoritative.
// All methods are safe for concurrent use.
type Session struct {
	orch *discover.Orchestrator
}

// Discover opens a discovery session backed by the client's page source.
// Call Start to trigger the initial fetch and Close when done.
func (c *Client) Discover(opts ...DiscoverOption) *Session {
	var dc discoverConfig
	for _, o := range opts {
		o(&dc)
	}

	orchOpts := []discover.Option{discover.WithLogger(c.logger)}
	if dc.initial != nil {
		orchOpts = append(orchOpts, discover.WithInitialPage(*dc.initial))
	}

	orch := discover.New(c.fetcher, discover.Config{
		BaseDelay:     dc.baseDelay,
		RequestWindow: dc.window,
		ScrollSlot:    dc.slot,
		Limit:         dc.pageSize,
	}, orchOpts...)

	return &Session{orch: orch}
}

// Start triggers the initial fetch. A session seeded with non-empty initial
// results on default filters skips it.
func (s *Session) Start() {
	s.orch.Start()
}

// SetQuery updates the search text and schedules a debounced fetch from
// page one.
func (s *Session) SetQuery(q string) {
	s.orch.SetQuery(q)
}

// SetTags replaces the tag filter.
func (s *Session) SetTags(tags []string) {
	s.orch.SetTags(tags)
}

// SetTimeBucket sets the playtime filter by bucket ID. An empty ID clears it.
func (s *Session) SetTimeBucket(id string) {
	s.orch.SetTimeBucket(id)
}

// SetPlayers sets the player-count filter. Zero clears it.
func (s *Session) SetPlayers(n int) {
	s.orch.SetPlayers(n)
}

// SetWeight sets the complexity filter. An empty weight clears it.
func (s *Session) SetWeight(w Weight) {
	s.orch.SetWeight(w)
}

// SetSort changes the display ordering without refetching.
func (s *Session) SetSort(sort Sort) {
	s.orch.SetSort(sort)
}

// LoadMore requests the next page. Ignored while loading, on the last page,
// or during the scroll cooldown.
func (s *Session) LoadMore() {
	s.orch.LoadMore()
}

// Reset clears the query and all filters and schedules a fetch of page one.
func (s *Session) Reset() {
	s.orch.Reset()
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return s.orch.Snapshot()
}

// Close cancels any in-flight request and stops the session.
func (s *Session) Close() {
	s.orch.Close()
}
