// Package discover mediates between rapid user input and the remote
// paginated catalog endpoint. It coalesces bursts of filter changes into a
// single request (debounce), enforces a minimum spacing between completed
// requests (throttle), cancels superseded requests, and accumulates pages
// for infinite scroll.
package discover

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
)

// Default timing parameters.
const (
	// DefaultBaseDelay is the minimum debounce interval after an input change.
	DefaultBaseDelay = 250 * time.Millisecond
	// DefaultRequestWindow is the slot reserved per request. A response that
	// arrives early waits out the remainder before being applied, capping
	// the effective request rate against the backing catalog service.
	DefaultRequestWindow = 3 * time.Second
	// DefaultScrollSlot is the cooldown reserved by a scroll-triggered page
	// advance, serializing rapid sentinel triggers.
	DefaultScrollSlot = 5 * time.Second
)

// Query is one request against the remote endpoint.
type Query struct {
	Text    string
	Filters search.Filters
	Page    int
	Limit   int
}

// Fetcher retrieves one page of results. Implementations must honor ctx
// cancellation and return an error wrapping context.Canceled when aborted.
type Fetcher interface {
	FetchPage(ctx context.Context, q Query) (search.Page, error)
}

// Config tunes the orchestrator timing. Zero fields take the defaults above.
type Config struct {
	BaseDelay     time.Duration
	RequestWindow time.Duration
	ScrollSlot    time.Duration
	Limit         int
}

func (c Config) withDefaults() Config {
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.RequestWindow <= 0 {
		c.RequestWindow = DefaultRequestWindow
	}
	if c.ScrollSlot <= 0 {
		c.ScrollSlot = DefaultScrollSlot
	}
	if c.Limit <= 0 {
		c.Limit = search.DefaultLimit
	}
	return c
}

// Snapshot is a point-in-time copy of the visible search state.
type Snapshot struct {
	Query   string
	Filters search.Filters
	Sort    search.Sort
	Results []game.Game
	Total   int
	Page    int
	Pages   int
	Loading bool
	Err     string
}

// Orchestrator owns the search state for one active discovery flow. One
// instance per flow; no cross-flow sharing. All mutation happens under mu,
// driven by input events, the debounce timer, and request completions.
type Orchestrator struct {
	fetch  Fetcher
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	query    string
	filters  search.Filters
	sortMode search.Sort
	page     int
	results  []game.Game
	total    int
	pages    int
	loading  bool
	errMsg   string

	debounce      *time.Timer
	nextAllowedAt time.Time
	seq           uint64
	cancel        context.CancelFunc
	hydration     bool // one-shot: skip the fetch duplicating seeded results
	closed        bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithInitialPage seeds the flow with a server-provided default-filter
// page 1 and arms the hydration latch: the first refresh that would merely
// duplicate this fetch is skipped, exactly once per flow lifetime.
func WithInitialPage(p search.Page) Option {
	return func(o *Orchestrator) {
		o.results = p.Results
		o.total = p.Total
		o.pages = p.Pages
		o.hydration = true
	}
}

// New creates an orchestrator for one discovery flow.
func New(fetch Fetcher, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetch:    fetch,
		cfg:      cfg.withDefaults(),
		logger:   zap.NewNop(),
		sortMode: search.SortRelevance,
		page:     1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start triggers the initial load. With a seeded initial page this consumes
// the hydration latch instead of fetching.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scheduleLocked()
}

// SetQuery updates the free-text query.
func (o *Orchestrator) SetQuery(q string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.query == q {
		return
	}
	o.query = q
	o.filterChangedLocked()
}

// SetTags replaces the selected tag set.
func (o *Orchestrator) SetTags(tags []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.filters.Tags = tags
	o.filterChangedLocked()
}

// SetTimeBucket selects a play-duration bucket ("" clears it).
func (o *Orchestrator) SetTimeBucket(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.filters.TimeBucket == id {
		return
	}
	o.filters.TimeBucket = id
	o.filterChangedLocked()
}

// SetPlayers sets the target player count (0 clears it).
func (o *Orchestrator) SetPlayers(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.filters.Players == n {
		return
	}
	o.filters.Players = n
	o.filterChangedLocked()
}

// SetWeight selects a complexity class ("" clears it).
func (o *Orchestrator) SetWeight(w game.Weight) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.filters.Weight == w {
		return
	}
	o.filters.Weight = w
	o.filterChangedLocked()
}

// SetSort changes the sort mode. Sorting is display-only reordering of the
// already-accumulated results; it never triggers a fetch or a page reset.
func (o *Orchestrator) SetSort(s search.Sort) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s.IsValid() {
		o.sortMode = s
	}
}

// Reset clears the query, every filter, and the sort mode, returning the
// flow to its default listing.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.query = ""
	o.filters = search.Filters{}
	o.sortMode = search.SortRelevance
	o.filterChangedLocked()
}

// LoadMore is the infinite-scroll trigger. The page advances only when no
// request is loading, more pages remain, and the cooldown slot has elapsed;
// the next slot is reserved optimistically before the request completes.
func (o *Orchestrator) LoadMore() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.loading {
		return
	}
	if o.page >= o.effectivePagesLocked() {
		return
	}
	now := time.Now()
	if now.Before(o.nextAllowedAt) {
		return
	}
	o.nextAllowedAt = now.Add(o.cfg.ScrollSlot)
	o.page++
	o.scheduleLocked()
}

// Snapshot returns a copy of the current visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	results := make([]game.Game, len(o.results))
	copy(results, o.results)
	return Snapshot{
		Query:   o.query,
		Filters: o.filters,
		Sort:    o.sortMode,
		Results: results,
		Total:   o.total,
		Page:    o.page,
		Pages:   o.effectivePagesLocked(),
		Loading: o.loading,
		Err:     o.errMsg,
	}
}

// Close tears down the flow: the debounce timer stops and any in-flight
// request is cancelled, so no delayed callback fires afterwards.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.debounce != nil {
		o.debounce.Stop()
	}
	if o.cancel != nil {
		o.cancel()
	}
}

// filterChangedLocked applies the shared discipline for query/filter edits:
// back to page 1, throttle deadline cleared, refresh rescheduled.
func (o *Orchestrator) filterChangedLocked() {
	o.page = 1
	o.nextAllowedAt = time.Time{}
	o.scheduleLocked()
}

// scheduleLocked arms (or re-arms) the debounce timer. Re-triggering before
// the pending timer fires replaces it, so a burst of changes yields one call.
func (o *Orchestrator) scheduleLocked() {
	if o.closed {
		return
	}

	if o.hydration && o.page == 1 && o.isDefaultLocked() && len(o.results) > 0 && o.total > 0 {
		o.hydration = false
		o.logger.Debug("using seeded initial results, skipping duplicate fetch")
		return
	}

	if o.debounce != nil {
		o.debounce.Stop()
	}
	o.loading = true
	o.errMsg = ""

	delay := o.cfg.BaseDelay
	if until := time.Until(o.nextAllowedAt); until > delay {
		delay = until
	}
	o.debounce = time.AfterFunc(delay, o.fire)
}

func (o *Orchestrator) isDefaultLocked() bool {
	return strings.TrimSpace(o.query) == "" && o.filters.IsDefault()
}

// fire issues the network request for the current state. It reserves the
// request window up front and cancels any in-flight predecessor; only the
// newest request's token may later apply its response.
func (o *Orchestrator) fire() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.seq++
	token := o.seq
	windowEnd := time.Now().Add(o.cfg.RequestWindow)
	o.nextAllowedAt = windowEnd

	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	q := Query{
		Text:    strings.TrimSpace(o.query),
		Filters: o.filters,
		Page:    o.page,
		Limit:   o.cfg.Limit,
	}
	o.mu.Unlock()

	go o.execute(ctx, token, q, windowEnd)
}

func (o *Orchestrator) execute(ctx context.Context, token uint64, q Query, windowEnd time.Time) {
	pg, err := o.fetch.FetchPage(ctx, q)

	if err == nil {
		// Early responses wait out the reserved window before applying.
		if wait := time.Until(windowEnd); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || token != o.seq {
		// Superseded: the newer request owns the state now.
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		o.logger.Warn("catalog fetch failed", zap.Int("page", q.Page), zap.Error(err))
		o.errMsg = err.Error()
		if q.Page == 1 {
			// Never show stale results next to a first-page error.
			o.results = nil
		}
		o.loading = false
		return
	}

	o.total = pg.Total
	o.pages = pg.Pages
	if q.Page > 1 {
		o.results = append(o.results, pg.Results...)
	} else {
		o.results = pg.Results
	}
	o.loading = false
}

func (o *Orchestrator) effectivePagesLocked() int {
	p := search.Page{Results: o.results, Total: o.total, Pages: o.pages}
	return p.EffectivePages(o.cfg.Limit)
}
