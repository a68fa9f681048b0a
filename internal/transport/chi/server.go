// Package chi exposes the catalog HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meeplekit/gamedex/internal/domain"
	"github.com/meeplekit/gamedex/internal/domain/game"
	"github.com/meeplekit/gamedex/internal/domain/search"
	"github.com/meeplekit/gamedex/internal/usecase/catalog"
)

// Server handles the catalog API routes.
type Server struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(catalogSvc *catalog.Service, logger *zap.Logger) *Server {
	return &Server{catalog: catalogSvc, logger: logger}
}

// Routes mounts the API routes on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/bgg/search", s.handleSearch)
	r.Get("/api/bgg/hot", s.handleHot)
	r.Get("/api/bgg/similar/{id}", s.handleSimilar)
}

// handleSearch handles GET /api/bgg/search: the text-query listing variant.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	s.serveListing(w, r, query)
}

// handleHot handles GET /api/bgg/hot: the trending listing (no query text).
func (s *Server) handleHot(w http.ResponseWriter, r *http.Request) {
	s.serveListing(w, r, "")
}

func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, query string) {
	params := r.URL.Query()

	filters, err := filtersFromParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := intParam(params.Get("page"), 1)
	limit := intParam(params.Get("limit"), search.DefaultLimit)

	sortMode := search.Sort(params.Get("sort"))
	if params.Get("sort") != "" && !sortMode.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown sort mode "+strconv.Quote(params.Get("sort")))
		return
	}

	pg, err := s.catalog.Search(r.Context(), query, filters, page, limit, sortMode)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pg)
}

// similarResponse mirrors the shape the similar-games flow consumes.
type similarResponse struct {
	Base    game.Game        `json:"base"`
	Results []scoredResponse `json:"results"`
}

type scoredResponse struct {
	Game       game.Game `json:"game"`
	Score      float64   `json:"score"`
	Reasons    []string  `json:"reasons"`
	CommonTags []string  `json:"commonTags"`
}

// handleSimilar handles GET /api/bgg/similar/{id}.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	base, err := s.catalog.Game(id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	scored, err := s.catalog.Similar(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := similarResponse{Base: base, Results: make([]scoredResponse, len(scored))}
	for i, sc := range scored {
		reasons := sc.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		commonTags := sc.CommonTags
		if commonTags == nil {
			commonTags = []string{}
		}
		resp.Results[i] = scoredResponse{
			Game:       sc.Game,
			Score:      sc.Score,
			Reasons:    reasons,
			CommonTags: commonTags,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("catalog request failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream catalog unavailable")
	}
}

// filtersFromParams parses the structured filters off the wire. A time
// bucket arrives as min_time/max_time and maps back to its bucket ID;
// unrecognized bounds are ignored rather than rejected.
func filtersFromParams(params map[string][]string) (search.Filters, error) {
	get := func(key string) string {
		if v, ok := params[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var filters search.Filters
	if raw := get("players"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return search.Filters{}, errors.New("players must be a positive integer")
		}
		filters.Players = n
	}
	if raw := get("weight"); raw != "" {
		w := game.Weight(raw)
		if !w.IsValid() {
			return search.Filters{}, errors.New("unknown weight " + strconv.Quote(raw))
		}
		filters.Weight = w
	}
	if minRaw, maxRaw := get("min_time"), get("max_time"); minRaw != "" && maxRaw != "" {
		minT, errMin := strconv.Atoi(minRaw)
		maxT, errMax := strconv.Atoi(maxRaw)
		if errMin == nil && errMax == nil {
			for _, b := range game.TimeBuckets {
				if b.Min == minT && b.Max == maxT {
					filters.TimeBucket = b.ID
					break
				}
			}
		}
	}
	if raw := get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filters.Tags = append(filters.Tags, t)
			}
		}
	}
	return filters, nil
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
