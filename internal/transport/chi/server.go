// Package chi provides the HTTP transport: public search read endpoints and
// the bearer-guarded internal ingest surface.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/localhive/placedex/internal/domain"
	dombiz "github.com/localhive/placedex/internal/domain/business"
	domcat "github.com/localhive/placedex/internal/domain/category"
	"github.com/localhive/placedex/internal/domain/search/request"
	"github.com/localhive/placedex/internal/domain/search/result"
	discoveruc "github.com/localhive/placedex/internal/usecase/discover"
	healthuc "github.com/localhive/placedex/internal/usecase/health"
	searchuc "github.com/localhive/placedex/internal/usecase/search"
	suggestuc "github.com/localhive/placedex/internal/usecase/suggest"
	"github.com/localhive/placedex/internal/version"
)

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeInvalidQuery     = "invalid_query"
	codeNotFound         = "not_found"
	codeStoreUnavailable = "store_unavailable"
	codeInternalError    = "internal_error"
	codeUnauthorized     = "unauthorized"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// BusinessWriter is the ingest contract for business records.
type BusinessWriter interface {
	Upsert(ctx context.Context, b *dombiz.Business) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
}

// CategoryWriter is the ingest contract for categories.
type CategoryWriter interface {
	Upsert(ctx context.Context, c *domcat.Category) error
	Delete(ctx context.Context, id string) error
}

// Server wires the usecases to HTTP handlers.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	discover      *discoveruc.Service
	health        *healthuc.Service
	businesses    BusinessWriter
	categories    CategoryWriter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	discover *discoveruc.Service,
	health *healthuc.Service,
	businesses BusinessWriter,
	categories CategoryWriter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		suggest:    suggest,
		discover:   discover,
		health:     health,
		businesses: businesses,
		categories: categories,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Register mounts all routes. auth guards the internal ingest surface only.
func (s *Server) Register(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/search", s.handleSearch)
	r.Get("/search/suggestions", s.handleSuggestions)
	r.Get("/search/trending", s.handleTrending)
	r.Get("/search/nearby", s.handleNearby)

	r.Route("/internal", func(r chi.Router) {
		r.Use(auth)
		r.Put("/businesses/{id}", s.handleUpsertBusiness)
		r.Delete("/businesses/{id}", s.handleDeleteBusiness)
		r.Post("/businesses/{id}/views", s.handleIncrementViews)
		r.Put("/categories/{id}", s.handleUpsertCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)
	})
}

// handleSearch handles GET /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := request.Parse(request.Raw{
		Query:        q.Get("q"),
		CategoryID:   q.Get("categoryId"),
		CategorySlug: q.Get("categorySlug"),
		Latitude:     q.Get("latitude"),
		Longitude:    q.Get("longitude"),
		Radius:       q.Get("radius"),
		MinRating:    q.Get("minRating"),
		Price:        q.Get("priceRange"),
		Verified:     q.Get("verified"),
		Featured:     q.Get("featured"),
		OpenNow:      q.Get("openNow"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		SortBy:       q.Get("sortBy"),
		Page:         q.Get("page"),
		Limit:        q.Get("limit"),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Businesses: scoredToJSON(resp.Results),
		Pagination: resp.Page,
		Filters: searchFilters{
			HasLocation: resp.HasLocation,
			Radius:      resp.Radius,
		},
	})
}

// handleSuggestions handles GET /search/suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggest.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// handleTrending handles GET /search/trending.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.discover.Trending(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]businessJSON, len(businesses))
	for i := range businesses {
		out[i] = toBusinessJSON(&businesses[i], nil, nil)
	}
	writeJSON(w, http.StatusOK, map[string]any{"businesses": out})
}

// handleNearby handles GET /search/nearby.
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lon, err := parseCoords(q.Get("latitude"), q.Get("longitude"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	radius := 0.0
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			s.handleDomainError(w, fmt.Errorf("%w: radius must be a number", domain.ErrInvalidQuery))
			return
		}
	}

	results, err := s.discover.Nearby(r.Context(), lat, lon, radius)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"businesses": scoredToJSON(results)})
}

// handleUpsertBusiness handles PUT /internal/businesses/{id}.
func (s *Server) handleUpsertBusiness(w http.ResponseWriter, r *http.Request) {
	var b dombiz.Business
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	b.ID = chi.URLParam(r, "id")

	if err := s.businesses.Upsert(r.Context(), &b); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.handleDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleDeleteBusiness handles DELETE /internal/businesses/{id}.
func (s *Server) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := s.businesses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleIncrementViews handles POST /internal/businesses/{id}/views.
func (s *Server) handleIncrementViews(w http.ResponseWriter, r *http.Request) {
	views, err := s.businesses.IncrementViews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"viewCount": views})
}

// handleUpsertCategory handles PUT /internal/categories/{id}.
func (s *Server) handleUpsertCategory(w http.ResponseWriter, r *http.Request) {
	var c domcat.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	c.ID = chi.URLParam(r, "id")

	if err := s.categories.Upsert(r.Context(), &c); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.handleDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleDeleteCategory handles DELETE /internal/categories/{id}.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unhealthy",
			"version": version.Version,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func parseCoords(latRaw, lonRaw string) (float64, float64, error) {
	if latRaw == "" || lonRaw == "" {
		return 0, 0, fmt.Errorf("%w: latitude and longitude are required", domain.ErrInvalidQuery)
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude must be a number", domain.ErrInvalidQuery)
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude must be a number", domain.ErrInvalidQuery)
	}
	return lat, lon, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// --- JSON projections ---

type searchFilters struct {
	HasLocation bool    `json:"hasLocation"`
	Radius      float64 `json:"radius"`
}

type searchResponse struct {
	Businesses []businessJSON  `json:"businesses"`
	Pagination result.PageMeta `json:"pagination"`
	Filters    searchFilters   `json:"filters"`
}

type businessJSON struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	Description    string              `json:"description,omitempty"`
	CategoryID     string              `json:"categoryId,omitempty"`
	Latitude       float64             `json:"latitude"`
	Longitude      float64             `json:"longitude"`
	City           string              `json:"city,omitempty"`
	State          string              `json:"state,omitempty"`
	Rating         float64             `json:"rating"`
	ReviewCount    int                 `json:"reviewCount"`
	PriceRange     dombiz.PriceRange   `json:"priceRange,omitempty"`
	Verified       bool                `json:"verified"`
	Featured       bool                `json:"featured"`
	ViewCount      int64               `json:"viewCount"`
	Hours          *dombiz.WeeklyHours `json:"hours,omitempty"`
	ServiceCount   int                 `json:"serviceCount"`
	FavoriteCount  int                 `json:"favoriteCount"`
	Distance       *float64            `json:"distance,omitempty"`
	RelevanceScore *float64            `json:"relevanceScore,omitempty"`
}

func toBusinessJSON(b *dombiz.Business, distance, score *float64) businessJSON {
	return businessJSON{
		ID:             b.ID,
		Name:           b.Name,
		Slug:           b.Slug,
		Description:    b.Description,
		CategoryID:     b.CategoryID,
		Latitude:       b.Latitude,
		Longitude:      b.Longitude,
		City:           b.City,
		State:          b.State,
		Rating:         b.Rating,
		ReviewCount:    b.ReviewCount,
		PriceRange:     b.PriceRange,
		Verified:       b.Verified,
		Featured:       b.Featured,
		ViewCount:      b.ViewCount,
		Hours:          b.Hours,
		ServiceCount:   b.ServiceCount,
		FavoriteCount:  b.FavoriteCount,
		Distance:       distance,
		RelevanceScore: score,
	}
}

func scoredToJSON(results []result.Scored) []businessJSON {
	out := make([]businessJSON, len(results))
	for i := range results {
		out[i] = toBusinessJSON(&results[i].Business, results[i].Distance, results[i].RelevanceScore)
	}
	return out
}
