package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localhive/placedex/internal/domain"
	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/geo"
	"github.com/localhive/placedex/internal/domain/search/request"
	"github.com/localhive/placedex/internal/domain/search/result"
	"github.com/localhive/placedex/internal/metrics"
)

// Service runs the search pipeline: candidate fetch, in-memory geo and
// open-now filtering, relevance scoring, ranking, pagination. It is
// stateless and request-scoped; the only shared state is the category
// directory's own cache.
type Service struct {
	store      BusinessStore
	categories CategoryDirectory
	now        func() time.Time
}

// New creates a search service.
func New(store BusinessStore, categories CategoryDirectory) *Service {
	return &Service{store: store, categories: categories, now: time.Now}
}

// WithClock overrides the time source. Test hook for open-now evaluation.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Response is one page of ranked results plus the echoable filter state.
type Response struct {
	Results     []result.Scored
	Page        result.PageMeta
	HasLocation bool
	Radius      float64
}

// Search executes a normalized request end to end.
func (s *Service) Search(ctx context.Context, req request.Request) (Response, error) {
	filters := business.Filters{
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Verified:   req.Verified,
		Featured:   req.Featured,
		MinRating:  req.MinRating,
		City:       req.City,
		State:      req.State,
		Query:      req.Query,
	}

	// A slug that does not resolve drops the category filter silently; only
	// store failures abort the request.
	if req.CategorySlug != "" && req.CategoryID == "" {
		cat, err := s.categories.ResolveSlug(ctx, req.CategorySlug)
		switch {
		case err == nil:
			filters.CategoryID = cat.ID
		case errors.Is(err, domain.ErrCategoryNotFound):
			// filter dropped
		default:
			return Response{}, fmt.Errorf("resolve category slug: %w", err)
		}
	}

	candidates, total, err := s.store.FindActive(ctx, filters)
	if err != nil {
		return Response{}, fmt.Errorf("fetch candidates: %w", err)
	}

	scored := s.filterAndScore(candidates, req)
	ranked := Rank(scored, req.SortBy, req.Query != "")
	items, meta := Paginate(ranked, total, req.Page, req.Limit)

	metrics.SearchesTotal.WithLabelValues(string(req.SortBy)).Inc()

	return Response{
		Results:     items,
		Page:        meta,
		HasLocation: req.Origin != nil,
		Radius:      req.Radius,
	}, nil
}

// filterAndScore applies the geo and open-now post-filters and attaches the
// computed signals. Cost is O(N) over the store-filtered candidate set;
// there is no spatial index to push this down to.
func (s *Service) filterAndScore(candidates []business.Business, req request.Request) []result.Scored {
	now := s.now()
	out := make([]result.Scored, 0, len(candidates))
	var geoDiscards, hoursDiscards int

	for _, b := range candidates {
		r := result.Scored{Business: b}

		if req.Origin != nil {
			d := geo.Haversine(req.Origin.Latitude, req.Origin.Longitude, b.Latitude, b.Longitude)
			if d > req.Radius {
				geoDiscards++
				continue
			}
			r.Distance = &d
		}

		if req.OpenNow && !b.Hours.OpenAt(now) {
			hoursDiscards++
			continue
		}

		if req.Query != "" {
			score := Score(&b, req.Query)
			r.RelevanceScore = &score
		}

		out = append(out, r)
	}

	if geoDiscards > 0 {
		metrics.SearchCandidatesDiscarded.WithLabelValues("geo").Add(float64(geoDiscards))
	}
	if hoursDiscards > 0 {
		metrics.SearchCandidatesDiscarded.WithLabelValues("hours").Add(float64(hoursDiscards))
	}
	return out
}
