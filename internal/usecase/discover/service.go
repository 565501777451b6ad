// Package discover implements the trending and nearby read paths. Both
// reuse the store-level candidate fetch with simplified ranking rules.
package discover

import (
	"context"
	"fmt"
	"sort"

	"github.com/localhive/placedex/internal/domain"
	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/geo"
	"github.com/localhive/placedex/internal/domain/search/result"
)

// Read-path limits.
const (
	trendingLimit = 10
	nearbyLimit   = 10

	// DefaultNearbyRadius is the nearby search radius in miles.
	DefaultNearbyRadius = 10.0
)

// BusinessLister fetches active businesses with store-level filters.
type BusinessLister interface {
	FindActive(ctx context.Context, f business.Filters) ([]business.Business, int, error)
}

// Service serves the trending and nearby readers.
type Service struct {
	store BusinessLister
}

// New creates a discover service.
func New(store BusinessLister) *Service {
	return &Service{store: store}
}

// Trending returns up to 10 active businesses by view count descending,
// ties broken by rating descending. No text or geo filtering.
func (s *Service) Trending(ctx context.Context) ([]business.Business, error) {
	all, _, err := s.store.FindActive(ctx, business.Filters{})
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ViewCount != all[j].ViewCount {
			return all[i].ViewCount > all[j].ViewCount
		}
		return all[i].Rating > all[j].Rating
	})
	if len(all) > trendingLimit {
		all = all[:trendingLimit]
	}
	return all, nil
}

// Nearby returns up to 10 businesses within radius miles of the origin,
// sorted by rating descending then distance ascending. A non-positive
// radius falls back to the 10-mile default.
func (s *Service) Nearby(ctx context.Context, lat, lon, radius float64) ([]result.Scored, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidQuery)
	}
	if radius <= 0 {
		radius = DefaultNearbyRadius
	}

	all, _, err := s.store.FindActive(ctx, business.Filters{})
	if err != nil {
		return nil, fmt.Errorf("fetch nearby: %w", err)
	}

	within := make([]result.Scored, 0, len(all))
	for _, b := range all {
		d := geo.Haversine(lat, lon, b.Latitude, b.Longitude)
		if d > radius {
			continue
		}
		within = append(within, result.Scored{Business: b, Distance: &d})
	}

	sort.SliceStable(within, func(i, j int) bool {
		if within[i].Business.Rating != within[j].Business.Rating {
			return within[i].Business.Rating > within[j].Business.Rating
		}
		return *within[i].Distance < *within[j].Distance
	})
	if len(within) > nearbyLimit {
		within = within[:nearbyLimit]
	}
	return within, nil
}
