// Package request normalizes raw search parameters into a validated request.
package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/localhive/placedex/internal/domain"
	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/geo"
	"github.com/localhive/placedex/internal/domain/search/sortkey"
)

// Parameter defaults and bounds.
const (
	DefaultRadius = 25.0
	MinRadius     = 1.0
	MaxRadius     = 100.0
	DefaultPage   = 1
	DefaultLimit  = 20
	MaxLimit      = 100
)

// Origin is the geographic origin of a radius search.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// Request is a fully-defaulted, validated search request.
type Request struct {
	Query        string
	CategoryID   string
	CategorySlug string
	Origin       *Origin
	Radius       float64
	MinRating    float64
	Price        business.PriceRange
	Verified     bool
	Featured     bool
	OpenNow      bool
	City         string
	State        string
	SortBy       sortkey.Key
	Page         int
	Limit        int
}

// Raw holds the unparsed query parameters as received over the wire.
type Raw struct {
	Query        string
	CategoryID   string
	CategorySlug string
	Latitude     string
	Longitude    string
	Radius       string
	MinRating    string
	Price        string
	Verified     string
	Featured     string
	OpenNow      string
	City         string
	State        string
	SortBy       string
	Page         string
	Limit        string
}

// Parse normalizes raw parameters. Numeric fields that are non-numeric or
// out of bounds yield ErrInvalidQuery. Unknown sortBy and price values fall
// back to defaults instead of failing, matching the engine's silent-drop
// posture for soft filters.
func Parse(raw Raw) (Request, error) {
	req := Request{
		Query:        strings.TrimSpace(raw.Query),
		CategoryID:   strings.TrimSpace(raw.CategoryID),
		CategorySlug: strings.TrimSpace(raw.CategorySlug),
		City:         strings.TrimSpace(raw.City),
		State:        strings.TrimSpace(raw.State),
		Radius:       DefaultRadius,
		SortBy:       sortkey.Parse(raw.SortBy),
		Page:         DefaultPage,
		Limit:        DefaultLimit,
		Verified:     raw.Verified == "true",
		Featured:     raw.Featured == "true",
		OpenNow:      raw.OpenNow == "true",
	}

	origin, err := parseOrigin(raw.Latitude, raw.Longitude)
	if err != nil {
		return Request{}, err
	}
	req.Origin = origin

	if raw.Radius != "" {
		r, err := parseFloatInRange("radius", raw.Radius, MinRadius, MaxRadius)
		if err != nil {
			return Request{}, err
		}
		req.Radius = r
	}
	if raw.MinRating != "" {
		mr, err := parseFloatInRange("minRating", raw.MinRating, 0, 5)
		if err != nil {
			return Request{}, err
		}
		req.MinRating = mr
	}
	if raw.Page != "" {
		p, err := parseIntInRange("page", raw.Page, 1, 1<<30)
		if err != nil {
			return Request{}, err
		}
		req.Page = p
	}
	if raw.Limit != "" {
		l, err := parseIntInRange("limit", raw.Limit, 1, MaxLimit)
		if err != nil {
			return Request{}, err
		}
		req.Limit = l
	}

	if p := business.PriceRange(raw.Price); p.IsValid() {
		req.Price = p
	}

	// Distance ordering is meaningless without an origin.
	if req.SortBy == sortkey.Distance && req.Origin == nil {
		return Request{}, fmt.Errorf("%w: sortBy=distance requires latitude and longitude", domain.ErrInvalidQuery)
	}

	return req, nil
}

func parseOrigin(latRaw, lonRaw string) (*Origin, error) {
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, fmt.Errorf("%w: latitude and longitude must be supplied together", domain.ErrInvalidQuery)
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude must be a number", domain.ErrInvalidQuery)
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude must be a number", domain.ErrInvalidQuery)
	}
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidQuery)
	}
	return &Origin{Latitude: lat, Longitude: lon}, nil
}

func parseFloatInRange(name, raw string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidQuery, name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %g and %g", domain.ErrInvalidQuery, name, min, max)
	}
	return v, nil
}

func parseIntInRange(name, raw string, min, max int) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidQuery, name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", domain.ErrInvalidQuery, name, min, max)
	}
	return v, nil
}
