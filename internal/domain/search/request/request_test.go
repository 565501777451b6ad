package request

import (
	"errors"
	"testing"

	"github.com/localhive/placedex/internal/domain"
	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/search/sortkey"
)

func TestParse_Defaults(t *testing.T) {
	req, err := Parse(Raw{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Radius != DefaultRadius {
		t.Errorf("radius = %g, want %g", req.Radius, DefaultRadius)
	}
	if req.Page != DefaultPage || req.Limit != DefaultLimit {
		t.Errorf("page/limit = %d/%d, want %d/%d", req.Page, req.Limit, DefaultPage, DefaultLimit)
	}
	if req.SortBy != sortkey.Relevance {
		t.Errorf("sortBy = %q, want relevance", req.SortBy)
	}
	if req.Origin != nil {
		t.Error("origin set without coordinates")
	}
}

func TestParse_FullRequest(t *testing.T) {
	req, err := Parse(Raw{
		Query:     " coffee ",
		Latitude:  "40.7128",
		Longitude: "-74.0060",
		Radius:    "10",
		MinRating: "4",
		Price:     "budget",
		Verified:  "true",
		OpenNow:   "true",
		City:      "Brooklyn",
		SortBy:    "rating",
		Page:      "2",
		Limit:     "50",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Query != "coffee" {
		t.Errorf("query = %q, want trimmed %q", req.Query, "coffee")
	}
	if req.Origin == nil || req.Origin.Latitude != 40.7128 || req.Origin.Longitude != -74.0060 {
		t.Errorf("origin = %+v", req.Origin)
	}
	if req.Radius != 10 || req.MinRating != 4 || req.Page != 2 || req.Limit != 50 {
		t.Errorf("numeric fields: %+v", req)
	}
	if req.Price != business.PriceBudget {
		t.Errorf("price = %q", req.Price)
	}
	if !req.Verified || req.Featured || !req.OpenNow {
		t.Errorf("flags: verified=%v featured=%v openNow=%v", req.Verified, req.Featured, req.OpenNow)
	}
	if req.SortBy != sortkey.Rating {
		t.Errorf("sortBy = %q", req.SortBy)
	}
}

func TestParse_InvalidNumerics(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"radius not a number", Raw{Radius: "far"}},
		{"radius below min", Raw{Radius: "0.5"}},
		{"radius above max", Raw{Radius: "101"}},
		{"minRating not a number", Raw{MinRating: "great"}},
		{"minRating above max", Raw{MinRating: "5.5"}},
		{"page zero", Raw{Page: "0"}},
		{"page not a number", Raw{Page: "first"}},
		{"limit zero", Raw{Limit: "0"}},
		{"limit above max", Raw{Limit: "101"}},
		{"latitude not a number", Raw{Latitude: "north", Longitude: "0"}},
		{"latitude out of range", Raw{Latitude: "91", Longitude: "0"}},
		{"latitude without longitude", Raw{Latitude: "40"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("err = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestParse_SoftFiltersFallBack(t *testing.T) {
	req, err := Parse(Raw{SortBy: "popularity", Price: "luxury"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.SortBy != sortkey.Relevance {
		t.Errorf("unknown sortBy = %q, want relevance fallback", req.SortBy)
	}
	if req.Price != "" {
		t.Errorf("unknown price kept: %q", req.Price)
	}
}

func TestParse_DistanceSortRequiresOrigin(t *testing.T) {
	_, err := Parse(Raw{SortBy: "distance"})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}

	if _, err := Parse(Raw{SortBy: "distance", Latitude: "40", Longitude: "-74"}); err != nil {
		t.Errorf("distance sort with origin rejected: %v", err)
	}
}
