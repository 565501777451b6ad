package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/localhive/placedex/internal/domain"
	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/category"
	"github.com/localhive/placedex/internal/domain/search/request"
	"github.com/localhive/placedex/internal/domain/search/sortkey"
)

// --- Mocks ---

type mockStore struct {
	candidates  []business.Business
	total       int
	err         error
	lastFilters business.Filters
	called      bool
}

func (m *mockStore) FindActive(_ context.Context, f business.Filters) ([]business.Business, int, error) {
	m.called = true
	m.lastFilters = f
	return m.candidates, m.total, m.err
}

type mockDirectory struct {
	cat category.Category
	err error
}

func (m *mockDirectory) ResolveSlug(_ context.Context, _ string) (category.Category, error) {
	return m.cat, m.err
}

func fixedNoon() time.Time {
	// A Tuesday.
	return time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
}

func TestSearch_RadiusContainment(t *testing.T) {
	store := &mockStore{
		candidates: []business.Business{
			{ID: "x", Name: "X", Latitude: 40.7128, Longitude: -74.0060, Active: true},
			{ID: "y", Name: "Y", Latitude: 41.9, Longitude: -87.6, Active: true},
		},
		total: 2,
	}
	svc := New(store, &mockDirectory{err: domain.ErrCategoryNotFound})

	req, err := request.Parse(request.Raw{Latitude: "40.7128", Longitude: "-74.0060", Radius: "10"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(resp.Results) != 1 || resp.Results[0].Business.ID != "x" {
		t.Fatalf("results = %+v, want only x", resp.Results)
	}
	if resp.Results[0].Distance == nil || *resp.Results[0].Distance != 0 {
		t.Errorf("distance = %v, want 0", resp.Results[0].Distance)
	}
	for _, r := range resp.Results {
		if *r.Distance > 10 {
			t.Errorf("result %s beyond radius: %g", r.Business.ID, *r.Distance)
		}
	}
	// Store-level total survives the geo discard.
	if resp.Page.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Page.Total)
	}
	if !resp.HasLocation || resp.Radius != 10 {
		t.Errorf("filter echo = %v/%g", resp.HasLocation, resp.Radius)
	}
}

func TestSearch_OpenNowFailsClosed(t *testing.T) {
	open := &business.WeeklyHours{Tuesday: &business.DayHours{Open: "09:00", Close: "17:00"}}
	closed := &business.WeeklyHours{Tuesday: &business.DayHours{Open: "13:00", Close: "17:00"}}

	store := &mockStore{
		candidates: []business.Business{
			{ID: "open", Active: true, Hours: open},
			{ID: "closed", Active: true, Hours: closed},
			{ID: "no-hours", Active: true},
		},
		total: 3,
	}
	svc := New(store, &mockDirectory{}).WithClock(fixedNoon)

	req, err := request.Parse(request.Raw{OpenNow: "true"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Business.ID != "open" {
		t.Fatalf("open-now results = %+v, want only 'open'", resp.Results)
	}
}

func TestSearch_CategorySlugResolution(t *testing.T) {
	store := &mockStore{}
	dir := &mockDirectory{cat: category.Category{ID: "cat-7", Slug: "plumbers"}}
	svc := New(store, dir)

	req, err := request.Parse(request.Raw{CategorySlug: "plumbers"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("search: %v", err)
	}
	if store.lastFilters.CategoryID != "cat-7" {
		t.Errorf("category filter = %q, want cat-7", store.lastFilters.CategoryID)
	}
}

func TestSearch_UnresolvedSlugDropsFilter(t *testing.T) {
	store := &mockStore{}
	svc := New(store, &mockDirectory{err: domain.ErrCategoryNotFound})

	req, err := request.Parse(request.Raw{CategorySlug: "no-such-slug"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("unresolved slug must not fail the request: %v", err)
	}
	if !store.called {
		t.Fatal("store not called")
	}
	if store.lastFilters.CategoryID != "" {
		t.Errorf("category filter = %q, want dropped", store.lastFilters.CategoryID)
	}
}

func TestSearch_DirectoryFailurePropagates(t *testing.T) {
	store := &mockStore{}
	svc := New(store, &mockDirectory{err: domain.ErrStoreUnavailable})

	req, _ := request.Parse(request.Raw{CategorySlug: "plumbers"})
	if _, err := svc.Search(context.Background(), req); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
	if store.called {
		t.Error("store called after directory failure")
	}
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	store := &mockStore{err: domain.ErrStoreUnavailable}
	svc := New(store, &mockDirectory{})

	req, _ := request.Parse(request.Raw{})
	if _, err := svc.Search(context.Background(), req); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestSearch_SignalsOnlyWhenRequested(t *testing.T) {
	store := &mockStore{
		candidates: []business.Business{{ID: "a", Name: "Joe's Coffee", Active: true}},
		total:      1,
	}
	svc := New(store, &mockDirectory{})

	// No query, no origin: both signals unset.
	req, _ := request.Parse(request.Raw{})
	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Results[0].Distance != nil || resp.Results[0].RelevanceScore != nil {
		t.Errorf("signals set without query/origin: %+v", resp.Results[0])
	}

	// With a query: relevance set, distance still unset.
	req, _ = request.Parse(request.Raw{Query: "coffee"})
	resp, err = svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Results[0].RelevanceScore == nil {
		t.Error("relevance score missing with text query")
	}
	if resp.Results[0].Distance != nil {
		t.Error("distance set without origin")
	}
}

func TestSearch_RanksBeforePaginating(t *testing.T) {
	store := &mockStore{
		candidates: []business.Business{
			{ID: "low", Rating: 2.0, Active: true},
			{ID: "top", Rating: 4.9, Active: true},
			{ID: "mid", Rating: 3.5, Active: true},
		},
		total: 3,
	}
	svc := New(store, &mockDirectory{})

	req, _ := request.Parse(request.Raw{SortBy: string(sortkey.Rating), Limit: "2"})
	resp, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Business.ID != "top" || resp.Results[1].Business.ID != "mid" {
		t.Errorf("page = %s,%s want top,mid", resp.Results[0].Business.ID, resp.Results[1].Business.ID)
	}
}
