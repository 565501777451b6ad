// Package suggest implements typeahead suggestions over businesses and
// categories.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/category"
)

// Suggestion limits.
const (
	MinQueryLen   = 2
	businessLimit = 5
	categoryLimit = 3
)

// Suggestion types.
const (
	TypeBusiness = "business"
	TypeCategory = "category"
)

// Suggestion is one typeahead entry.
type Suggestion struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Slug string `json:"slug"`
}

// BusinessSuggester returns name-substring business matches.
type BusinessSuggester interface {
	SuggestNames(ctx context.Context, text string, limit int) ([]business.Business, error)
}

// CategorySearcher returns name/description-substring category matches.
type CategorySearcher interface {
	Search(ctx context.Context, text string, limit int) ([]category.Category, error)
}

// Service merges business and category suggestions.
type Service struct {
	businesses BusinessSuggester
	categories CategorySearcher
}

// New creates a suggestion service.
func New(businesses BusinessSuggester, categories CategorySearcher) *Service {
	return &Service{businesses: businesses, categories: categories}
}

// Suggest returns up to 5 business and 3 category suggestions, businesses
// first. Queries under 2 characters short-circuit to an empty list without
// touching the store.
func (s *Service) Suggest(ctx context.Context, q string) ([]Suggestion, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinQueryLen {
		return []Suggestion{}, nil
	}

	bizzes, err := s.businesses.SuggestNames(ctx, q, businessLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest businesses: %w", err)
	}
	cats, err := s.categories.Search(ctx, q, categoryLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest categories: %w", err)
	}

	out := make([]Suggestion, 0, len(bizzes)+len(cats))
	for _, b := range bizzes {
		out = append(out, Suggestion{Type: TypeBusiness, Text: b.Name, Slug: b.Slug})
	}
	for _, c := range cats {
		out = append(out, Suggestion{Type: TypeCategory, Text: c.Name, Slug: c.Slug})
	}
	return out, nil
}
