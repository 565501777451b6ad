package search

import (
	"context"

	"github.com/localhive/placedex/internal/domain/business"
	"github.com/localhive/placedex/internal/domain/category"
)

// BusinessStore is the candidate-fetch contract. The returned count reflects
// only the store-level filters.
type BusinessStore interface {
	FindActive(ctx context.Context, f business.Filters) ([]business.Business, int, error)
}

// CategoryDirectory resolves category slugs for the query normalizer.
type CategoryDirectory interface {
	ResolveSlug(ctx context.Context, slug string) (category.Category, error)
}
