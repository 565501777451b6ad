package domain

import "errors"

var (
	// ErrInvalidQuery signals malformed or out-of-range search parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCategoryNotFound signals an unresolvable category slug.
	// Callers treat this as "drop the filter", not as a request failure.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrStoreUnavailable signals a business store failure. Not retried here;
	// retry policy belongs to the store client.
	ErrStoreUnavailable = errors.New("store unavailable")
)
