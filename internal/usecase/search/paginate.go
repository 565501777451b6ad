package search

import "github.com/localhive/placedex/internal/domain/search/result"

// Paginate slices the ranked list to the requested page and builds the page
// metadata. total is the store-level match count, which may exceed
// len(items) when geo or open-now filters discarded candidates; that
// mismatch is carried through deliberately.
func Paginate(items []result.Scored, total, page, limit int) ([]result.Scored, result.PageMeta) {
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], result.NewPageMeta(total, page, limit)
}
