// Package result holds the scored search projection and page metadata.
package result

import "github.com/localhive/placedex/internal/domain/business"

// Scored is a business plus the signals computed during search.
// Distance is set only when the request carried an origin; RelevanceScore
// only when it carried a text query.
type Scored struct {
	Business       business.Business
	Distance       *float64
	RelevanceScore *float64
}

// PageMeta describes one page of a ranked list. Total is the store-level
// match count: geo and open-now discards are not reflected in it.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes pagination metadata with totalPages = ceil(total/limit).
func NewPageMeta(total, page, limit int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
