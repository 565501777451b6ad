package business

import "strings"

// Filters are the store-level predicates: equality, range, and substring
// checks the store can evaluate without geo or time awareness. Geo and
// open-now filtering happen downstream, in memory.
type Filters struct {
	CategoryID string
	Price      PriceRange
	Verified   bool // when true, require verified
	Featured   bool // when true, require featured
	MinRating  float64
	City       string
	State      string
	Query      string // substring on name OR description
}

// Match reports whether b passes every store-level predicate.
// Inactive businesses never match.
func (f Filters) Match(b *Business) bool {
	if !b.Active {
		return false
	}
	if f.CategoryID != "" && b.CategoryID != f.CategoryID {
		return false
	}
	if f.Price != "" && b.PriceRange != f.Price {
		return false
	}
	if f.Verified && !b.Verified {
		return false
	}
	if f.Featured && !b.Featured {
		return false
	}
	if b.Rating < f.MinRating {
		return false
	}
	if f.City != "" && !containsFold(b.City, f.City) {
		return false
	}
	if f.State != "" && !containsFold(b.State, f.State) {
		return false
	}
	if f.Query != "" && !containsFold(b.Name, f.Query) && !containsFold(b.Description, f.Query) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
