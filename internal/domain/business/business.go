// Package business holds the searchable local-business read model.
package business

import "fmt"

// PriceRange classifies a business into a cost tier.
type PriceRange string

// Price tiers.
const (
	PriceBudget    PriceRange = "budget"
	PriceModerate  PriceRange = "moderate"
	PriceExpensive PriceRange = "expensive"
)

// IsValid reports whether p is a known price tier.
func (p PriceRange) IsValid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceExpensive:
		return true
	}
	return false
}

// Business is a read-only snapshot of a business record.
// Only active businesses are searchable.
type Business struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description,omitempty"`
	CategoryID  string       `json:"category_id,omitempty"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
	PriceRange  PriceRange   `json:"price_range,omitempty"`
	Verified    bool         `json:"verified"`
	Featured    bool         `json:"featured"`
	Active      bool         `json:"active"`
	ViewCount   int64        `json:"view_count"`
	Hours       *WeeklyHours `json:"hours,omitempty"`

	// Derived counts materialized by the upstream persistence layer.
	ServiceCount  int `json:"service_count"`
	FavoriteCount int `json:"favorite_count"`
}

// Validate checks the record invariants before it enters the store.
func (b *Business) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("id is required")
	}
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if b.Rating < 0 || b.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %g", b.Rating)
	}
	if b.ReviewCount < 0 {
		return fmt.Errorf("review_count must not be negative")
	}
	if b.ViewCount < 0 {
		return fmt.Errorf("view_count must not be negative")
	}
	if b.PriceRange != "" && !b.PriceRange.IsValid() {
		return fmt.Errorf("unknown price_range %q", b.PriceRange)
	}
	if b.Latitude < -90 || b.Latitude > 90 || b.Longitude < -180 || b.Longitude > 180 {
		return fmt.Errorf("coordinates out of range: %g, %g", b.Latitude, b.Longitude)
	}
	return nil
}
