// Package sortkey defines the supported result orderings.
package sortkey

// Key selects the ranking criterion for search results.
type Key string

// Supported sort keys.
const (
	Relevance   Key = "relevance"
	Rating      Key = "rating"
	Distance    Key = "distance"
	ReviewCount Key = "reviewCount"
	Name        Key = "name"
)

// IsValid reports whether k is a known sort key.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, Rating, Distance, ReviewCount, Name:
		return true
	}
	return false
}

// Parse maps a raw parameter to a sort key. Unknown values fall back to
// relevance rather than failing the request.
func Parse(s string) Key {
	k := Key(s)
	if !k.IsValid() {
		return Relevance
	}
	return k
}
