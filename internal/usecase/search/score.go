package search

import (
	"strings"

	"github.com/localhive/placedex/internal/domain/business"
)

// Relevance weights. Text-match strength dominates; quality signals
// (rating, reviews, verified, featured) are additive so a candidate with no
// text match still accrues points.
const (
	scoreNameExact    = 100.0
	scoreNamePrefix   = 50.0
	scoreNameContains = 25.0
	scoreDescContains = 10.0
	scoreRatingWeight = 5.0
	scoreReviewCap    = 20.0
	scoreVerified     = 15.0
	scoreFeatured     = 10.0
)

// Score computes the deterministic relevance score of b for query.
// The sum is not normalized.
func Score(b *business.Business, query string) float64 {
	q := strings.ToLower(query)
	name := strings.ToLower(b.Name)
	desc := strings.ToLower(b.Description)

	var score float64
	switch {
	case name == q:
		score += scoreNameExact
	case strings.HasPrefix(name, q):
		score += scoreNamePrefix
	case strings.Contains(name, q):
		score += scoreNameContains
	}
	if strings.Contains(desc, q) {
		score += scoreDescContains
	}

	score += b.Rating * scoreRatingWeight
	score += min(float64(b.ReviewCount), scoreReviewCap)
	if b.Verified {
		score += scoreVerified
	}
	if b.Featured {
		score += scoreFeatured
	}
	return score
}
