package search

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/localhive/placedex/internal/domain/search/result"
	"github.com/localhive/placedex/internal/domain/search/sortkey"
)

// Rank orders results by the requested key and returns a new slice; the
// input is never mutated. Sorting is stable: ties keep their input order, no
// secondary key is invented. The relevance key falls back to rating when the
// request carried no text query.
func Rank(results []result.Scored, key sortkey.Key, hasQuery bool) []result.Scored {
	out := make([]result.Scored, len(results))
	copy(out, results)

	switch key {
	case sortkey.Rating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Business.Rating > out[j].Business.Rating
		})
	case sortkey.Distance:
		sort.SliceStable(out, func(i, j int) bool {
			return distanceOf(&out[i]) < distanceOf(&out[j])
		})
	case sortkey.ReviewCount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Business.ReviewCount > out[j].Business.ReviewCount
		})
	case sortkey.Name:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Business.Name, out[j].Business.Name) < 0
		})
	default: // sortkey.Relevance
		if hasQuery {
			sort.SliceStable(out, func(i, j int) bool {
				return scoreOf(&out[i]) > scoreOf(&out[j])
			})
		} else {
			sort.SliceStable(out, func(i, j int) bool {
				return out[i].Business.Rating > out[j].Business.Rating
			})
		}
	}

	return out
}

// distanceOf treats a missing distance as infinitely far. The normalizer
// rejects sortBy=distance without an origin, so this only guards mixed data.
func distanceOf(r *result.Scored) float64 {
	if r.Distance == nil {
		return math.Inf(1)
	}
	return *r.Distance
}

func scoreOf(r *result.Scored) float64 {
	if r.RelevanceScore == nil {
		return 0
	}
	return *r.RelevanceScore
}
