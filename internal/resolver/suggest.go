package resolver

import (
	"github.com/agext/levenshtein"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

var levParams = levenshtein.NewParams()

// nearestCandidate returns the candidate closest to the query by edit
// similarity. Used only for diagnostics when nothing clears the confidence
// floor, so unresolved-destination reports can show the nearest rejected
// option. Ties keep the first candidate.
func (s *Service) nearestCandidate(query model.DestinationQuery, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	target := normalizedQueryString(query)
	nearest := candidates[0]
	bestSim := levenshtein.Similarity(target, Normalize(candidates[0]), levParams)
	for _, raw := range candidates[1:] {
		sim := levenshtein.Similarity(target, Normalize(raw), levParams)
		if sim > bestSim {
			bestSim = sim
			nearest = raw
		}
	}
	return nearest
}
