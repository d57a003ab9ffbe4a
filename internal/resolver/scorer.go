package resolver

import (
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// SelectBestCandidate scores every candidate string against the query and
// returns the best one, or a nil Chosen when the best score stays below the
// confidence floor. An empty candidate list is not an error: it yields a
// zero result that tells the caller to try the next variant.
//
// The base score is a strict priority ladder, not a weighted sum: the first
// rule that applies wins. The country bonus is tracked separately and only
// breaks ties between candidates that landed in the same tier.
func (s *Service) SelectBestCandidate(query model.DestinationQuery, candidates []string) model.SelectionResult {
	if len(candidates) == 0 {
		return model.SelectionResult{}
	}

	scored := s.ScoreCandidates(query, candidates)

	bestIdx := 0
	for i := 1; i < len(scored); i++ {
		// Strict comparison keeps the first-seen candidate on ties.
		if scored[i].RankingScore() > scored[bestIdx].RankingScore() {
			bestIdx = i
		}
	}

	best := scored[bestIdx]
	targetCountry := Normalize(query.Country)

	if best.Score < s.settings.ConfidenceFloor {
		return model.SelectionResult{
			Score:       best.Score,
			NearestText: s.nearestCandidate(query, candidates),
		}
	}

	chosen := best.Candidate
	return model.SelectionResult{
		Chosen:          &chosen,
		Score:           best.Score,
		CountryMismatch: best.ParsedCountry != targetCountry,
	}
}

// ScoreCandidates scores each candidate independently against the query.
// Duplicate candidate strings are scored independently; selection ties are
// broken by input order elsewhere.
func (s *Service) ScoreCandidates(query model.DestinationQuery, candidates []string) []model.ScoredCandidate {
	targetFull := normalizedQueryString(query)
	targetCity := Normalize(query.City)
	targetCountry := Normalize(query.Country)
	targetCityTokens := strings.Fields(targetCity)

	scored := make([]model.ScoredCandidate, 0, len(candidates))
	for _, raw := range candidates {
		scored = append(scored, s.scoreCandidate(raw, targetFull, targetCity, targetCountry, targetCityTokens))
	}
	return scored
}

// scoreCandidate applies the tier ladder to a single candidate.
func (s *Service) scoreCandidate(raw, targetFull, targetCity, targetCountry string, targetCityTokens []string) model.ScoredCandidate {
	segments := normalizeSegments(raw)
	candFull := joinSegments(segments)

	candCity := segments[0]
	candCountry := ""
	hasCountry := len(segments) >= 2
	if hasCountry {
		candCountry = segments[len(segments)-1]
	} else {
		// No comma: the whole normalized string stands in for the city in
		// the similarity tiers. It can never earn the country bonus.
		candCity = candFull
	}

	score := 0
	switch {
	case candFull == targetFull:
		score = s.settings.ExactMatchScore
	case hasCountry && collapseSpaces(candCity) == collapseSpaces(targetCity) && candCountry == targetCountry:
		// Region tokens dropped from both sides, hyphenation differences
		// already collapsed: "MUENSTER, NW, GERMANY" vs "MUENSTER, GERMANY".
		score = s.settings.NormalizedMatchScore
	case containsAllTokens(candCity, targetCityTokens):
		score = s.settings.AllTokensMatchScore
	case candCity != "" && (strings.Contains(candCity, targetCity) || strings.Contains(targetCity, candCity)):
		score = s.settings.SubstringMatchScore
	case firstToken(candCity) != "" && firstToken(candCity) == firstToken(targetCity):
		score = s.settings.FirstTokenMatchScore
	}

	bonus := 0
	if hasCountry && candCountry == targetCountry {
		bonus = s.settings.CountryBonus
	}

	return model.ScoredCandidate{
		Candidate:     model.Candidate{RawText: raw},
		Score:         score,
		CountryBonus:  bonus,
		ParsedCity:    candCity,
		ParsedCountry: candCountry,
	}
}

// normalizedQueryString rebuilds the canonical normalized form of the full
// query line, region included, for the exact-match tier.
func normalizedQueryString(query model.DestinationQuery) string {
	segments := []string{Normalize(query.City)}
	if query.Region != "" {
		for _, part := range strings.Split(query.Region, ",") {
			segments = append(segments, Normalize(part))
		}
	}
	segments = append(segments, Normalize(query.Country))
	return joinSegments(segments)
}

// containsAllTokens reports whether every target token appears among the
// candidate's whitespace tokens, in any order. The candidate may carry
// extra tokens.
func containsAllTokens(candidate string, targetTokens []string) bool {
	if len(targetTokens) == 0 {
		return false
	}
	candTokens := make(map[string]struct{})
	for _, token := range strings.Fields(candidate) {
		candTokens[token] = struct{}{}
	}
	for _, token := range targetTokens {
		if _, ok := candTokens[token]; !ok {
			return false
		}
	}
	return true
}

// collapseSpaces removes spaces entirely so hyphenation differences that
// normalization turned into spaces compare equal ("FOS SUR MER" vs
// "FOSSURMER").
func collapseSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
