package model

// DestinationQuery is the parsed form of an operator-entered destination line
// such as "MUENSTER, NW, GERMANY". City and Country are always non-empty;
// Region is empty when the input had only two segments.
type DestinationQuery struct {
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country"`
}

// HasRegion reports whether the query carried a region/state token.
func (q DestinationQuery) HasRegion() bool {
	return q.Region != ""
}

// Candidate is one option string as displayed by the remote autocomplete
// widget for a typed variant. It is a read-only view into external state.
type Candidate struct {
	RawText string `json:"raw_text"`
}

// ScoredCandidate pairs a candidate with its computed tier score and the
// city/country parsed out of its raw text. CountryBonus is kept separate
// from Score: it breaks ties between candidates in the same tier but never
// promotes a candidate across tiers, and reported scores stay tier-valued.
type ScoredCandidate struct {
	Candidate     Candidate `json:"candidate"`
	Score         int       `json:"score"`
	CountryBonus  int       `json:"country_bonus"`
	ParsedCity    string    `json:"parsed_city"`
	ParsedCountry string    `json:"parsed_country"`
}

// RankingScore is the combined value candidates are ranked by.
func (sc ScoredCandidate) RankingScore() int {
	return sc.Score + sc.CountryBonus
}

// SelectionResult is the outcome of scoring one candidate list against a
// query. Chosen is nil when no candidate cleared the confidence floor;
// Score still reports the best score seen, for diagnostics. CountryMismatch
// means a candidate was chosen best-effort but belongs to a different
// country than requested, and the caller must surface it for review.
type SelectionResult struct {
	Chosen          *Candidate `json:"chosen,omitempty"`
	Score           int        `json:"score"`
	CountryMismatch bool       `json:"country_mismatch"`
	// NearestText is set only when Chosen is nil and candidates existed:
	// the candidate closest to the target by edit distance, as a hint for
	// unresolved-destination reports.
	NearestText string `json:"nearest_text,omitempty"`
}

// Resolved reports whether a candidate cleared the confidence floor.
func (r SelectionResult) Resolved() bool {
	return r.Chosen != nil
}
