// Package config provides configuration structures for the rate collector.
// It defines resolver scoring settings, dataset defaults, and server options.
package config

import (
	"fmt"
	"strings"
)

// ResolverSettings holds the scoring constants for the destination
// resolution engine. The tier scores form a strict priority ladder: the
// first rule that applies wins, and the country bonus may only break ties
// within a tier, never promote a candidate across tiers.
//
// The defaults were tuned empirically against one specific carrier site
// and are deliberately operator-tunable rather than hard invariants.
type ResolverSettings struct {
	ExactMatchScore      int      `json:"exact_match_score" mapstructure:"exact_match_score"`           // full normalized string equality
	NormalizedMatchScore int      `json:"normalized_match_score" mapstructure:"normalized_match_score"` // city+country equality ignoring region and hyphens
	AllTokensMatchScore  int      `json:"all_tokens_match_score" mapstructure:"all_tokens_match_score"` // every target city token present in candidate city
	SubstringMatchScore  int      `json:"substring_match_score" mapstructure:"substring_match_score"`   // city substring either direction
	FirstTokenMatchScore int      `json:"first_token_match_score" mapstructure:"first_token_match_score"`
	CountryBonus         int      `json:"country_bonus" mapstructure:"country_bonus"`
	ConfidenceFloor      int      `json:"confidence_floor" mapstructure:"confidence_floor"` // winning scores below this yield no selection
	Stopwords            []string `json:"stopwords" mapstructure:"stopwords"`               // tokens dropped by the significant-tokens variant
}

// defaultStopwords are articles, prepositions, and saint-prefixes that carry
// no signal when searched on their own.
var defaultStopwords = []string{
	"LE", "LA", "DE", "DI", "DA", "DEL", "DES", "DU", "DO", "DOS", "DAS",
	"IM", "AM", "VAN", "VON", "EL", "AL", "THE", "OF",
	"ST", "STE", "SAINT", "SAN", "SANTA",
}

// ApplyDefaults applies default values to the resolver settings.
func (s *ResolverSettings) ApplyDefaults() {
	if s.ExactMatchScore == 0 {
		s.ExactMatchScore = 1000
	}
	if s.NormalizedMatchScore == 0 {
		s.NormalizedMatchScore = 900
	}
	if s.AllTokensMatchScore == 0 {
		s.AllTokensMatchScore = 800
	}
	if s.SubstringMatchScore == 0 {
		s.SubstringMatchScore = 600
	}
	if s.FirstTokenMatchScore == 0 {
		s.FirstTokenMatchScore = 400
	}
	if s.CountryBonus == 0 {
		s.CountryBonus = 50
	}
	if s.ConfidenceFloor == 0 {
		s.ConfidenceFloor = s.FirstTokenMatchScore
	}
	if s.Stopwords == nil {
		s.Stopwords = make([]string, len(defaultStopwords))
		copy(s.Stopwords, defaultStopwords)
	}
}

// Validate checks the internal consistency of the scoring ladder and
// returns human-readable conflict messages.
func (s *ResolverSettings) Validate() []string {
	var conflicts []string

	tiers := []struct {
		name  string
		score int
	}{
		{"exact_match_score", s.ExactMatchScore},
		{"normalized_match_score", s.NormalizedMatchScore},
		{"all_tokens_match_score", s.AllTokensMatchScore},
		{"substring_match_score", s.SubstringMatchScore},
		{"first_token_match_score", s.FirstTokenMatchScore},
	}

	minGap := 0
	for i := 1; i < len(tiers); i++ {
		if tiers[i].score >= tiers[i-1].score {
			conflicts = append(conflicts, fmt.Sprintf("%s (%d) must be lower than %s (%d)",
				tiers[i].name, tiers[i].score, tiers[i-1].name, tiers[i-1].score))
			continue
		}
		gap := tiers[i-1].score - tiers[i].score
		if minGap == 0 || gap < minGap {
			minGap = gap
		}
	}

	if s.CountryBonus < 0 {
		conflicts = append(conflicts, "country_bonus cannot be negative")
	}
	// The bonus acts as a tie-breaker only; a bonus as large as the
	// smallest tier gap would let a country-only match outrank a better
	// city match.
	if minGap > 0 && s.CountryBonus >= minGap {
		conflicts = append(conflicts, fmt.Sprintf("country_bonus (%d) must be smaller than the smallest tier gap (%d)",
			s.CountryBonus, minGap))
	}

	if s.ConfidenceFloor < 0 {
		conflicts = append(conflicts, "confidence_floor cannot be negative")
	}
	if s.ConfidenceFloor > s.ExactMatchScore {
		conflicts = append(conflicts, "confidence_floor cannot exceed exact_match_score")
	}

	for _, word := range s.Stopwords {
		if strings.TrimSpace(word) == "" {
			conflicts = append(conflicts, "Stopword cannot be empty or whitespace-only")
		}
	}

	return conflicts
}

// ServerSettings holds process-level options for the rate collector binary.
type ServerSettings struct {
	Port       string `json:"port" mapstructure:"port"`
	DataDir    string `json:"data_dir" mapstructure:"data_dir"`
	EventsFile string `json:"events_file" mapstructure:"events_file"` // resolution event log location
	MaxWorkers int    `json:"max_workers" mapstructure:"max_workers"` // concurrent background runs
	MaxEvents  int    `json:"max_events" mapstructure:"max_events"`   // retained resolution events
}

// ApplyDefaults applies default values to the server settings.
func (s *ServerSettings) ApplyDefaults() {
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.DataDir == "" {
		s.DataDir = "./rate_data"
	}
	if s.EventsFile == "" {
		s.EventsFile = "rate_data/resolution_events.json"
	}
	if s.MaxWorkers == 0 {
		s.MaxWorkers = 3
	}
	if s.MaxEvents == 0 {
		s.MaxEvents = 10000
	}
}

// Settings bundles all configuration for the rate collector.
type Settings struct {
	Server   ServerSettings   `json:"server" mapstructure:"server"`
	Resolver ResolverSettings `json:"resolver" mapstructure:"resolver"`
}

// ApplyDefaults applies defaults to every section.
func (s *Settings) ApplyDefaults() {
	s.Server.ApplyDefaults()
	s.Resolver.ApplyDefaults()
}
