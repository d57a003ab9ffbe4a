package config

import (
	"strings"
	"testing"
)

func TestResolverSettings_ApplyDefaults(t *testing.T) {
	settings := ResolverSettings{}
	settings.ApplyDefaults()

	if settings.ExactMatchScore != 1000 {
		t.Errorf("Expected exact match score 1000, got %d", settings.ExactMatchScore)
	}
	if settings.FirstTokenMatchScore != 400 {
		t.Errorf("Expected first token match score 400, got %d", settings.FirstTokenMatchScore)
	}
	if settings.CountryBonus != 50 {
		t.Errorf("Expected country bonus 50, got %d", settings.CountryBonus)
	}
	if settings.ConfidenceFloor != settings.FirstTokenMatchScore {
		t.Errorf("Expected confidence floor to default to the first token score, got %d", settings.ConfidenceFloor)
	}
	if len(settings.Stopwords) == 0 {
		t.Error("Expected default stopwords to be populated")
	}
}

func TestResolverSettings_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	settings := ResolverSettings{
		ExactMatchScore: 2000,
		ConfidenceFloor: 500,
		Stopwords:       []string{"LE"},
	}
	settings.ApplyDefaults()

	if settings.ExactMatchScore != 2000 {
		t.Errorf("Expected explicit exact match score to survive, got %d", settings.ExactMatchScore)
	}
	if settings.ConfidenceFloor != 500 {
		t.Errorf("Expected explicit confidence floor to survive, got %d", settings.ConfidenceFloor)
	}
	if len(settings.Stopwords) != 1 {
		t.Errorf("Expected explicit stopwords to survive, got %v", settings.Stopwords)
	}
}

func TestResolverSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ResolverSettings)
		conflict string // substring expected in a conflict message, empty means valid
	}{
		{
			name:   "defaults are valid",
			mutate: func(s *ResolverSettings) {},
		},
		{
			name: "tier ladder out of order",
			mutate: func(s *ResolverSettings) {
				s.NormalizedMatchScore = 1500
			},
			conflict: "must be lower than",
		},
		{
			name: "country bonus as large as smallest tier gap",
			mutate: func(s *ResolverSettings) {
				s.CountryBonus = 100
			},
			conflict: "smaller than the smallest tier gap",
		},
		{
			name: "negative country bonus",
			mutate: func(s *ResolverSettings) {
				s.CountryBonus = -10
			},
			conflict: "cannot be negative",
		},
		{
			name: "confidence floor above exact match score",
			mutate: func(s *ResolverSettings) {
				s.ConfidenceFloor = 5000
			},
			conflict: "cannot exceed exact_match_score",
		},
		{
			name: "blank stopword",
			mutate: func(s *ResolverSettings) {
				s.Stopwords = append(s.Stopwords, "  ")
			},
			conflict: "Stopword cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := ResolverSettings{}
			settings.ApplyDefaults()
			tt.mutate(&settings)

			conflicts := settings.Validate()
			if tt.conflict == "" {
				if len(conflicts) != 0 {
					t.Errorf("Expected no conflicts, got %v", conflicts)
				}
				return
			}

			found := false
			for _, c := range conflicts {
				if strings.Contains(c, tt.conflict) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected a conflict containing %q, got %v", tt.conflict, conflicts)
			}
		})
	}
}

func TestServerSettings_ApplyDefaults(t *testing.T) {
	settings := ServerSettings{}
	settings.ApplyDefaults()

	if settings.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", settings.Port)
	}
	if settings.DataDir != "./rate_data" {
		t.Errorf("Expected default data dir ./rate_data, got %s", settings.DataDir)
	}
	if settings.MaxWorkers != 3 {
		t.Errorf("Expected default max workers 3, got %d", settings.MaxWorkers)
	}
	if settings.MaxEvents != 10000 {
		t.Errorf("Expected default max events 10000, got %d", settings.MaxEvents)
	}
}
