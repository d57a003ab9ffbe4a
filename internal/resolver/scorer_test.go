package resolver

import (
	"testing"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

func TestSelectBestCandidate(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name         string
		query        model.DestinationQuery
		candidates   []string
		wantChosen   string // empty means no candidate cleared the floor
		wantScore    int
		wantMismatch bool
	}{
		{
			name:       "exact match beats same city elsewhere",
			query:      model.DestinationQuery{City: "PARIS", Country: "FRANCE"},
			candidates: []string{"PARIS, FRANCE", "PARIS, TX, USA"},
			wantChosen: "PARIS, FRANCE",
			wantScore:  1000,
		},
		{
			name:         "city match with foreign country spelling flags mismatch",
			query:        model.DestinationQuery{City: "NAPOLI", Country: "ITALY"},
			candidates:   []string{"NAPOLI, ITALIA"},
			wantChosen:   "NAPOLI, ITALIA",
			wantScore:    800,
			wantMismatch: true,
		},
		{
			name:       "region in query still matches exactly",
			query:      model.DestinationQuery{City: "MUENSTER", Region: "NW", Country: "GERMANY"},
			candidates: []string{"MUENSTER, NW, GERMANY", "MUNSTER, GERMANY", "MUENSTER, USA"},
			wantChosen: "MUENSTER, NW, GERMANY",
			wantScore:  1000,
		},
		{
			name:       "unrelated candidate stays below floor",
			query:      model.DestinationQuery{City: "ATHENS", Country: "GREECE"},
			candidates: []string{"LONDON, UK"},
			wantChosen: "",
			wantScore:  0,
		},
		{
			name:       "candidate region ignored when city and country agree",
			query:      model.DestinationQuery{City: "PARIS", Country: "FRANCE"},
			candidates: []string{"PARIS, ILE DE FRANCE, FRANCE"},
			wantChosen: "PARIS, ILE DE FRANCE, FRANCE",
			wantScore:  900,
		},
		{
			name:       "hyphenation differences collapse in city comparison",
			query:      model.DestinationQuery{City: "FOS-SUR-MER", Country: "FRANCE"},
			candidates: []string{"FOS SUR MER, FRANCE"},
			wantChosen: "FOS SUR MER, FRANCE",
			wantScore:  1000,
		},
		{
			name:       "candidate with extra city tokens",
			query:      model.DestinationQuery{City: "SPRINGFIELD", Country: "USA"},
			candidates: []string{"SPRINGFIELD GARDENS, USA"},
			wantChosen: "SPRINGFIELD GARDENS, USA",
			wantScore:  800,
		},
		{
			name:       "candidate city is a prefix of the target city",
			query:      model.DestinationQuery{City: "FOS SUR MER", Country: "FRANCE"},
			candidates: []string{"FOS, FRANCE"},
			wantChosen: "FOS, FRANCE",
			wantScore:  600,
		},
		{
			name:       "first token agreement sits exactly on the floor",
			query:      model.DestinationQuery{City: "FOS SUR MER", Country: "FRANCE"},
			candidates: []string{"FOS TOWN, FRANCE"},
			wantChosen: "FOS TOWN, FRANCE",
			wantScore:  400,
		},
		{
			name:         "candidate without a country never earns the bonus",
			query:        model.DestinationQuery{City: "PARIS", Country: "FRANCE"},
			candidates:   []string{"PARIS"},
			wantChosen:   "PARIS",
			wantScore:    800,
			wantMismatch: true,
		},
		{
			name:       "diacritics fold before comparison",
			query:      model.DestinationQuery{City: "SETE", Country: "FRANCE"},
			candidates: []string{"SÈTE, FRANCE"},
			wantChosen: "SÈTE, FRANCE",
			wantScore:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.SelectBestCandidate(tt.query, tt.candidates)

			if tt.wantChosen == "" {
				if result.Resolved() {
					t.Fatalf("expected no selection, got %q", result.Chosen.RawText)
				}
			} else {
				if !result.Resolved() {
					t.Fatalf("expected %q to be chosen, got no selection (score %d)", tt.wantChosen, result.Score)
				}
				if result.Chosen.RawText != tt.wantChosen {
					t.Errorf("chosen = %q, want %q", result.Chosen.RawText, tt.wantChosen)
				}
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.CountryMismatch != tt.wantMismatch {
				t.Errorf("countryMismatch = %v, want %v", result.CountryMismatch, tt.wantMismatch)
			}
		})
	}
}

func TestSelectBestCandidate_EmptyList(t *testing.T) {
	svc := newTestService(t)

	result := svc.SelectBestCandidate(model.DestinationQuery{City: "PARIS", Country: "FRANCE"}, nil)
	if result.Resolved() {
		t.Errorf("empty candidate list should not resolve, got %q", result.Chosen.RawText)
	}
	if result.Score != 0 || result.NearestText != "" {
		t.Errorf("empty candidate list should yield a zero result, got %+v", result)
	}
}

func TestSelectBestCandidate_FirstSeenWinsTies(t *testing.T) {
	svc := newTestService(t)

	// Both candidates land in the same tier with the same bonus.
	query := model.DestinationQuery{City: "PARIS", Country: "FRANCE"}
	candidates := []string{"PARIS, ILE DE FRANCE, FRANCE", "PARIS, NORD, FRANCE"}

	result := svc.SelectBestCandidate(query, candidates)
	if !result.Resolved() || result.Chosen.RawText != candidates[0] {
		t.Errorf("tie should keep the first-seen candidate, got %+v", result)
	}

	// Exact duplicates behave the same way.
	result = svc.SelectBestCandidate(query, []string{"PARIS, FRANCE", "PARIS, FRANCE"})
	if !result.Resolved() || result.Chosen.RawText != "PARIS, FRANCE" || result.Score != 1000 {
		t.Errorf("duplicate candidates should resolve to the first, got %+v", result)
	}
}

func TestSelectBestCandidate_CountryBonusBreaksTiesOnly(t *testing.T) {
	svc := newTestService(t)

	// Same tier, different countries: the bonus picks the matching country
	// but the reported score stays the tier value.
	query := model.DestinationQuery{City: "SPRINGFIELD", Country: "USA"}
	candidates := []string{"SPRINGFIELD GARDENS, CANADA", "SPRINGFIELD CITY, USA"}

	result := svc.SelectBestCandidate(query, candidates)
	if !result.Resolved() || result.Chosen.RawText != "SPRINGFIELD CITY, USA" {
		t.Fatalf("bonus should break the tie toward the matching country, got %+v", result)
	}
	if result.Score != 800 {
		t.Errorf("reported score = %d, want tier value 800", result.Score)
	}
	if result.CountryMismatch {
		t.Errorf("chosen candidate matches the target country, mismatch should be false")
	}

	// A matching country must never promote a candidate past a better tier.
	query = model.DestinationQuery{City: "FOS SUR MER", Country: "FRANCE"}
	candidates = []string{"FOS SUR MER TOWN, SPAIN", "FOS, FRANCE"}
	result = svc.SelectBestCandidate(query, candidates)
	if !result.Resolved() || result.Chosen.RawText != "FOS SUR MER TOWN, SPAIN" {
		t.Errorf("higher tier should beat lower tier plus bonus, got %+v", result)
	}
	if !result.CountryMismatch {
		t.Errorf("cross-country winner should be flagged as a mismatch")
	}
}

func TestSelectBestCandidate_BelowFloorReportsNearest(t *testing.T) {
	svc := newTestService(t)

	query := model.DestinationQuery{City: "ATHENS", Country: "GREECE"}
	candidates := []string{"LONDON, UK", "ATHINA, GREECE"}

	result := svc.SelectBestCandidate(query, candidates)
	if result.Resolved() {
		t.Fatalf("no candidate should clear the floor, got %q", result.Chosen.RawText)
	}
	if result.Score != 0 {
		t.Errorf("best tier score = %d, want 0", result.Score)
	}
	if result.NearestText != "ATHINA, GREECE" {
		t.Errorf("nearest text = %q, want the closest candidate by edit distance", result.NearestText)
	}
}

func TestScoreCandidates(t *testing.T) {
	svc := newTestService(t)

	query := model.DestinationQuery{City: "PARIS", Country: "FRANCE"}
	scored := svc.ScoreCandidates(query, []string{"PARIS, FRANCE", "PARIS, TX, USA", "LYON, FRANCE", "PARIS"})
	if len(scored) != 4 {
		t.Fatalf("expected 4 scored candidates, got %d", len(scored))
	}

	checks := []struct {
		score       int
		bonus       int
		parsedCity  string
		parsedCntry string
	}{
		{score: 1000, bonus: 50, parsedCity: "PARIS", parsedCntry: "FRANCE"},
		{score: 800, bonus: 0, parsedCity: "PARIS", parsedCntry: "USA"},
		{score: 0, bonus: 50, parsedCity: "LYON", parsedCntry: "FRANCE"},
		{score: 800, bonus: 0, parsedCity: "PARIS", parsedCntry: ""},
	}
	for i, want := range checks {
		got := scored[i]
		if got.Score != want.score || got.CountryBonus != want.bonus {
			t.Errorf("candidate %d (%q): score/bonus = %d/%d, want %d/%d",
				i, got.Candidate.RawText, got.Score, got.CountryBonus, want.score, want.bonus)
		}
		if got.ParsedCity != want.parsedCity || got.ParsedCountry != want.parsedCntry {
			t.Errorf("candidate %d (%q): parsed = %q/%q, want %q/%q",
				i, got.Candidate.RawText, got.ParsedCity, got.ParsedCountry, want.parsedCity, want.parsedCntry)
		}
		if got.RankingScore() != want.score+want.bonus {
			t.Errorf("candidate %d: ranking score = %d, want %d", i, got.RankingScore(), want.score+want.bonus)
		}
	}
}
