package resolver

import (
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// GenerateVariants produces the ordered list of search strings to type into
// the remote autocomplete for the given query, from most to least specific.
// The remote system often indexes only the primary settlement name, so
// hyphenated compound names get their first segment tried before the full
// literal; some widgets additionally need the city token repeated before
// they surface results. Output is exact-string deduplicated, case preserved.
func (s *Service) GenerateVariants(query model.DestinationQuery) []string {
	city := strings.TrimSpace(query.City)
	if city == "" {
		return []string{}
	}

	variants := make([]string, 0, 6)
	seen := make(map[string]struct{}, 6)
	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	hyphenated := strings.Contains(city, "-")
	spaced := strings.ReplaceAll(city, "-", " ")

	// 1. Text before the first hyphen ("FOS-SUR-MER" -> "FOS").
	if hyphenated {
		add(strings.TrimSpace(strings.SplitN(city, "-", 2)[0]))
	}

	// 2. The city unmodified.
	add(city)

	// 3. Hyphens replaced with spaces ("FOS-SUR-MER" -> "FOS SUR MER").
	if hyphenated {
		add(spaced)
	}

	// 4. City repeated as its own disambiguator.
	add(city + ", " + city)

	// 5. Hyphen-to-space form, repeated.
	if hyphenated {
		add(spaced + ", " + spaced)
	}

	// 6. Significant tokens only: stopwords dropped.
	significant := make([]string, 0, 3)
	for _, token := range strings.Fields(city) {
		if s.isStopword(token) {
			continue
		}
		significant = append(significant, token)
	}
	if len(significant) > 0 {
		add(strings.Join(significant, " "))
	}

	return variants
}
