// Package resolver implements the destination resolution engine: it turns an
// operator-entered "CITY, COUNTRY" line into search variants for a remote
// autocomplete widget and picks the best option out of the imprecise
// candidate strings the widget returns.
//
// Everything in this package is a pure function of its arguments: no I/O,
// no clocks, no randomness. Identical inputs always produce identical
// results, and a single Service is safe for concurrent use.
package resolver

import (
	"fmt"
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/config"
)

// Service scores autocomplete candidates against destination queries.
// It fulfills the services.Resolver interface.
type Service struct {
	settings  *config.ResolverSettings
	stopwords map[string]struct{}
}

// NewService creates a new resolver Service.
func NewService(settings *config.ResolverSettings) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("resolver settings cannot be nil")
	}
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid resolver settings: %s", strings.Join(conflicts, "; "))
	}

	stopwords := make(map[string]struct{}, len(settings.Stopwords))
	for _, word := range settings.Stopwords {
		stopwords[strings.ToUpper(word)] = struct{}{}
	}

	return &Service{
		settings:  settings,
		stopwords: stopwords,
	}, nil
}

func (s *Service) isStopword(token string) bool {
	_, ok := s.stopwords[strings.ToUpper(token)]
	return ok
}
