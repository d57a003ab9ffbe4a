// Package collector owns the control flow of destination resolution against a
// live carrier form: it walks the generated variants in order, drives the
// remote autocomplete through a FormDriver, and commits the first candidate
// that clears the confidence floor. Scoring itself stays in the resolver
// package; this package decides when to stop, retry, or give up.
package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/resolver"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
)

// EventRecorder receives warning- and failure-class resolution outcomes.
// Clean confident matches are not reported.
type EventRecorder interface {
	RecordResolutionEvent(event model.ResolutionEvent)
}

// Outcome describes how one destination resolution attempt ended.
type Outcome struct {
	Query    model.DestinationQuery `json:"query"`
	Selected bool                   `json:"selected"`
	Variant  string                 `json:"variant,omitempty"` // variant that produced the selection
	Attempts int                    `json:"attempts"`          // variants submitted
	Result   model.SelectionResult  `json:"result"`
}

// Service resolves operator-entered destinations against a carrier form.
type Service struct {
	resolver services.Resolver
	driver   services.FormDriver
	recorder EventRecorder
}

// NewService creates a collector. The recorder may be nil, in which case
// outcomes are only logged.
func NewService(res services.Resolver, driver services.FormDriver, recorder EventRecorder) (*Service, error) {
	if res == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}
	if driver == nil {
		return nil, fmt.Errorf("form driver cannot be nil")
	}
	return &Service{
		resolver: res,
		driver:   driver,
		recorder: recorder,
	}, nil
}

// ResolveDestination parses the operator input, tries each search variant in
// order against the form, and selects the first candidate that clears the
// confidence floor. A mismatched-country selection is committed best-effort
// and recorded for review. Exhausting every variant without a selection is
// not an error: it returns Selected=false and records the failure.
//
// The context is checked between driver calls only; a submitted variant is
// always scored.
func (s *Service) ResolveDestination(ctx context.Context, input string) (Outcome, error) {
	query, err := resolver.ParseDestination(input)
	if err != nil {
		s.record(model.ResolutionEvent{
			Type:        model.EventMalformedInput,
			Destination: input,
			Detail:      err.Error(),
		})
		return Outcome{}, err
	}

	variants := s.resolver.GenerateVariants(query)
	outcome := Outcome{Query: query}

	// Best rejected result across variants, kept for the failure event.
	var nearest string
	bestScore := 0
	sawCandidates := false

	for _, variant := range variants {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		candidates, err := s.driver.SubmitVariant(ctx, variant)
		if err != nil {
			return outcome, fmt.Errorf("submitting variant %q: %w", variant, err)
		}
		outcome.Attempts++

		if len(candidates) > 0 {
			sawCandidates = true
		}

		result := s.resolver.SelectBestCandidate(query, candidates)
		if !result.Resolved() {
			if result.Score >= bestScore && result.NearestText != "" {
				bestScore = result.Score
				nearest = result.NearestText
			}
			continue
		}

		if err := s.driver.Select(ctx, result.Chosen.RawText); err != nil {
			return outcome, fmt.Errorf("selecting option %q: %w", result.Chosen.RawText, err)
		}

		outcome.Selected = true
		outcome.Variant = variant
		outcome.Result = result

		if result.CountryMismatch {
			log.Printf("Warning: destination %q resolved to %q in a different country (score %d)",
				input, result.Chosen.RawText, result.Score)
			s.record(model.ResolutionEvent{
				Type:        model.EventCountryMismatch,
				Destination: input,
				Selected:    result.Chosen.RawText,
				Score:       result.Score,
			})
		}
		return outcome, nil
	}

	// Candidates that never cleared the floor are a different failure from a
	// destination the form produced nothing for at all.
	eventType := model.EventSelectionFailed
	if sawCandidates {
		eventType = model.EventBelowFloor
	}
	log.Printf("Warning: no candidate cleared the confidence floor for %q after %d variants", input, outcome.Attempts)
	s.record(model.ResolutionEvent{
		Type:        eventType,
		Destination: input,
		Detail:      nearest,
		Score:       bestScore,
	})
	return outcome, nil
}

func (s *Service) record(event model.ResolutionEvent) {
	if s.recorder == nil {
		return
	}
	event.Timestamp = time.Now()
	s.recorder.RecordResolutionEvent(event)
}
