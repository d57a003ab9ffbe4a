// Package reports aggregates resolution events into the summary served to
// operators: which destinations keep failing to resolve, which resolved into
// the wrong country, and which produced no rates.
package reports

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

const recentEventsLimit = 20

// Service records resolution events and produces summary reports.
// It implements the collector.EventRecorder interface.
type Service struct {
	mutex        sync.RWMutex
	events       []model.ResolutionEvent
	dataFilePath string
	maxEvents    int
}

// NewService creates a reports service backed by the given JSON file.
// Existing events are loaded so summaries survive restarts.
func NewService(dataFilePath string, maxEvents int) *Service {
	service := &Service{
		events:       make([]model.ResolutionEvent, 0),
		dataFilePath: dataFilePath,
		maxEvents:    maxEvents,
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load resolution events: %v", err)
	}

	return service
}

// RecordResolutionEvent appends one event, trims the retained window, and
// persists asynchronously.
func (s *Service) RecordResolutionEvent(event model.ResolutionEvent) {
	s.mutex.Lock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if s.maxEvents > 0 && len(s.events) > s.maxEvents {
		s.events = s.events[len(s.events)-s.maxEvents:]
	}
	s.mutex.Unlock()

	go func() {
		if err := s.Flush(); err != nil {
			log.Printf("Warning: Failed to save resolution events: %v", err)
		}
	}()
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetSummary builds the resolution summary report from the retained events.
func (s *Service) GetSummary() model.ResolutionSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.ResolutionSummary{
		TotalEvents: len(s.events),
		GeneratedAt: time.Now(),
	}

	// Counts by event type, largest first.
	typeCounts := make(map[model.ResolutionEventType]int)
	for _, event := range s.events {
		typeCounts[event.Type]++
	}
	for eventType, count := range typeCounts {
		summary.CountsByType = append(summary.CountsByType, model.EventTypeCount{Type: eventType, Count: count})
	}
	sort.Slice(summary.CountsByType, func(i, j int) bool {
		if summary.CountsByType[i].Count != summary.CountsByType[j].Count {
			return summary.CountsByType[i].Count > summary.CountsByType[j].Count
		}
		return summary.CountsByType[i].Type < summary.CountsByType[j].Type
	})

	// Per-destination rollup: latest event wins, occurrences counted.
	byDestination := make(map[string]*model.DestinationStatus)
	for _, event := range s.events {
		status, ok := byDestination[event.Destination]
		if !ok {
			status = &model.DestinationStatus{Destination: event.Destination}
			byDestination[event.Destination] = status
		}
		status.Occurrences++
		if !event.Timestamp.Before(status.LastSeen) {
			status.LastSeen = event.Timestamp
			status.LastEvent = event.Type
		}
	}
	for _, status := range byDestination {
		summary.Destinations = append(summary.Destinations, *status)
	}
	sort.Slice(summary.Destinations, func(i, j int) bool {
		if summary.Destinations[i].Occurrences != summary.Destinations[j].Occurrences {
			return summary.Destinations[i].Occurrences > summary.Destinations[j].Occurrences
		}
		return summary.Destinations[i].Destination < summary.Destinations[j].Destination
	})

	// Most recent events, newest first.
	start := len(s.events) - recentEventsLimit
	if start < 0 {
		start = 0
	}
	for i := len(s.events) - 1; i >= start; i-- {
		summary.RecentEvents = append(summary.RecentEvents, s.events[i])
	}

	return summary
}

// Flush writes the retained events to disk synchronously.
func (s *Service) Flush() error {
	s.mutex.RLock()
	data, err := json.MarshalIndent(s.events, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal resolution events: %w", err)
	}

	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write resolution events file: %w", err)
	}
	return nil
}

// loadData loads previously persisted events from file.
func (s *Service) loadData() error {
	if _, err := os.Stat(s.dataFilePath); os.IsNotExist(err) {
		return nil // Nothing persisted yet
	}

	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		return fmt.Errorf("failed to read resolution events file: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := json.Unmarshal(data, &s.events); err != nil {
		return fmt.Errorf("failed to unmarshal resolution events: %w", err)
	}
	if s.maxEvents > 0 && len(s.events) > s.maxEvents {
		s.events = s.events[len(s.events)-s.maxEvents:]
	}
	return nil
}
