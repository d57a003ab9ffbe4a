package model

import "time"

// ResolutionEventType classifies a warning- or failure-class outcome of a
// destination resolution attempt.
type ResolutionEventType string

const (
	EventCountryMismatch ResolutionEventType = "country_mismatch"
	EventBelowFloor      ResolutionEventType = "below_floor"
	EventNoRates         ResolutionEventType = "no_rates"
	EventMalformedInput  ResolutionEventType = "malformed_input"
	EventSelectionFailed ResolutionEventType = "selection_failed"
)

// ResolutionEvent records one noteworthy resolution outcome for the summary
// report. Successful clean matches are not recorded.
type ResolutionEvent struct {
	Type        ResolutionEventType `json:"type"`
	Destination string              `json:"destination"` // original operator input
	Selected    string              `json:"selected,omitempty"`
	Detail      string              `json:"detail,omitempty"`
	Score       int                 `json:"score,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
}

// EventTypeCount aggregates events of one type.
type EventTypeCount struct {
	Type  ResolutionEventType `json:"type"`
	Count int                 `json:"count"`
}

// DestinationStatus summarizes the latest recorded outcome for a destination.
type DestinationStatus struct {
	Destination string              `json:"destination"`
	LastEvent   ResolutionEventType `json:"last_event"`
	LastSeen    time.Time           `json:"last_seen"`
	Occurrences int                 `json:"occurrences"`
}

// ResolutionSummary is the report served to the dashboard: counts by event
// type plus the most recent events and per-destination rollups.
type ResolutionSummary struct {
	TotalEvents  int                 `json:"total_events"`
	CountsByType []EventTypeCount    `json:"counts_by_type"`
	Destinations []DestinationStatus `json:"destinations"`
	RecentEvents []ResolutionEvent   `json:"recent_events"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
