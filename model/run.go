package model

import (
	"time"
)

// RunStatus represents the status of a long-running collection run
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusRunning    RunStatus = "running"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelling RunStatus = "cancelling"
	RunStatusCancelled  RunStatus = "cancelled"
)

// RunType represents the type of run being executed
type RunType string

const (
	RunTypeCollectRates   RunType = "collect_rates"
	RunTypeProcessRates   RunType = "process_rates"
	RunTypeResolveBatch   RunType = "resolve_batch"
	RunTypeCreateDataset  RunType = "create_dataset"
	RunTypeDeleteDataset  RunType = "delete_dataset"
	RunTypeIngestRates    RunType = "ingest_rates"
	RunTypeDeleteAllRates RunType = "delete_all_rates"
)

// Run represents a long-running background operation over one carrier dataset
type Run struct {
	ID          string            `json:"id"`
	Type        RunType           `json:"type"`
	Status      RunStatus         `json:"status"`
	Dataset     string            `json:"dataset"`
	Progress    *RunProgress      `json:"progress,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// RunProgress tracks the progress of a run
type RunProgress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (rp *RunProgress) GetProgressPercentage() float64 {
	if rp.Total == 0 {
		return 0
	}
	return float64(rp.Current) / float64(rp.Total) * 100
}
