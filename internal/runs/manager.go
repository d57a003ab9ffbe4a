// Package runs tracks background operations over carrier datasets: rate
// collection, reconciliation, and dataset lifecycle work that takes too long
// to hold an HTTP request open for.
package runs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// Manager handles background run execution and tracking
type Manager struct {
	mu       sync.RWMutex
	runs     map[string]*model.Run
	workers  chan struct{} // Limits concurrent runs
	stopChan chan struct{}
	wg       sync.WaitGroup
	metrics  *RunMetrics
}

// NewManager creates a new run manager with the specified worker count
func NewManager(maxWorkers int) *Manager {
	return &Manager{
		runs:     make(map[string]*model.Run),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewRunMetrics(),
	}
}

// Start begins the run manager and starts background cleanup
func (m *Manager) Start() {
	log.Printf("Run manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop gracefully shuts down the run manager, waiting for active runs
func (m *Manager) Stop() {
	close(m.stopChan)
	m.wg.Wait()
	log.Printf("Run manager stopped")
}

// CreateRun registers a new pending run and returns its ID
func (m *Manager) CreateRun(runType model.RunType, dataset string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	run := &model.Run{
		ID:        uuid.New().String(),
		Type:      runType,
		Status:    model.RunStatusPending,
		Dataset:   dataset,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.runs[run.ID] = run
	m.metrics.RecordRunCreated(runType)
	log.Printf("Created run %s (type: %s) for dataset '%s'", run.ID, run.Type, run.Dataset)
	return run.ID
}

// GetRun retrieves a run by ID
func (m *Manager) GetRun(runID string) (*model.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[runID]
	if !exists {
		return nil, errors.NewRunNotFoundError(runID)
	}
	return copyRun(run), nil
}

// ListRuns returns all runs for a specific dataset, optionally filtered by status
func (m *Manager) ListRuns(dataset string, status *model.RunStatus) []*model.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Run
	for _, run := range m.runs {
		if run.Dataset != dataset {
			continue
		}
		if status == nil || run.Status == *status {
			result = append(result, copyRun(run))
		}
	}
	return result
}

// copyRun returns a copy safe to hand to callers outside the lock.
func copyRun(run *model.Run) *model.Run {
	runCopy := *run
	if run.Progress != nil {
		progressCopy := *run.Progress
		runCopy.Progress = &progressCopy
	}
	return &runCopy
}

// Execute starts a pending run in a goroutine, bounded by the worker pool
func (m *Manager) Execute(runID string, runFunc func(ctx context.Context, run *model.Run) error) error {
	m.mu.Lock()
	run, exists := m.runs[runID]
	if !exists {
		m.mu.Unlock()
		return errors.NewRunNotFoundError(runID)
	}

	if run.Status != model.RunStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("run with ID '%s' is not in pending status (current: %s)", runID, run.Status)
	}

	oldStatus := run.Status
	run.Status = model.RunStatusRunning
	now := time.Now()
	run.StartedAt = &now
	m.metrics.RecordRunStatusChange(oldStatus, run.Status)
	m.mu.Unlock()

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-m.stopChan:
		m.updateRunStatus(runID, model.RunStatusCancelled, "Run manager shutting down")
		return fmt.Errorf("run manager is shutting down")
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.workers // Release worker slot
			m.wg.Done()
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		startTime := time.Now()
		err := runFunc(ctx, run)
		executionTime := time.Since(startTime)

		if err != nil {
			m.updateRunStatus(runID, model.RunStatusFailed, err.Error())
			m.metrics.RecordRunFailed(run.Type)
			log.Printf("Run %s failed after %v: %v", runID, executionTime, err)
		} else {
			m.updateRunStatus(runID, model.RunStatusCompleted, "")
			m.metrics.RecordRunCompleted(run.Type, executionTime)
			log.Printf("Run %s completed successfully in %v", runID, executionTime)
		}
	}()

	return nil
}

// UpdateProgress updates the progress of a running run
func (m *Manager) UpdateProgress(runID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return
	}

	if run.Progress == nil {
		run.Progress = &model.RunProgress{}
	}
	run.Progress.Current = current
	run.Progress.Total = total
	run.Progress.Message = message
}

func (m *Manager) updateRunStatus(runID string, status model.RunStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return
	}

	oldStatus := run.Status
	run.Status = status
	if errorMsg != "" {
		run.Error = errorMsg
	}

	if status == model.RunStatusCompleted || status == model.RunStatusFailed || status == model.RunStatusCancelled {
		now := time.Now()
		run.CompletedAt = &now
	}

	m.metrics.RecordRunStatusChange(oldStatus, status)
}

// cleanupRoutine periodically drops old completed runs
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldRuns(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldRuns removes completed runs older than the specified duration
func (m *Manager) CleanupOldRuns(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for runID, run := range m.runs {
		if run.CompletedAt != nil && run.CompletedAt.Before(cutoff) {
			delete(m.runs, runID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old runs", cleaned)
	}
}

// GetMetrics returns current run performance metrics
func (m *Manager) GetMetrics() RunMetricsData {
	return m.metrics.GetMetrics()
}

// GetSuccessRate returns the overall run success rate
func (m *Manager) GetSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of currently active runs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
