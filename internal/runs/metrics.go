package runs

import (
	"sync"
	"time"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// RunMetricsData is a mutex-free snapshot of run metrics, safe for copying
type RunMetricsData struct {
	RunsCreated          int64                     `json:"runs_created"`
	RunsCompleted        int64                     `json:"runs_completed"`
	RunsFailed           int64                     `json:"runs_failed"`
	TotalExecutionTime   time.Duration             `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	RunsByType           map[model.RunType]int64   `json:"runs_by_type"`
	RunsByStatus         map[model.RunStatus]int64 `json:"runs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// RunMetrics tracks performance metrics for background runs
type RunMetrics struct {
	mu                   sync.RWMutex
	runsCreated          int64
	runsCompleted        int64
	runsFailed           int64
	totalExecutionTime   time.Duration
	runsByType           map[model.RunType]int64
	runsByStatus         map[model.RunStatus]int64
	executionTimesByType map[model.RunType][]time.Duration
	lastUpdated          time.Time
}

// NewRunMetrics creates a new metrics collector
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		runsByType:           make(map[model.RunType]int64),
		runsByStatus:         make(map[model.RunStatus]int64),
		executionTimesByType: make(map[model.RunType][]time.Duration),
		lastUpdated:          time.Now(),
	}
}

// RecordRunCreated increments run creation counters
func (m *RunMetrics) RecordRunCreated(runType model.RunType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runsCreated++
	m.runsByType[runType]++
	m.runsByStatus[model.RunStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordRunStatusChange updates the per-status counters
func (m *RunMetrics) RecordRunStatusChange(oldStatus, newStatus model.RunStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" {
		m.runsByStatus[oldStatus]--
		if m.runsByStatus[oldStatus] < 0 {
			m.runsByStatus[oldStatus] = 0
		}
	}
	m.runsByStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordRunCompleted records a successful run completion
func (m *RunMetrics) RecordRunCompleted(runType model.RunType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runsCompleted++
	m.totalExecutionTime += executionTime

	m.executionTimesByType[runType] = append(m.executionTimesByType[runType], executionTime)
	// Keep only the last 100 execution times per type to bound memory
	if len(m.executionTimesByType[runType]) > 100 {
		m.executionTimesByType[runType] = m.executionTimesByType[runType][1:]
	}

	m.lastUpdated = time.Now()
}

// RecordRunFailed records a run failure
func (m *RunMetrics) RecordRunFailed(runType model.RunType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runsFailed++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a snapshot of the current metrics
func (m *RunMetrics) GetMetrics() RunMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runsByType := make(map[model.RunType]int64, len(m.runsByType))
	for k, v := range m.runsByType {
		runsByType[k] = v
	}
	runsByStatus := make(map[model.RunStatus]int64, len(m.runsByStatus))
	for k, v := range m.runsByStatus {
		runsByStatus[k] = v
	}

	var avg time.Duration
	if m.runsCompleted > 0 {
		avg = m.totalExecutionTime / time.Duration(m.runsCompleted)
	}

	return RunMetricsData{
		RunsCreated:          m.runsCreated,
		RunsCompleted:        m.runsCompleted,
		RunsFailed:           m.runsFailed,
		TotalExecutionTime:   m.totalExecutionTime,
		AverageExecutionTime: avg,
		RunsByType:           runsByType,
		RunsByStatus:         runsByStatus,
		LastUpdated:          m.lastUpdated,
	}
}

// GetAverageExecutionTimeByType returns the average execution time for one run type
func (m *RunMetrics) GetAverageExecutionTimeByType(runType model.RunType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	times := m.executionTimesByType[runType]
	if len(times) == 0 {
		return 0
	}

	var total time.Duration
	for _, t := range times {
		total += t
	}
	return total / time.Duration(len(times))
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *RunMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totalFinished := m.runsCompleted + m.runsFailed
	if totalFinished == 0 {
		return 1.0 // No runs yet, assume 100% success
	}
	return float64(m.runsCompleted) / float64(totalFinished)
}

// GetCurrentWorkload returns the number of pending plus running runs
func (m *RunMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.runsByStatus[model.RunStatusPending] + m.runsByStatus[model.RunStatusRunning]
}
