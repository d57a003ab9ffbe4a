// Package testing provides shared helpers for tests that drive the dataset
// engine and its background runs.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/engine"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
)

// CreateTestEngine creates an engine over a temporary data directory and
// registers its shutdown with the test cleanup.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir(), 2)
	t.Cleanup(eng.Stop)
	return eng
}

// SampleOceanRates returns a small ocean rate table for seeding datasets.
func SampleOceanRates() []model.OceanRate {
	return []model.OceanRate{
		{POD: "HAMBURG", Rate20: 1200, Rate40: 2000},
		{POD: "ROTTERDAM", Rate20: 1100, Rate40: 1900},
	}
}

// SampleRateRows returns collected inland rows matching SampleOceanRates.
func SampleRateRows() []model.RateRow {
	return []model.RateRow{
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", TransportMode: "RAIL", ContainerType: "40HC", InlandRate: 800},
		{Destination: "MUNICH, GERMANY", POD: "ROTTERDAM", TransportMode: "TRUCK", ContainerType: "40HC", InlandRate: 850},
	}
}

// SeedDataset creates a dataset and loads the sample ocean rates and rate
// rows into it.
func SeedDataset(t *testing.T, eng *engine.Engine, name string) services.DatasetAccessor {
	t.Helper()

	require.NoError(t, eng.CreateDataset(name), "Failed to create test dataset")
	dataset, err := eng.GetDataset(name)
	require.NoError(t, err, "Failed to get test dataset")

	require.NoError(t, dataset.IngestOceanRates(SampleOceanRates()), "Failed to seed ocean rates")
	require.NoError(t, dataset.IngestRates(SampleRateRows()), "Failed to seed rate rows")
	return dataset
}

// RunPollingOptions configures run polling behavior
type RunPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultRunPollingOptions returns sensible defaults for run polling
func DefaultRunPollingOptions() RunPollingOptions {
	return RunPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

// WaitForRunCompletion polls a run until it completes or times out.
func WaitForRunCompletion(t *testing.T, runManager services.RunManager, runID string, opts RunPollingOptions) *model.Run {
	t.Helper()

	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Run %s did not complete within %v timeout", runID, opts.Timeout)
		case <-ticker.C:
			run, err := runManager.GetRun(runID)
			require.NoError(t, err, "Failed to get run status")

			switch run.Status {
			case model.RunStatusCompleted:
				return run
			case model.RunStatusFailed:
				t.Fatalf("Run %s failed: %s", runID, run.Error)
			}
		}
	}
}

// AssertRunCompleted verifies that a run completed successfully
func AssertRunCompleted(t *testing.T, run *model.Run, expectedType model.RunType, expectedDataset string) {
	t.Helper()

	assert.Equal(t, model.RunStatusCompleted, run.Status, "Run should be completed")
	assert.Equal(t, expectedType, run.Type, "Run type should match")
	assert.Equal(t, expectedDataset, run.Dataset, "Run dataset should match")
	assert.NotNil(t, run.CompletedAt, "Run should have completion timestamp")
	assert.Empty(t, run.Error, "Run should not have error")
}
