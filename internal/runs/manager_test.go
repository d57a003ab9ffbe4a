package runs

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

func TestRunManager_CreateRun(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	runID := manager.CreateRun(model.RunTypeCollectRates, "hapag", map[string]string{
		"operation": "test",
	})

	if runID == "" {
		t.Error("Expected non-empty run ID")
	}

	run, err := manager.GetRun(runID)
	if err != nil {
		t.Fatalf("Failed to get created run: %v", err)
	}

	if run.Type != model.RunTypeCollectRates {
		t.Errorf("Expected run type %s, got %s", model.RunTypeCollectRates, run.Type)
	}

	if run.Status != model.RunStatusPending {
		t.Errorf("Expected run status %s, got %s", model.RunStatusPending, run.Status)
	}

	if run.Dataset != "hapag" {
		t.Errorf("Expected dataset 'hapag', got %s", run.Dataset)
	}
}

func TestRunManager_GetRun_NotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetRun("no-such-run")
	if err == nil {
		t.Fatal("Expected error for unknown run ID")
	}
	if !stderrors.Is(err, errors.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunManager_Execute(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	runID := manager.CreateRun(model.RunTypeProcessRates, "hapag", nil)

	err := manager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		manager.UpdateProgress(runID, 50, 100, "Halfway done")
		time.Sleep(10 * time.Millisecond) // Simulate work
		manager.UpdateProgress(runID, 100, 100, "Completed")
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to execute run: %v", err)
	}

	waitForTerminalStatus(t, manager, runID)

	run, err := manager.GetRun(runID)
	if err != nil {
		t.Fatalf("Failed to get run after execution: %v", err)
	}

	if run.Status != model.RunStatusCompleted {
		t.Errorf("Expected run status %s, got %s", model.RunStatusCompleted, run.Status)
	}

	if run.Progress == nil {
		t.Error("Expected run progress to be set")
	} else {
		if run.Progress.Current != 100 {
			t.Errorf("Expected progress current 100, got %d", run.Progress.Current)
		}
		if run.Progress.Total != 100 {
			t.Errorf("Expected progress total 100, got %d", run.Progress.Total)
		}
	}

	if run.CompletedAt == nil {
		t.Error("Expected completion timestamp to be set")
	}
}

func TestRunManager_ExecuteFailure(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	runID := manager.CreateRun(model.RunTypeCollectRates, "one", nil)

	err := manager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		return stderrors.New("carrier session expired")
	})
	if err != nil {
		t.Fatalf("Failed to execute run: %v", err)
	}

	waitForTerminalStatus(t, manager, runID)

	run, err := manager.GetRun(runID)
	if err != nil {
		t.Fatalf("Failed to get run after execution: %v", err)
	}
	if run.Status != model.RunStatusFailed {
		t.Errorf("Expected run status %s, got %s", model.RunStatusFailed, run.Status)
	}
	if run.Error != "carrier session expired" {
		t.Errorf("Expected run error to carry the failure message, got %q", run.Error)
	}
}

func TestRunManager_ExecuteRejectsNonPending(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	runID := manager.CreateRun(model.RunTypeIngestRates, "hapag", nil)

	noop := func(ctx context.Context, run *model.Run) error { return nil }
	if err := manager.Execute(runID, noop); err != nil {
		t.Fatalf("First execute failed: %v", err)
	}
	if err := manager.Execute(runID, noop); err == nil {
		t.Error("Expected second execute of the same run to fail")
	}
}

func TestRunManager_ListRuns(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	manager.CreateRun(model.RunTypeCollectRates, "hapag", nil)
	manager.CreateRun(model.RunTypeProcessRates, "hapag", nil)
	manager.CreateRun(model.RunTypeCollectRates, "one", nil)

	hapagRuns := manager.ListRuns("hapag", nil)
	if len(hapagRuns) != 2 {
		t.Errorf("Expected 2 runs for dataset 'hapag', got %d", len(hapagRuns))
	}

	pending := model.RunStatusPending
	if got := len(manager.ListRuns("one", &pending)); got != 1 {
		t.Errorf("Expected 1 pending run for dataset 'one', got %d", got)
	}

	completed := model.RunStatusCompleted
	if got := len(manager.ListRuns("one", &completed)); got != 0 {
		t.Errorf("Expected 0 completed runs for dataset 'one', got %d", got)
	}
}

func TestRunManager_Metrics(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	okID := manager.CreateRun(model.RunTypeCollectRates, "hapag", nil)
	failID := manager.CreateRun(model.RunTypeCollectRates, "hapag", nil)

	if err := manager.Execute(okID, func(ctx context.Context, run *model.Run) error { return nil }); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := manager.Execute(failID, func(ctx context.Context, run *model.Run) error {
		return stderrors.New("boom")
	}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	waitForTerminalStatus(t, manager, okID)
	waitForTerminalStatus(t, manager, failID)

	metrics := manager.GetMetrics()
	if metrics.RunsCreated != 2 {
		t.Errorf("Expected 2 runs created, got %d", metrics.RunsCreated)
	}
	if metrics.RunsCompleted != 1 {
		t.Errorf("Expected 1 run completed, got %d", metrics.RunsCompleted)
	}
	if metrics.RunsFailed != 1 {
		t.Errorf("Expected 1 run failed, got %d", metrics.RunsFailed)
	}

	if rate := manager.GetSuccessRate(); rate != 0.5 {
		t.Errorf("Expected success rate 0.5, got %f", rate)
	}
}

func TestRunManager_CleanupOldRuns(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	runID := manager.CreateRun(model.RunTypeDeleteDataset, "hapag", nil)
	if err := manager.Execute(runID, func(ctx context.Context, run *model.Run) error { return nil }); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	waitForTerminalStatus(t, manager, runID)

	manager.CleanupOldRuns(0)

	if _, err := manager.GetRun(runID); err == nil {
		t.Error("Expected completed run to be cleaned up")
	}
}

// waitForTerminalStatus polls until the run leaves the running/pending states.
func waitForTerminalStatus(t *testing.T, manager *Manager, runID string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("Run %s did not finish in time", runID)
		case <-time.After(5 * time.Millisecond):
			run, err := manager.GetRun(runID)
			if err != nil {
				t.Fatalf("Failed to poll run %s: %v", runID, err)
			}
			switch run.Status {
			case model.RunStatusCompleted, model.RunStatusFailed, model.RunStatusCancelled:
				return
			}
		}
	}
}
