package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// CreateDatasetAsync creates a new dataset in a background run.
func (e *Engine) CreateDatasetAsync(name string) (string, error) {
	if name == "" {
		return "", errors.NewValidationError("name", "dataset name cannot be empty")
	}

	e.mu.RLock()
	if _, exists := e.datasets[name]; exists {
		e.mu.RUnlock()
		return "", errors.NewDatasetAlreadyExistsError(name)
	}
	e.mu.RUnlock()

	runID := e.runManager.CreateRun(model.RunTypeCreateDataset, name, map[string]string{
		"operation": "create_dataset",
	})

	err := e.runManager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.createDatasetUnsafe(name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start create dataset run: %w", err)
	}

	return runID, nil
}

// DeleteDatasetAsync deletes a dataset in a background run.
func (e *Engine) DeleteDatasetAsync(name string) (string, error) {
	e.mu.RLock()
	if _, exists := e.datasets[name]; !exists {
		e.mu.RUnlock()
		return "", errors.NewDatasetNotFoundError(name)
	}
	e.mu.RUnlock()

	runID := e.runManager.CreateRun(model.RunTypeDeleteDataset, name, map[string]string{
		"operation": "delete_dataset",
	})

	err := e.runManager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.deleteDatasetUnsafe(name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete dataset run: %w", err)
	}

	return runID, nil
}

// IngestRatesAsync ingests rate rows into a dataset in a background run and
// persists the updated store afterwards.
func (e *Engine) IngestRatesAsync(datasetName string, rows []model.RateRow) (string, error) {
	e.mu.RLock()
	if _, exists := e.datasets[datasetName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewDatasetNotFoundError(datasetName)
	}
	e.mu.RUnlock()

	runID := e.runManager.CreateRun(model.RunTypeIngestRates, datasetName, map[string]string{
		"operation": "ingest_rates",
		"row_count": fmt.Sprintf("%d", len(rows)),
	})

	err := e.runManager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		e.mu.RLock()
		instance, exists := e.datasets[datasetName]
		e.mu.RUnlock()
		if !exists {
			return errors.NewDatasetNotFoundError(datasetName)
		}

		e.runManager.UpdateProgress(runID, 0, len(rows), "Starting rate ingestion")
		if err := instance.IngestRates(rows); err != nil {
			return fmt.Errorf("failed to ingest rates into dataset '%s': %w", datasetName, err)
		}
		e.runManager.UpdateProgress(runID, len(rows), len(rows), "Rates ingested")

		if err := e.PersistDataset(datasetName); err != nil {
			return fmt.Errorf("failed to persist dataset '%s' after ingestion: %w", datasetName, err)
		}

		log.Printf("Ingested %d rate rows into dataset '%s' (async).", len(rows), datasetName)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start ingest rates run: %w", err)
	}

	return runID, nil
}

// DeleteAllRatesAsync clears a dataset's rate rows in a background run.
func (e *Engine) DeleteAllRatesAsync(datasetName string) (string, error) {
	e.mu.RLock()
	if _, exists := e.datasets[datasetName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewDatasetNotFoundError(datasetName)
	}
	e.mu.RUnlock()

	runID := e.runManager.CreateRun(model.RunTypeDeleteAllRates, datasetName, map[string]string{
		"operation": "delete_all_rates",
	})

	err := e.runManager.Execute(runID, func(ctx context.Context, run *model.Run) error {
		e.mu.RLock()
		instance, exists := e.datasets[datasetName]
		e.mu.RUnlock()
		if !exists {
			return errors.NewDatasetNotFoundError(datasetName)
		}

		if err := instance.DeleteAllRates(); err != nil {
			return fmt.Errorf("failed to delete rates from dataset '%s': %w", datasetName, err)
		}
		if err := e.PersistDataset(datasetName); err != nil {
			return fmt.Errorf("failed to persist dataset '%s' after clearing: %w", datasetName, err)
		}

		log.Printf("Deleted all rate rows from dataset '%s' (async).", datasetName)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete all rates run: %w", err)
	}

	return runID, nil
}
