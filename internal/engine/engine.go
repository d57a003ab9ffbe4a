// Package engine orchestrates the named carrier datasets of the rate
// collector: it owns their lifecycle, their on-disk snapshots, and the run
// manager that executes long operations against them.
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/persistence"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/runs"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
	"github.com/sunnycho100/ocean-freight-optimizer/store"
)

const (
	dataDirPerm   = 0755
	manifestFile  = "manifest.gob"
	rateStoreFile = "rate_store.gob"
)

// datasetManifest identifies a dataset directory on disk.
type datasetManifest struct {
	Name      string
	CreatedAt time.Time
}

// Engine manages multiple carrier datasets.
// It implements the services.DatasetManager and services.RunManager interfaces.
type Engine struct {
	mu         sync.RWMutex
	datasets   map[string]*DatasetInstance
	dataDir    string
	runManager *runs.Manager
}

// NewEngine creates a dataset engine rooted at dataDir and loads every
// dataset snapshot found there. The run manager is started immediately.
func NewEngine(dataDir string, maxWorkers int) *Engine {
	eng := &Engine{
		datasets:   make(map[string]*DatasetInstance),
		dataDir:    dataDir,
		runManager: runs.NewManager(maxWorkers),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new datasets if loading fails.", dataDir, err)
	}
	eng.loadDatasetsFromDisk()
	eng.runManager.Start()
	return eng
}

// Stop shuts down the run manager, waiting for active runs to finish.
func (e *Engine) Stop() {
	e.runManager.Stop()
}

func (e *Engine) loadDatasetsFromDisk() {
	log.Printf("Loading datasets from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No datasets loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		name := item.Name()
		datasetPath := filepath.Join(e.dataDir, name)

		var manifest datasetManifest
		if err := persistence.LoadGob(filepath.Join(datasetPath, manifestFile), &manifest); err != nil {
			log.Printf("Warning: Failed to load manifest for dataset %s: %v. Skipping this directory.", name, err)
			continue
		}
		if manifest.Name != name {
			log.Printf("Warning: Dataset name in manifest ('%s') does not match directory name ('%s'). Skipping.", manifest.Name, name)
			continue
		}

		rateStore := store.NewRateStore()
		storePath := filepath.Join(datasetPath, rateStoreFile)
		if err := persistence.LoadGob(storePath, rateStore); err != nil && err != os.ErrNotExist {
			log.Printf("Warning: Failed to load rate store for dataset %s from %s: %v. Proceeding with empty store.", name, storePath, err)
			rateStore = store.NewRateStore()
		}

		e.datasets[name] = newDatasetInstance(name, rateStore)
		log.Printf("Loaded dataset '%s' with %d rate rows", name, rateStore.Len())
	}
}

// CreateDataset creates an empty named dataset and persists its initial state.
func (e *Engine) CreateDataset(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createDatasetUnsafe(name)
}

// createDatasetUnsafe requires the caller to hold the write lock.
func (e *Engine) createDatasetUnsafe(name string) error {
	if name == "" {
		return errors.NewValidationError("name", "dataset name cannot be empty")
	}
	if _, exists := e.datasets[name]; exists {
		return errors.NewDatasetAlreadyExistsError(name)
	}

	instance := newDatasetInstance(name, store.NewRateStore())

	datasetPath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(datasetPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for dataset %s: %w", name, err)
	}
	manifest := datasetManifest{Name: name, CreatedAt: time.Now()}
	if err := persistence.SaveGob(filepath.Join(datasetPath, manifestFile), manifest); err != nil {
		return fmt.Errorf("failed to save manifest for dataset %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(datasetPath, rateStoreFile), instance.Store); err != nil {
		return fmt.Errorf("failed to save initial rate store for %s: %w", name, err)
	}

	e.datasets[name] = instance
	log.Printf("Dataset '%s' created and persisted.", name)
	return nil
}

// GetDataset retrieves a dataset by name.
func (e *Engine) GetDataset(name string) (services.DatasetAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.datasets[name]
	if !exists {
		return nil, errors.NewDatasetNotFoundError(name)
	}
	return instance, nil
}

// DeleteDataset removes a dataset from memory and disk.
func (e *Engine) DeleteDataset(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteDatasetUnsafe(name)
}

// deleteDatasetUnsafe requires the caller to hold the write lock.
func (e *Engine) deleteDatasetUnsafe(name string) error {
	if _, exists := e.datasets[name]; !exists {
		return errors.NewDatasetNotFoundError(name)
	}
	delete(e.datasets, name)

	datasetPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(datasetPath); err != nil {
		return fmt.Errorf("failed to delete dataset data directory %s: %w", datasetPath, err)
	}
	log.Printf("Dataset '%s' deleted from memory and disk.", name)
	return nil
}

// ListDatasets returns the names of all loaded datasets.
func (e *Engine) ListDatasets() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.datasets))
	for name := range e.datasets {
		names = append(names, name)
	}
	return names
}

// PersistDataset writes a dataset's current rate store to disk.
// Called after mutations such as rate ingestion.
func (e *Engine) PersistDataset(name string) error {
	e.mu.RLock()
	instance, exists := e.datasets[name]
	e.mu.RUnlock()

	if !exists {
		return errors.NewDatasetNotFoundError(name)
	}

	storePath := filepath.Join(e.dataDir, name, rateStoreFile)
	// RateStore takes its own read lock inside GobEncode.
	if err := persistence.SaveGob(storePath, instance.Store); err != nil {
		return fmt.Errorf("failed to save rate store for %s: %w", name, err)
	}
	log.Printf("Data for dataset '%s' persisted.", name)
	return nil
}

// GetRun retrieves a background run by ID.
// This satisfies part of the services.RunManager interface.
func (e *Engine) GetRun(runID string) (*model.Run, error) {
	return e.runManager.GetRun(runID)
}

// ListRuns lists the background runs recorded for one dataset.
// This satisfies part of the services.RunManager interface.
func (e *Engine) ListRuns(dataset string, status *model.RunStatus) []*model.Run {
	return e.runManager.ListRuns(dataset, status)
}

// GetRunMetrics returns aggregate metrics over all background runs.
func (e *Engine) GetRunMetrics() runs.RunMetricsData {
	return e.runManager.GetMetrics()
}
