package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// GetRunHandler returns the status of one background run.
func (api *API) GetRunHandler(c *gin.Context) {
	runID := c.Param("runId")

	run, err := api.engine.GetRun(runID)
	if err != nil {
		if stderrors.Is(err, errors.ErrRunNotFound) {
			SendRunNotFoundError(c, runID)
			return
		}
		SendInternalError(c, "run lookup", err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// RunMetricsHandler returns aggregate metrics over all background runs.
func (api *API) RunMetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.GetRunMetrics())
}

// ListDatasetRunsHandler lists the background runs of one dataset, optionally
// filtered with ?status=running|pending|completed|failed.
func (api *API) ListDatasetRunsHandler(c *gin.Context) {
	name := c.Param("name")

	if _, err := api.engine.GetDataset(name); err != nil {
		api.sendDatasetError(c, name, "run listing", err)
		return
	}

	var statusFilter *model.RunStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.RunStatus(statusParam)
		switch status {
		case model.RunStatusPending, model.RunStatusRunning, model.RunStatusCompleted,
			model.RunStatusFailed, model.RunStatusCancelling, model.RunStatusCancelled:
			statusFilter = &status
		default:
			validation := NewValidationResult()
			validation.AddError("status", "Unknown run status '"+statusParam+"'")
			SendStructuredValidationError(c, validation)
			return
		}
	}

	runs := api.engine.ListRuns(name, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"dataset": name,
		"runs":    runs,
		"total":   len(runs),
	})
}
