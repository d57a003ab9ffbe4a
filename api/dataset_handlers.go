package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
)

// CreateDatasetRequest names a new carrier dataset.
type CreateDatasetRequest struct {
	Name string `json:"name"`
}

// IngestRatesRequest carries collected inland rate rows and the ocean rate
// table to join them against. Either part may be omitted, not both.
type IngestRatesRequest struct {
	Rows       []model.RateRow   `json:"rows"`
	OceanRates []model.OceanRate `json:"ocean_rates"`
}

// ListDatasetsHandler lists the names of all loaded datasets.
func (api *API) ListDatasetsHandler(c *gin.Context) {
	names := api.engine.ListDatasets()
	sort.Strings(names)

	c.JSON(http.StatusOK, gin.H{
		"datasets": names,
		"total":    len(names),
	})
}

// CreateDatasetHandler creates a new empty dataset. With ?async=true the
// creation happens in a background run and the run ID is returned instead.
func (api *API) CreateDatasetHandler(c *gin.Context) {
	var req CreateDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateDatasetName(req.Name); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	if c.Query("async") == "true" {
		runID, err := api.engine.CreateDatasetAsync(req.Name)
		if err != nil {
			api.sendDatasetError(c, req.Name, "dataset creation", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Dataset creation started",
			"name":    req.Name,
			"run_id":  runID,
		})
		return
	}

	if err := api.engine.CreateDataset(req.Name); err != nil {
		api.sendDatasetError(c, req.Name, "dataset creation", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dataset created successfully",
		"name":    req.Name,
	})
}

// GetDatasetHandler returns basic stats for one dataset.
func (api *API) GetDatasetHandler(c *gin.Context) {
	name := c.Param("name")

	dataset, err := api.engine.GetDataset(name)
	if err != nil {
		api.sendDatasetError(c, name, "dataset lookup", err)
		return
	}

	destinations := dataset.Destinations()
	c.JSON(http.StatusOK, gin.H{
		"name":         name,
		"destinations": len(destinations),
	})
}

// DeleteDatasetHandler removes a dataset and its on-disk data. With
// ?async=true the deletion happens in a background run.
func (api *API) DeleteDatasetHandler(c *gin.Context) {
	name := c.Param("name")

	if c.Query("async") == "true" {
		runID, err := api.engine.DeleteDatasetAsync(name)
		if err != nil {
			api.sendDatasetError(c, name, "dataset deletion", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Dataset deletion started",
			"name":    name,
			"run_id":  runID,
		})
		return
	}

	if err := api.engine.DeleteDataset(name); err != nil {
		api.sendDatasetError(c, name, "dataset deletion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dataset deleted successfully",
		"name":    name,
	})
}

// IngestRatesHandler loads rate rows and ocean rates into a dataset. Ocean
// rates are applied immediately; rate rows are ingested in a background run
// so large collections do not block the request.
func (api *API) IngestRatesHandler(c *gin.Context) {
	name := c.Param("name")

	var req IngestRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if len(req.Rows) == 0 && len(req.OceanRates) == 0 {
		validation := NewValidationResult()
		validation.AddError("rows", "Request must contain rate rows or ocean rates")
		SendStructuredValidationError(c, validation)
		return
	}
	if len(req.Rows) > 0 {
		if validation := ValidateRateRows(req.Rows); validation.HasErrors() {
			SendStructuredValidationError(c, validation)
			return
		}
	}
	if validation := ValidateOceanRates(req.OceanRates); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	dataset, err := api.engine.GetDataset(name)
	if err != nil {
		api.sendDatasetError(c, name, "rate ingestion", err)
		return
	}

	if len(req.OceanRates) > 0 {
		if err := dataset.IngestOceanRates(req.OceanRates); err != nil {
			SendIngestionError(c, name, err)
			return
		}
	}

	if len(req.Rows) == 0 {
		// Ocean-rates-only update: persist and finish synchronously.
		if err := api.engine.PersistDataset(name); err != nil {
			SendIngestionError(c, name, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":     "Ocean rates updated",
			"name":        name,
			"ocean_rates": len(req.OceanRates),
		})
		return
	}

	runID, err := api.engine.IngestRatesAsync(name, req.Rows)
	if err != nil {
		SendRunExecutionError(c, "rate ingestion", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Rate ingestion started",
		"name":    name,
		"rows":    len(req.Rows),
		"run_id":  runID,
	})
}

// ListDestinationsHandler lists the resolved destinations a dataset holds
// rates for.
func (api *API) ListDestinationsHandler(c *gin.Context) {
	name := c.Param("name")

	dataset, err := api.engine.GetDataset(name)
	if err != nil {
		api.sendDatasetError(c, name, "destination listing", err)
		return
	}

	destinations := dataset.Destinations()
	c.JSON(http.StatusOK, gin.H{
		"dataset":      name,
		"destinations": destinations,
		"total":        len(destinations),
	})
}

// GetRoutesHandler returns the ranked route options for one destination and
// container type, cheapest total first.
func (api *API) GetRoutesHandler(c *gin.Context) {
	name := c.Param("name")
	destination := c.Param("destination")
	containerType := c.Param("containerType")

	if validation := ValidateRouteQuery(destination, containerType); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	dataset, err := api.engine.GetDataset(name)
	if err != nil {
		api.sendDatasetError(c, name, "route lookup", err)
		return
	}

	result, err := dataset.FindRoutes(services.RouteQuery{
		Destination:   destination,
		ContainerType: containerType,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidInput) {
			validation := NewValidationResult()
			validation.AddError("query", err.Error())
			SendStructuredValidationError(c, validation)
			return
		}
		SendInternalError(c, "route lookup", err)
		return
	}

	// A destination with zero route options is a reportable condition: it
	// resolved at collection time but carries no usable rates.
	if result.Total == 0 {
		api.reports.RecordResolutionEvent(model.ResolutionEvent{
			Type:        model.EventNoRates,
			Destination: destination,
			Detail:      fmt.Sprintf("no %s rates in dataset '%s'", containerType, name),
		})
	}

	c.JSON(http.StatusOK, result)
}

// sendDatasetError maps dataset-level errors onto the standard responses.
func (api *API) sendDatasetError(c *gin.Context, name, operation string, err error) {
	switch {
	case stderrors.Is(err, errors.ErrDatasetNotFound):
		SendDatasetNotFoundError(c, name)
	case stderrors.Is(err, errors.ErrDatasetAlreadyExists):
		SendDatasetExistsError(c, name)
	case stderrors.Is(err, errors.ErrInvalidInput):
		validation := NewValidationResult()
		validation.AddError("name", err.Error())
		SendStructuredValidationError(c, validation)
	default:
		SendInternalError(c, operation, err)
	}
}
