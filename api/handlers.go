// Package api exposes the rate collector over HTTP: destination resolution,
// dataset lifecycle, rate ingestion and route lookup, background run
// inspection, and resolution reports.
package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/engine"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/reports"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
)

// API provides HTTP handlers for the rate collector service.
type API struct {
	engine   *engine.Engine
	resolver services.Resolver
	reports  *reports.Service
}

// NewAPI creates a new API instance over the dataset engine, the destination
// resolver, and the resolution reports service.
func NewAPI(eng *engine.Engine, resolver services.Resolver, reportsService *reports.Service) *API {
	return &API{
		engine:   eng,
		resolver: resolver,
		reports:  reportsService,
	}
}

// SetupRoutes configures all API routes.
func (api *API) SetupRoutes(router *gin.Engine) {
	router.GET("/health", api.HealthCheckHandler)

	// Destination resolution (pure, no dataset state)
	resolve := router.Group("/resolve")
	{
		resolve.POST("", api.ResolveHandler)
		resolve.POST("/variants", api.VariantsHandler)
	}

	// Dataset lifecycle and per-dataset rate operations
	datasets := router.Group("/datasets")
	{
		datasets.GET("", api.ListDatasetsHandler)
		datasets.POST("", api.CreateDatasetHandler)
		datasets.GET("/:name", api.GetDatasetHandler)
		datasets.DELETE("/:name", api.DeleteDatasetHandler)
		datasets.PUT("/:name/rates", api.IngestRatesHandler)
		datasets.GET("/:name/destinations", api.ListDestinationsHandler)
		datasets.GET("/:name/routes/:destination/:containerType", api.GetRoutesHandler)
		datasets.GET("/:name/runs", api.ListDatasetRunsHandler)
	}

	// Background run inspection
	runs := router.Group("/runs")
	{
		runs.GET("/metrics", api.RunMetricsHandler)
		runs.GET("/:runId", api.GetRunHandler)
	}

	// Resolution reports
	router.GET("/reports/summary", api.ResolutionSummaryHandler)
}

// HealthCheckHandler returns service health and the number of loaded datasets.
func (api *API) HealthCheckHandler(c *gin.Context) {
	names := api.engine.ListDatasets()
	sort.Strings(names)

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "ocean-freight-rate-collector",
		"datasets": len(names),
	})
}
