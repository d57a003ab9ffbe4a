package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResolutionSummaryHandler returns the aggregated resolution event report:
// counts by event type, per-destination rollups, and the most recent events.
func (api *API) ResolutionSummaryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.reports.GetSummary())
}
