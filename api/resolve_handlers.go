package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/resolver"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// parseDestinationOrAbort parses the raw destination line, sending the
// malformed-input error response itself when parsing fails.
func parseDestinationOrAbort(c *gin.Context, destination string) (model.DestinationQuery, error) {
	query, err := resolver.ParseDestination(destination)
	if err != nil {
		SendInvalidDestinationError(c, err)
		return model.DestinationQuery{}, err
	}
	return query, nil
}

// ResolveRequest carries one destination line and the candidate option
// strings observed for it.
type ResolveRequest struct {
	Destination string   `json:"destination"`
	Candidates  []string `json:"candidates"`
}

// ResolveResponse reports the selection outcome for a resolve request.
type ResolveResponse struct {
	Destination string                  `json:"destination"`
	Query       model.DestinationQuery  `json:"query"`
	Resolved    bool                    `json:"resolved"`
	Result      model.SelectionResult   `json:"result"`
	Candidates  []model.ScoredCandidate `json:"candidates,omitempty"`
}

// VariantsRequest carries one destination line to expand into search variants.
type VariantsRequest struct {
	Destination string `json:"destination"`
}

// ResolveHandler scores a candidate list against a destination and returns
// the best selection, if any cleared the confidence floor.
func (api *API) ResolveHandler(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateDestinationInput(req.Destination); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	query, err := parseDestinationOrAbort(c, req.Destination)
	if err != nil {
		return
	}

	result := api.resolver.SelectBestCandidate(query, req.Candidates)

	c.JSON(http.StatusOK, ResolveResponse{
		Destination: req.Destination,
		Query:       query,
		Resolved:    result.Resolved(),
		Result:      result,
		Candidates:  api.resolver.ScoreCandidates(query, req.Candidates),
	})
}

// VariantsHandler expands a destination into the ordered search variants the
// collector would type into a carrier form.
func (api *API) VariantsHandler(c *gin.Context) {
	var req VariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateDestinationInput(req.Destination); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	query, err := parseDestinationOrAbort(c, req.Destination)
	if err != nil {
		return
	}

	variants := api.resolver.GenerateVariants(query)

	c.JSON(http.StatusOK, gin.H{
		"destination": req.Destination,
		"query":       query,
		"variants":    variants,
		"total":       len(variants),
	})
}
