package api

import (
	"fmt"
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects the validation failures of one request
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError records a validation failure and marks the result invalid
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any validation failures were recorded
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid
}

// NewValidationResult creates a result that starts out valid
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

const maxDatasetNameLength = 64

// ValidateDatasetName checks a dataset name from the URL path or a create
// request. Names become directory names on disk, so path separators and
// traversal sequences are rejected outright.
func ValidateDatasetName(name string) *ValidationResult {
	result := NewValidationResult()

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		result.AddError("name", "Dataset name cannot be empty")
		return result
	}
	if len(trimmed) > maxDatasetNameLength {
		result.AddError("name", fmt.Sprintf("Dataset name cannot exceed %d characters", maxDatasetNameLength))
	}
	if strings.ContainsAny(trimmed, "/\\") || strings.Contains(trimmed, "..") {
		result.AddError("name", "Dataset name cannot contain path separators or '..'")
	}

	return result
}

// ValidateDestinationInput checks the raw destination line of a resolve
// request before it is parsed.
func ValidateDestinationInput(destination string) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(destination) == "" {
		result.AddError("destination", "Destination cannot be empty")
	}

	return result
}

// ValidateRateRows checks an ingestion payload. Row errors carry the index
// of the offending row so callers can fix their upload.
func ValidateRateRows(rows []model.RateRow) *ValidationResult {
	result := NewValidationResult()

	if len(rows) == 0 {
		result.AddError("rows", "At least one rate row is required")
		return result
	}

	for i, row := range rows {
		if strings.TrimSpace(row.Destination) == "" {
			result.AddError(fmt.Sprintf("rows[%d].destination", i), "Destination cannot be empty")
		}
		if strings.TrimSpace(row.POD) == "" {
			result.AddError(fmt.Sprintf("rows[%d].pod", i), "POD cannot be empty")
		}
		if strings.TrimSpace(row.ContainerType) == "" {
			result.AddError(fmt.Sprintf("rows[%d].container_type", i), "Container type cannot be empty")
		}
		if row.InlandRate < 0 {
			result.AddError(fmt.Sprintf("rows[%d].inland_rate", i), "Inland rate cannot be negative")
		}
	}

	return result
}

// ValidateOceanRates checks the ocean rate table of an ingestion payload.
func ValidateOceanRates(oceanRates []model.OceanRate) *ValidationResult {
	result := NewValidationResult()

	for i, rate := range oceanRates {
		if strings.TrimSpace(rate.POD) == "" {
			result.AddError(fmt.Sprintf("ocean_rates[%d].pod", i), "POD cannot be empty")
		}
		if rate.Rate20 < 0 || rate.Rate40 < 0 {
			result.AddError(fmt.Sprintf("ocean_rates[%d]", i), "Ocean rates cannot be negative")
		}
	}

	return result
}

// ValidateRouteQuery checks the path parameters of a route lookup.
func ValidateRouteQuery(destination, containerType string) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(destination) == "" {
		result.AddError("destination", "Destination cannot be empty")
	}
	if strings.TrimSpace(containerType) == "" {
		result.AddError("containerType", "Container type cannot be empty")
	}

	return result
}
