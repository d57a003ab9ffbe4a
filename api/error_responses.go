package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeDatasetNotFound    ErrorCode = "DATASET_NOT_FOUND"
	ErrorCodeDatasetExists      ErrorCode = "DATASET_ALREADY_EXISTS"
	ErrorCodeRunNotFound        ErrorCode = "RUN_NOT_FOUND"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidDestination ErrorCode = "INVALID_DESTINATION"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeIngestionFailed    ErrorCode = "INGESTION_FAILED"
	ErrorCodeRunExecutionFailed ErrorCode = "RUN_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendDatasetNotFoundError sends a standardized dataset not found error
func SendDatasetNotFoundError(c *gin.Context, datasetName string) {
	SendError(c, http.StatusNotFound, ErrorCodeDatasetNotFound,
		"Dataset '"+datasetName+"' not found")
}

// SendDatasetExistsError sends a standardized dataset already exists error
func SendDatasetExistsError(c *gin.Context, datasetName string) {
	SendError(c, http.StatusConflict, ErrorCodeDatasetExists,
		"Dataset '"+datasetName+"' already exists")
}

// SendRunNotFoundError sends a standardized run not found error
func SendRunNotFoundError(c *gin.Context, runID string) {
	SendError(c, http.StatusNotFound, ErrorCodeRunNotFound,
		"Run '"+runID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInvalidDestinationError sends a standardized malformed destination error
func SendInvalidDestinationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidDestination, err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendIngestionError sends a standardized rate ingestion error
func SendIngestionError(c *gin.Context, datasetName string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeIngestionFailed,
		"Rate ingestion failed for dataset '"+datasetName+"': "+err.Error())
}

// SendRunExecutionError sends a standardized run start error
func SendRunExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeRunExecutionFailed,
		"Failed to start "+operation+" run: "+err.Error())
}
