package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidQueryFormat is returned when a destination line cannot be
	// parsed into city and country
	ErrInvalidQueryFormat = errors.New("invalid query format")

	// ErrDatasetNotFound is returned when a carrier dataset is not found
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrDatasetAlreadyExists is returned when trying to create a dataset that already exists
	ErrDatasetAlreadyExists = errors.New("dataset already exists")

	// ErrRunNotFound is returned when a background run is not found
	ErrRunNotFound = errors.New("run not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidQueryFormatError represents a destination line that could not be
// split into at least a city and a country
type InvalidQueryFormatError struct {
	Input string
}

func (e *InvalidQueryFormatError) Error() string {
	return fmt.Sprintf("destination '%s' must have at least two comma-separated segments (CITY, COUNTRY)", e.Input)
}

func (e *InvalidQueryFormatError) Is(target error) bool {
	return target == ErrInvalidQueryFormat
}

// NewInvalidQueryFormatError creates a new InvalidQueryFormatError
func NewInvalidQueryFormatError(input string) *InvalidQueryFormatError {
	return &InvalidQueryFormatError{Input: input}
}

// DatasetNotFoundError represents a dataset not found error with context
type DatasetNotFoundError struct {
	DatasetName string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("dataset named '%s' not found", e.DatasetName)
}

func (e *DatasetNotFoundError) Is(target error) bool {
	return target == ErrDatasetNotFound
}

// NewDatasetNotFoundError creates a new DatasetNotFoundError
func NewDatasetNotFoundError(datasetName string) *DatasetNotFoundError {
	return &DatasetNotFoundError{DatasetName: datasetName}
}

// DatasetAlreadyExistsError represents a dataset already exists error with context
type DatasetAlreadyExistsError struct {
	DatasetName string
}

func (e *DatasetAlreadyExistsError) Error() string {
	return fmt.Sprintf("dataset named '%s' already exists", e.DatasetName)
}

func (e *DatasetAlreadyExistsError) Is(target error) bool {
	return target == ErrDatasetAlreadyExists
}

// NewDatasetAlreadyExistsError creates a new DatasetAlreadyExistsError
func NewDatasetAlreadyExistsError(datasetName string) *DatasetAlreadyExistsError {
	return &DatasetAlreadyExistsError{DatasetName: datasetName}
}

// RunNotFoundError represents a run not found error with context
type RunNotFoundError struct {
	RunID string
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run with ID '%s' not found", e.RunID)
}

func (e *RunNotFoundError) Is(target error) bool {
	return target == ErrRunNotFound
}

// NewRunNotFoundError creates a new RunNotFoundError
func NewRunNotFoundError(runID string) *RunNotFoundError {
	return &RunNotFoundError{RunID: runID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
