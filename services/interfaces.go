package services

import (
	"context"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// RouteQuery asks for the ranked route options of one resolved destination
// and container type within a dataset.
type RouteQuery struct {
	Destination   string `json:"destination"`
	ContainerType string `json:"container_type"`
}

// RoutesResult is the response to a RouteQuery. Routes are ordered by cost
// rank, cheapest first.
type RoutesResult struct {
	Destination   string              `json:"destination"`
	ContainerType string              `json:"container_type"`
	Routes        []model.RouteOption `json:"routes"`
	Total         int                 `json:"total"`
	Took          int64               `json:"took"`     // milliseconds
	QueryID       string              `json:"query_id"` // unique UUID for this lookup
}

// Resolver turns a parsed destination query into search variants and picks
// the best option out of an autocomplete candidate list. Implementations
// must be pure: no I/O and identical results for identical inputs.
type Resolver interface {
	GenerateVariants(query model.DestinationQuery) []string
	ScoreCandidates(query model.DestinationQuery, candidates []string) []model.ScoredCandidate
	SelectBestCandidate(query model.DestinationQuery, candidates []string) model.SelectionResult
}

// FormDriver is the external collaborator that operates a carrier site's
// destination form. SubmitVariant types one search variant and returns the
// option strings the autocomplete currently displays, in display order.
// Select commits one of those options by its exact raw text.
type FormDriver interface {
	SubmitVariant(ctx context.Context, variant string) ([]string, error)
	Select(ctx context.Context, optionText string) error
}

// RateIngester defines operations for loading rate rows into a dataset
type RateIngester interface {
	IngestRates(rows []model.RateRow) error
	IngestOceanRates(oceanRates []model.OceanRate) error
	DeleteAllRates() error
}

// RateFinder defines read operations over a dataset's processed rate rows
type RateFinder interface {
	FindRoutes(query RouteQuery) (RoutesResult, error)
	Destinations() []string
}

// DatasetAccessor combines ingest and lookup for one named carrier dataset
type DatasetAccessor interface {
	RateIngester
	RateFinder
}

// DatasetManager manages the lifecycle of named carrier datasets
type DatasetManager interface {
	CreateDataset(name string) error
	GetDataset(name string) (DatasetAccessor, error)
	DeleteDataset(name string) error
	ListDatasets() []string
	PersistDataset(name string) error
}

// RunManager defines operations for inspecting background runs
type RunManager interface {
	GetRun(runID string) (*model.Run, error)
	ListRuns(dataset string, status *model.RunStatus) []*model.Run
}
