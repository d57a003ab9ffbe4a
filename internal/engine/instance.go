package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/rates"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
	"github.com/sunnycho100/ocean-freight-optimizer/services"
	"github.com/sunnycho100/ocean-freight-optimizer/store"
)

// DatasetInstance holds the state of a single carrier dataset.
// It implements the services.DatasetAccessor interface.
type DatasetInstance struct {
	name  string
	Store *store.RateStore
}

func newDatasetInstance(name string, rateStore *store.RateStore) *DatasetInstance {
	return &DatasetInstance{name: name, Store: rateStore}
}

// Name returns the dataset name.
func (d *DatasetInstance) Name() string {
	return d.name
}

// IngestRates appends collected rows to the dataset and reprocesses the
// whole set: ocean rates are re-joined and cost ranks recomputed so ranks
// stay consistent across incremental ingests.
// This satisfies part of the services.DatasetAccessor interface.
func (d *DatasetInstance) IngestRates(rows []model.RateRow) error {
	if len(rows) == 0 {
		return errors.NewValidationError("rows", "at least one rate row is required")
	}
	for _, row := range rows {
		if row.Destination == "" {
			return errors.NewValidationError("destination", "rate row destination cannot be empty")
		}
		if row.POD == "" {
			return errors.NewValidationError("pod", "rate row POD cannot be empty")
		}
		if row.ContainerType == "" {
			return errors.NewValidationError("container_type", "rate row container type cannot be empty")
		}
	}

	// The store holds its write lock across the whole read-modify-write;
	// concurrent ingests into the same dataset must not lose rows.
	d.Store.AppendRows(rows, rates.Process)
	return nil
}

// IngestOceanRates replaces the dataset's ocean rate table and reprocesses
// the stored rows against it.
// This satisfies part of the services.DatasetAccessor interface.
func (d *DatasetInstance) IngestOceanRates(oceanRates []model.OceanRate) error {
	for _, rate := range oceanRates {
		if rate.POD == "" {
			return errors.NewValidationError("pod", "ocean rate POD cannot be empty")
		}
	}

	d.Store.ReplaceOcean(oceanRates, rates.Process)
	return nil
}

// DeleteAllRates drops every rate row but keeps the ocean table.
// This satisfies part of the services.DatasetAccessor interface.
func (d *DatasetInstance) DeleteAllRates() error {
	d.Store.Clear()
	return nil
}

// FindRoutes returns the ranked route options for one destination and
// container type, cheapest first.
// This satisfies part of the services.DatasetAccessor interface.
func (d *DatasetInstance) FindRoutes(query services.RouteQuery) (services.RoutesResult, error) {
	if query.Destination == "" {
		return services.RoutesResult{}, errors.NewValidationError("destination", "destination cannot be empty")
	}
	if query.ContainerType == "" {
		return services.RoutesResult{}, errors.NewValidationError("container_type", "container type cannot be empty")
	}

	start := time.Now()
	rows := d.Store.RowsFor(query.Destination)
	routes := rates.RoutesFor(rows, query.Destination, query.ContainerType)

	return services.RoutesResult{
		Destination:   query.Destination,
		ContainerType: query.ContainerType,
		Routes:        routes,
		Total:         len(routes),
		Took:          time.Since(start).Milliseconds(),
		QueryID:       uuid.New().String(),
	}, nil
}

// Destinations lists every destination present in the dataset, sorted.
// This satisfies part of the services.DatasetAccessor interface.
func (d *DatasetInstance) Destinations() []string {
	return d.Store.Destinations()
}
