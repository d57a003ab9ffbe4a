package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// RateStore holds the processed rate rows and ocean rate table of one
// carrier dataset. Rows are expected to arrive already reconciled and
// ranked; the store only serves them.
type RateStore struct {
	Mu    sync.RWMutex
	Rows  []model.RateRow
	Ocean []model.OceanRate

	// destIndex maps destination to row positions, rebuilt after every
	// mutation and after decode. Never persisted.
	destIndex map[string][]int
}

// NewRateStore creates an empty store.
func NewRateStore() *RateStore {
	return &RateStore{
		Rows:      make([]model.RateRow, 0),
		Ocean:     make([]model.OceanRate, 0),
		destIndex: make(map[string][]int),
	}
}

// ProcessFunc reconciles rate rows against an ocean table into ranked rows.
// Implementations must not retain or mutate their arguments.
type ProcessFunc func(rows []model.RateRow, ocean []model.OceanRate) []model.RateRow

// ReplaceRows swaps in a full set of processed rows.
func (rs *RateStore) ReplaceRows(rows []model.RateRow) {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	rs.Rows = make([]model.RateRow, len(rows))
	copy(rs.Rows, rows)
	rs.rebuildIndex()
}

// AppendRows combines the stored rows with extra and replaces the stored set
// with the processed result. The write lock is held across the whole
// read-modify-write so concurrent ingests cannot lose each other's rows.
func (rs *RateStore) AppendRows(extra []model.RateRow, process ProcessFunc) {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	combined := make([]model.RateRow, 0, len(rs.Rows)+len(extra))
	combined = append(combined, rs.Rows...)
	combined = append(combined, extra...)
	rs.Rows = process(combined, rs.Ocean)
	rs.rebuildIndex()
}

// ReplaceOcean swaps in a new ocean rate table and reprocesses the stored
// rows against it, all under one write lock.
func (rs *RateStore) ReplaceOcean(oceanRates []model.OceanRate, process ProcessFunc) {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	rs.Ocean = make([]model.OceanRate, len(oceanRates))
	copy(rs.Ocean, oceanRates)
	if len(rs.Rows) > 0 {
		rs.Rows = process(rs.Rows, rs.Ocean)
	}
	rs.rebuildIndex()
}

// SetOceanRates replaces the stored ocean rate table.
func (rs *RateStore) SetOceanRates(oceanRates []model.OceanRate) {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	rs.Ocean = make([]model.OceanRate, len(oceanRates))
	copy(rs.Ocean, oceanRates)
}

// Clear drops every row but keeps the ocean table.
func (rs *RateStore) Clear() {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	rs.Rows = rs.Rows[:0]
	rs.destIndex = make(map[string][]int)
}

// RowsFor returns copies of the rows stored for one destination.
func (rs *RateStore) RowsFor(destination string) []model.RateRow {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	indices := rs.destIndex[destination]
	rows := make([]model.RateRow, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, rs.Rows[i])
	}
	return rows
}

// Destinations lists every destination with at least one row, sorted.
func (rs *RateStore) Destinations() []string {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	destinations := make([]string, 0, len(rs.destIndex))
	for destination := range rs.destIndex {
		destinations = append(destinations, destination)
	}
	sort.Strings(destinations)
	return destinations
}

// Len returns the number of stored rows.
func (rs *RateStore) Len() int {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	return len(rs.Rows)
}

// rebuildIndex recomputes destIndex. Caller must hold the write lock.
func (rs *RateStore) rebuildIndex() {
	rs.destIndex = make(map[string][]int, len(rs.Rows))
	for i, row := range rs.Rows {
		rs.destIndex[row.Destination] = append(rs.destIndex[row.Destination], i)
	}
}

// gobRateStoreData excludes the mutex and the derived index from the
// persisted form.
type gobRateStoreData struct {
	Rows  []model.RateRow
	Ocean []model.OceanRate
}

// GobEncode implements the gob.GobEncoder interface for RateStore.
func (rs *RateStore) GobEncode() ([]byte, error) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(gobRateStoreData{Rows: rs.Rows, Ocean: rs.Ocean}); err != nil {
		return nil, fmt.Errorf("failed to gob encode rate store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for RateStore.
func (rs *RateStore) GobDecode(data []byte) error {
	decoded := gobRateStoreData{}
	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode rate store data: %w", err)
	}

	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	rs.Rows = decoded.Rows
	rs.Ocean = decoded.Ocean
	if rs.Rows == nil {
		rs.Rows = make([]model.RateRow, 0)
	}
	if rs.Ocean == nil {
		rs.Ocean = make([]model.OceanRate, 0)
	}
	rs.rebuildIndex()
	return nil
}
