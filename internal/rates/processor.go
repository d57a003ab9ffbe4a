// Package rates reconciles collected inland rate rows with ocean freight
// rates and ranks the resulting routes by total cost. All functions are pure
// transformations over slices; storage and serving live elsewhere.
package rates

import (
	"sort"
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// OceanTable indexes per-POD ocean rates for joining against inland rows.
// Keys are trimmed, uppercased POD names.
type OceanTable map[string]model.OceanRate

// BuildOceanTable builds the lookup table. Later entries for the same POD
// overwrite earlier ones.
func BuildOceanTable(oceanRates []model.OceanRate) OceanTable {
	table := make(OceanTable, len(oceanRates))
	for _, rate := range oceanRates {
		table[podKey(rate.POD)] = rate
	}
	return table
}

// Lookup returns the ocean rate for a POD and container type. Container
// sizes are matched on the leading "20"/"40" of the container type code
// ("40HC" and "40DRY" both take the 40-foot rate).
func (t OceanTable) Lookup(pod, containerType string) (float64, bool) {
	rate, ok := t[podKey(pod)]
	if !ok {
		return 0, false
	}
	switch {
	case strings.HasPrefix(containerType, "20"):
		return rate.Rate20, true
	case strings.HasPrefix(containerType, "40"):
		return rate.Rate40, true
	}
	return 0, false
}

func podKey(pod string) string {
	return strings.ToUpper(strings.TrimSpace(pod))
}

// Process joins each inland row with its ocean rate, computes total rates,
// and assigns cost ranks within each destination + container type group.
// Rows whose POD has no ocean rate keep a zero ocean component and are
// ranked on the inland rate alone, with a remark noting the gap.
//
// The input is not mutated. Output rows are ordered by destination,
// container type, then rank, so repeated runs over the same input are
// byte-identical.
func Process(rows []model.RateRow, oceanRates []model.OceanRate) []model.RateRow {
	table := BuildOceanTable(oceanRates)

	processed := make([]model.RateRow, len(rows))
	copy(processed, rows)
	for i := range processed {
		ocean, ok := table.Lookup(processed[i].POD, processed[i].ContainerType)
		if !ok {
			processed[i].OceanRate = 0
			processed[i].TotalRate = processed[i].InlandRate
			if processed[i].Remarks == "" {
				processed[i].Remarks = "no ocean rate for POD"
			}
			continue
		}
		processed[i].OceanRate = ocean
		processed[i].TotalRate = processed[i].InlandRate + ocean
	}

	rankGroups(processed)

	sort.SliceStable(processed, func(i, j int) bool {
		a, b := processed[i], processed[j]
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		if a.ContainerType != b.ContainerType {
			return a.ContainerType < b.ContainerType
		}
		if a.CostRank != b.CostRank {
			return a.CostRank < b.CostRank
		}
		return a.POD < b.POD
	})
	return processed
}

// rankGroups assigns dense cost ranks per destination + container type:
// rows with equal total rates share a rank, and the POD name breaks ordering
// ties so output order stays deterministic. TotalRoutes is the group size.
func rankGroups(rows []model.RateRow) {
	groups := make(map[string][]int)
	for i, row := range rows {
		key := row.Destination + "\x00" + row.ContainerType
		groups[key] = append(groups[key], i)
	}

	for _, indices := range groups {
		sort.SliceStable(indices, func(a, b int) bool {
			ra, rb := rows[indices[a]], rows[indices[b]]
			if ra.TotalRate != rb.TotalRate {
				return ra.TotalRate < rb.TotalRate
			}
			return ra.POD < rb.POD
		})

		rank := 0
		prevTotal := 0.0
		for pos, idx := range indices {
			if pos == 0 || rows[idx].TotalRate != prevTotal {
				rank++
				prevTotal = rows[idx].TotalRate
			}
			rows[idx].CostRank = rank
			rows[idx].TotalRoutes = len(indices)
		}
	}
}

// RoutesFor extracts the ranked route options for one destination and
// container type from processed rows, cheapest first.
func RoutesFor(rows []model.RateRow, destination, containerType string) []model.RouteOption {
	routes := make([]model.RouteOption, 0)
	for _, row := range rows {
		if row.Destination != destination || row.ContainerType != containerType {
			continue
		}
		routes = append(routes, model.RouteOption{
			Rank:       row.CostRank,
			POD:        row.POD,
			Mode:       row.TransportMode,
			Remarks:    row.Remarks,
			TotalRate:  row.TotalRate,
			OceanRate:  row.OceanRate,
			InlandRate: row.InlandRate,
		})
	}
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Rank != routes[j].Rank {
			return routes[i].Rank < routes[j].Rank
		}
		return routes[i].POD < routes[j].POD
	})
	return routes
}
