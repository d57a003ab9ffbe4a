package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

func testOceanRates() []model.OceanRate {
	return []model.OceanRate{
		{POD: "HAMBURG", Rate20: 1200, Rate40: 2000},
		{POD: "ROTTERDAM", Rate20: 1100, Rate40: 1900},
		{POD: "ANTWERP", Rate20: 1150, Rate40: 1950},
	}
}

func TestOceanTable_Lookup(t *testing.T) {
	table := BuildOceanTable(testOceanRates())

	tests := []struct {
		name          string
		pod           string
		containerType string
		wantRate      float64
		wantOK        bool
	}{
		{name: "20ft dry", pod: "HAMBURG", containerType: "20DRY", wantRate: 1200, wantOK: true},
		{name: "40ft high cube", pod: "HAMBURG", containerType: "40HC", wantRate: 2000, wantOK: true},
		{name: "40ft dry shares the 40ft rate", pod: "HAMBURG", containerType: "40DRY", wantRate: 2000, wantOK: true},
		{name: "pod lookup is case and space insensitive", pod: " rotterdam ", containerType: "20DRY", wantRate: 1100, wantOK: true},
		{name: "unknown pod", pod: "SANTOS", containerType: "20DRY", wantOK: false},
		{name: "unknown container size", pod: "HAMBURG", containerType: "45HC", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, ok := table.Lookup(tt.pod, tt.containerType)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRate, rate)
			}
		})
	}
}

func TestProcess_TotalsAndRanks(t *testing.T) {
	rows := []model.RateRow{
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", TransportMode: "RAIL", ContainerType: "40HC", InlandRate: 800},
		{Destination: "MUNICH, GERMANY", POD: "ROTTERDAM", TransportMode: "TRUCK", ContainerType: "40HC", InlandRate: 850},
		{Destination: "MUNICH, GERMANY", POD: "ANTWERP", TransportMode: "TRUCK", ContainerType: "40HC", InlandRate: 900},
	}

	processed := Process(rows, testOceanRates())
	require.Len(t, processed, 3)

	// Totals: HAMBURG 2800, ROTTERDAM 2750, ANTWERP 2850. Output comes back
	// ordered by rank within the group.
	assert.Equal(t, "ROTTERDAM", processed[0].POD)
	assert.Equal(t, 2750.0, processed[0].TotalRate)
	assert.Equal(t, 1, processed[0].CostRank)

	assert.Equal(t, "HAMBURG", processed[1].POD)
	assert.Equal(t, 2800.0, processed[1].TotalRate)
	assert.Equal(t, 2, processed[1].CostRank)

	assert.Equal(t, "ANTWERP", processed[2].POD)
	assert.Equal(t, 2850.0, processed[2].TotalRate)
	assert.Equal(t, 3, processed[2].CostRank)

	for _, row := range processed {
		assert.Equal(t, 3, row.TotalRoutes)
	}
}

func TestProcess_DenseRankOnEqualTotals(t *testing.T) {
	// HAMBURG and ANTWERP end at the same total; they share rank 1 and the
	// next distinct total takes rank 2, with POD order deterministic.
	rows := []model.RateRow{
		{Destination: "LYON, FRANCE", POD: "HAMBURG", ContainerType: "20DRY", InlandRate: 500},  // 1700
		{Destination: "LYON, FRANCE", POD: "ANTWERP", ContainerType: "20DRY", InlandRate: 550},  // 1700
		{Destination: "LYON, FRANCE", POD: "ROTTERDAM", ContainerType: "20DRY", InlandRate: 700}, // 1800
	}

	processed := Process(rows, testOceanRates())
	require.Len(t, processed, 3)

	assert.Equal(t, "ANTWERP", processed[0].POD)
	assert.Equal(t, 1, processed[0].CostRank)
	assert.Equal(t, "HAMBURG", processed[1].POD)
	assert.Equal(t, 1, processed[1].CostRank)
	assert.Equal(t, "ROTTERDAM", processed[2].POD)
	assert.Equal(t, 2, processed[2].CostRank)
}

func TestProcess_GroupsRankIndependently(t *testing.T) {
	rows := []model.RateRow{
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", ContainerType: "20DRY", InlandRate: 800},
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", ContainerType: "40HC", InlandRate: 800},
		{Destination: "VIENNA, AUSTRIA", POD: "HAMBURG", ContainerType: "20DRY", InlandRate: 950},
	}

	processed := Process(rows, testOceanRates())
	require.Len(t, processed, 3)
	for _, row := range processed {
		assert.Equal(t, 1, row.CostRank, "each destination+container group ranks from 1")
		assert.Equal(t, 1, row.TotalRoutes)
	}
}

func TestProcess_MissingOceanRate(t *testing.T) {
	rows := []model.RateRow{
		{Destination: "MADRID, SPAIN", POD: "SANTOS", ContainerType: "20DRY", InlandRate: 400},
	}

	processed := Process(rows, testOceanRates())
	require.Len(t, processed, 1)
	assert.Equal(t, 0.0, processed[0].OceanRate)
	assert.Equal(t, 400.0, processed[0].TotalRate)
	assert.Equal(t, "no ocean rate for POD", processed[0].Remarks)
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	rows := []model.RateRow{
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", ContainerType: "20DRY", InlandRate: 800},
	}

	Process(rows, testOceanRates())
	assert.Equal(t, 0.0, rows[0].TotalRate, "input rows must stay untouched")
	assert.Equal(t, 0, rows[0].CostRank)
}

func TestRoutesFor(t *testing.T) {
	rows := []model.RateRow{
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", TransportMode: "RAIL", ContainerType: "40HC", InlandRate: 800},
		{Destination: "MUNICH, GERMANY", POD: "ROTTERDAM", TransportMode: "TRUCK", ContainerType: "40HC", InlandRate: 850},
		{Destination: "MUNICH, GERMANY", POD: "HAMBURG", TransportMode: "RAIL", ContainerType: "20DRY", InlandRate: 500},
	}
	processed := Process(rows, testOceanRates())

	routes := RoutesFor(processed, "MUNICH, GERMANY", "40HC")
	require.Len(t, routes, 2)
	assert.Equal(t, 1, routes[0].Rank)
	assert.Equal(t, "ROTTERDAM", routes[0].POD)
	assert.Equal(t, 2, routes[1].Rank)
	assert.Equal(t, "HAMBURG", routes[1].POD)

	assert.Empty(t, RoutesFor(processed, "MUNICH, GERMANY", "45HC"))
	assert.Empty(t, RoutesFor(processed, "UNKNOWN, NOWHERE", "40HC"))
}
