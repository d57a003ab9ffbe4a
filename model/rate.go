package model

// RateRow is one collected lane: an inland rate from a carrier site joined
// with the matching ocean freight rate for the port of discharge.
type RateRow struct {
	Destination   string  `json:"destination"`    // "CITY, COUNTRY" as resolved
	POD           string  `json:"pod"`            // port of discharge
	TransportMode string  `json:"transport_mode"` // e.g. "TRUCK", "RAIL"
	ContainerType string  `json:"container_type"` // e.g. "20DRY", "40HC"
	Currency      string  `json:"currency"`
	InlandRate    float64 `json:"inland_rate"`
	OceanRate     float64 `json:"ocean_rate"`
	TotalRate     float64 `json:"total_rate"`
	CostRank      int     `json:"cost_rank"`    // 1 = cheapest within destination+container
	TotalRoutes   int     `json:"total_routes"` // number of ranked routes in the same group
	Remarks       string  `json:"remarks,omitempty"`
}

// OceanRate holds the per-container-size ocean freight for one POD.
type OceanRate struct {
	POD    string  `json:"pod"`
	Rate20 float64 `json:"rate_20"`
	Rate40 float64 `json:"rate_40"`
}

// RouteOption is the API-facing view of a ranked route for one
// destination + container type.
type RouteOption struct {
	Rank       int     `json:"rank"`
	POD        string  `json:"pod"`
	Mode       string  `json:"mode"`
	Remarks    string  `json:"remarks,omitempty"`
	TotalRate  float64 `json:"total_rate"`
	OceanRate  float64 `json:"ocean_rate"`
	InlandRate float64 `json:"inland_rate"`
}
