package models

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Bounds        BoundingBox `json:"bounds"`
	Grid          GridSize    `json:"grid"`
	Cells         []GridCell  `json:"cells"`
	Count         int         `json:"count"`
	TotalWeight   float64     `json:"total_weight"`
	MaxWeight     float64     `json:"max_weight"`
	PointCount    int         `json:"point_count"`    // Points that landed in a cell
	ExcludedCount int         `json:"excluded_count"` // Points outside the box or malformed
	Scale         string      `json:"scale"`          // "linear", "log"
	CellAreaKm2   float64     `json:"cell_area_km2"`
	CellWidthM    float64     `json:"cell_width_m"`
	CellHeightM   float64     `json:"cell_height_m"`

	CellStats CellWeightStats `json:"cell_stats"`
	Centroid  *LatLng         `json:"centroid,omitempty"` // Weighted center of non-empty cells
}

// CellWeightStats summarizes the weights of non-empty cells
type CellWeightStats struct {
	NonEmpty int     `json:"non_empty"`
	Mean     float64 `json:"mean"`
	P50      float64 `json:"p50"`
	P90      float64 `json:"p90"`
	P99      float64 `json:"p99"`
}
