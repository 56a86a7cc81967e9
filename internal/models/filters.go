package models

// HeatmapFilter represents query parameters for the heatmap endpoint
type HeatmapFilter struct {
	West      *float64 `form:"west" binding:"required"`
	South     *float64 `form:"south" binding:"required"`
	East      *float64 `form:"east" binding:"required"`
	North     *float64 `form:"north" binding:"required"`
	Rows      int      `form:"rows"`
	Cols      int      `form:"cols"`
	Scale     string   `form:"scale"`     // linear, log
	OmitEmpty bool     `form:"omitEmpty"` // Drop zero-weight cells
}

// Bounds converts the bound query parameters into a BoundingBox
func (f HeatmapFilter) Bounds() BoundingBox {
	return BoundingBox{West: deref(f.West), South: deref(f.South), East: deref(f.East), North: deref(f.North)}
}

// IncidentFilter represents query parameters for listing incidents
type IncidentFilter struct {
	West  *float64 `form:"west" binding:"required"`
	South *float64 `form:"south" binding:"required"`
	East  *float64 `form:"east" binding:"required"`
	North *float64 `form:"north" binding:"required"`
	Limit int      `form:"limit"` // Max incidents to return
}

// Bounds converts the bound query parameters into a BoundingBox
func (f IncidentFilter) Bounds() BoundingBox {
	return BoundingBox{West: deref(f.West), South: deref(f.South), East: deref(f.East), North: deref(f.North)}
}

// OverlayRefreshRequest is the body of POST /api/v1/overlay/refresh
type OverlayRefreshRequest struct {
	Bounds    BoundingBox `json:"bounds"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Scale     string      `json:"scale"`
	OmitEmpty bool        `json:"omit_empty"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
