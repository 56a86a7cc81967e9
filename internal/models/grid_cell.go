package models

// GridCell is one rectangular subdivision of the outer bounding box
type GridCell struct {
	Row       int         `json:"row"` // 0 is the southern row
	Col       int         `json:"col"` // 0 is the western column
	Bounds    BoundingBox `json:"bounds"`
	Weight    float64     `json:"weight"`    // Summed incident weight
	Intensity float64     `json:"intensity"` // Normalized 0-1, set by the intensity scale
}
