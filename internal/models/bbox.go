package models

// BoundingBox is a rectangular region in degrees.
// West < East and South < North; boxes crossing the antimeridian are not supported.
type BoundingBox struct {
	West  float64 `json:"west" form:"west"`
	South float64 `json:"south" form:"south"`
	East  float64 `json:"east" form:"east"`
	North float64 `json:"north" form:"north"`
}

// GridSize is the row/column count used to partition a BoundingBox
type GridSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns rows*cols. Check Within first for untrusted sizes.
func (g GridSize) Cells() int {
	return g.Rows * g.Cols
}

// Within reports whether rows*cols <= limit without computing the product.
// Non-positive dimensions are never within.
func (g GridSize) Within(limit int) bool {
	if g.Rows < 1 || g.Cols < 1 {
		return false
	}
	return g.Rows <= limit/g.Cols
}

// LatLng is a single position in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
