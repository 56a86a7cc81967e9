package spatial

import (
	"math"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// Summary describes a bucketize run
type Summary struct {
	TotalWeight float64 // Sum of accepted point weights
	MaxWeight   float64 // Largest cell weight, never below 0
	Accepted    int     // Points that landed in a cell
	Excluded    int     // Points outside the box or with non-finite values
}

type options struct {
	omitEmpty bool
	scale     Scale
}

// Option configures Bucketize
type Option func(*options)

// OmitEmpty drops zero-weight cells from the output. Relative order is preserved.
func OmitEmpty() Option {
	return func(o *options) { o.omitEmpty = true }
}

// WithScale sets the intensity scale used to fill GridCell.Intensity
func WithScale(s Scale) Option {
	return func(o *options) { o.scale = s }
}

// Bucketize partitions outer into size.Rows x size.Cols equal cells and sums the
// weight of every point into its containing cell.
//
// Cells are returned row-major: row 0 is the southern row and columns run west
// to east. Points exactly on the east or north edge belong to the last column
// or row. Points outside the box are excluded.
func Bucketize(outer models.BoundingBox, points []models.IncidentPoint, size models.GridSize, opts ...Option) ([]models.GridCell, error) {
	cells, _, err := BucketizeWithSummary(outer, points, size, opts...)
	return cells, err
}

// BucketizeWithSummary is Bucketize that also reports totals
func BucketizeWithSummary(outer models.BoundingBox, points []models.IncidentPoint, size models.GridSize, opts ...Option) ([]models.GridCell, Summary, error) {
	if err := ValidateBounds(outer); err != nil {
		return nil, Summary{}, err
	}
	if err := ValidateGridSize(size); err != nil {
		return nil, Summary{}, err
	}

	o := options{scale: ScaleLinear}
	for _, opt := range opts {
		opt(&o)
	}

	cellWidth := (outer.East - outer.West) / float64(size.Cols)
	cellHeight := (outer.North - outer.South) / float64(size.Rows)

	var sum Summary
	weights := make([]float64, size.Cells())
	for _, p := range points {
		if math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) || !Contains(outer, p.Lat, p.Lng) {
			sum.Excluded++
			continue
		}
		col := bucketIndex(p.Lng-outer.West, cellWidth, size.Cols)
		row := bucketIndex(p.Lat-outer.South, cellHeight, size.Rows)
		weights[row*size.Cols+col] += p.Weight
		sum.TotalWeight += p.Weight
		sum.Accepted++
	}

	for _, w := range weights {
		if w > sum.MaxWeight {
			sum.MaxWeight = w
		}
	}

	capacity := len(weights)
	if o.omitEmpty {
		capacity = sum.Accepted
		if capacity > len(weights) {
			capacity = len(weights)
		}
	}
	cells := make([]models.GridCell, 0, capacity)
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			w := weights[row*size.Cols+col]
			if o.omitEmpty && w == 0 {
				continue
			}
			cells = append(cells, models.GridCell{
				Row:       row,
				Col:       col,
				Bounds:    CellBounds(outer, size, row, col),
				Weight:    w,
				Intensity: o.scale.Intensity(w, sum.MaxWeight),
			})
		}
	}

	return cells, sum, nil
}

// CellBounds returns the bounds of the cell at (row, col). Adjacent cells share
// bit-identical edges and the outermost edges equal the outer box exactly.
func CellBounds(outer models.BoundingBox, size models.GridSize, row, col int) models.BoundingBox {
	return models.BoundingBox{
		West:  lerp(outer.West, outer.East, col, size.Cols),
		South: lerp(outer.South, outer.North, row, size.Rows),
		East:  lerp(outer.West, outer.East, col+1, size.Cols),
		North: lerp(outer.South, outer.North, row+1, size.Rows),
	}
}

func lerp(lo, hi float64, i, n int) float64 {
	switch i {
	case 0:
		return lo
	case n:
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(n)
}

// bucketIndex floors offset/step and clamps into [0, n-1]
func bucketIndex(offset, step float64, n int) int {
	idx := int(math.Floor(offset / step))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
