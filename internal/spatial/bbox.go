package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

var (
	// ErrInvalidBounds is returned when a bounding box violates west < east, south < north
	// or carries coordinates outside the valid lat/lng range.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidGridSize is returned when rows or cols is not positive or the
	// grid has more than MaxGridCells cells
	ErrInvalidGridSize = errors.New("invalid grid size")
)

// MaxGridCells bounds rows*cols for a single grid
const MaxGridCells = 1 << 24

// ValidateBounds checks the bounding box invariant
func ValidateBounds(b models.BoundingBox) error {
	for _, v := range []float64{b.West, b.South, b.East, b.North} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidBounds)
		}
	}
	if b.South < -90 || b.North > 90 {
		return fmt.Errorf("%w: latitude must be within [-90, 90]", ErrInvalidBounds)
	}
	if b.West < -180 || b.East > 180 {
		return fmt.Errorf("%w: longitude must be within [-180, 180]", ErrInvalidBounds)
	}
	if b.West >= b.East {
		return fmt.Errorf("%w: west (%g) must be less than east (%g)", ErrInvalidBounds, b.West, b.East)
	}
	if b.South >= b.North {
		return fmt.Errorf("%w: south (%g) must be less than north (%g)", ErrInvalidBounds, b.South, b.North)
	}
	return nil
}

// ValidateGridSize checks rows >= 1, cols >= 1 and rows*cols <= MaxGridCells
func ValidateGridSize(size models.GridSize) error {
	if size.Rows < 1 || size.Cols < 1 {
		return fmt.Errorf("%w: rows (%d) and cols (%d) must be at least 1", ErrInvalidGridSize, size.Rows, size.Cols)
	}
	if !size.Within(MaxGridCells) {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidGridSize, size.Rows, size.Cols, MaxGridCells)
	}
	return nil
}

// Contains reports whether the point lies inside the closed box.
// NaN coordinates are never contained.
func Contains(b models.BoundingBox, lat, lng float64) bool {
	return latInterval(b).Contains(lat) && lngInterval(b).Contains(lng)
}

// Rect converts the box into an S2 lat/lng rectangle
func Rect(b models.BoundingBox) s2.Rect {
	return s2.Rect{
		Lat: r1.Interval{
			Lo: (s1.Angle(b.South) * s1.Degree).Radians(),
			Hi: (s1.Angle(b.North) * s1.Degree).Radians(),
		},
		Lng: s1.IntervalFromEndpoints(
			(s1.Angle(b.West)*s1.Degree).Radians(),
			(s1.Angle(b.East)*s1.Degree).Radians(),
		),
	}
}

func latInterval(b models.BoundingBox) r1.Interval {
	return r1.Interval{Lo: b.South, Hi: b.North}
}

func lngInterval(b models.BoundingBox) r1.Interval {
	return r1.Interval{Lo: b.West, Hi: b.East}
}
