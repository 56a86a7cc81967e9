package spatial

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// WeightedCentroid returns the weight-averaged center of the cells, summed as
// unit vectors on the sphere. ok is false when no cell carries weight.
func WeightedCentroid(cells []models.GridCell) (models.LatLng, bool) {
	var sum r3.Vector
	var total float64
	for _, c := range cells {
		if c.Weight <= 0 {
			continue
		}
		center := s2.LatLngFromDegrees((c.Bounds.South+c.Bounds.North)/2, (c.Bounds.West+c.Bounds.East)/2)
		sum = sum.Add(s2.PointFromLatLng(center).Vector.Mul(c.Weight))
		total += c.Weight
	}
	if total == 0 || sum.Norm() == 0 {
		return models.LatLng{}, false
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return models.LatLng{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}, true
}
