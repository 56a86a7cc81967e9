package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// AreaKm2 returns the surface area of the box in square kilometers
func AreaKm2(b models.BoundingBox) float64 {
	return Rect(b).Area() * EarthRadiusKm * EarthRadiusKm
}

// SpanMeters returns the east-west width (measured along the middle latitude)
// and the north-south height of the box in meters
func SpanMeters(b models.BoundingBox) (width, height float64) {
	midLat := (b.South + b.North) / 2
	width = HaversineDistance(midLat, b.West, midLat, b.East)
	height = HaversineDistance(b.South, b.West, b.North, b.West)
	return width, height
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)
