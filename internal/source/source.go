// Package source provides the incident data sources the heatmap reads from.
package source

import (
	"context"
	"errors"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// ErrDataFetch marks network, status or decode failures from an incident source
var ErrDataFetch = errors.New("incident data fetch failed")

// IncidentSource fetches raw incident points for a bounding box.
// Returned slices must be treated as immutable.
type IncidentSource interface {
	Fetch(ctx context.Context, bounds models.BoundingBox) ([]models.IncidentPoint, error)
	Name() string
}
