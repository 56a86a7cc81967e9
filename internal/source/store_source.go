package source

import (
	"context"
	"fmt"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// IncidentFinder is the read side of the incident repository
type IncidentFinder interface {
	FindInBounds(ctx context.Context, b models.BoundingBox, limit int) ([]models.IncidentPoint, error)
}

// StoreSource reads incidents from the local SQLite store
type StoreSource struct {
	finder IncidentFinder
}

// NewStoreSource wraps an IncidentFinder
func NewStoreSource(finder IncidentFinder) *StoreSource {
	return &StoreSource{finder: finder}
}

// Name implements IncidentSource
func (s *StoreSource) Name() string {
	return "store"
}

// Fetch implements IncidentSource. Every stored incident in b is returned so
// the heatmap sums all of them.
func (s *StoreSource) Fetch(ctx context.Context, b models.BoundingBox) ([]models.IncidentPoint, error) {
	points, err := s.finder.FindInBounds(ctx, b, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFetch, err)
	}
	return points, nil
}
