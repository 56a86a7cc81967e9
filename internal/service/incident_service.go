package service

import (
	"context"
	"fmt"
	"math"

	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/repository"
	"github.com/jengzang/incident-heatmap-go/internal/spatial"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

// MaxIngestBatch caps a single ingest request
const MaxIngestBatch = 10000

// IncidentService handles business logic for stored incidents
type IncidentService struct {
	repo *repository.IncidentRepository
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo *repository.IncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

// List returns stored incidents inside the bounding box
func (s *IncidentService) List(ctx context.Context, b models.BoundingBox, limit int) ([]models.IncidentPoint, error) {
	if err := spatial.ValidateBounds(b); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidBounds, "invalid bounding box", err)
	}
	return s.repo.FindInBounds(ctx, b, limit)
}

// Ingest validates and stores a batch of incidents
func (s *IncidentService) Ingest(ctx context.Context, points []models.IncidentPoint, source string) (int, error) {
	if len(points) > MaxIngestBatch {
		return 0, apperrors.Wrap(apperrors.CodeInvalidRequest, fmt.Sprintf("batch exceeds %d incidents", MaxIngestBatch), nil)
	}
	for i, p := range points {
		if err := validatePoint(p); err != nil {
			return 0, apperrors.Wrap(apperrors.CodeInvalidRequest, fmt.Sprintf("incident %d", i), err)
		}
	}
	return s.repo.InsertBatch(ctx, points, source)
}

func validatePoint(p models.IncidentPoint) error {
	for _, v := range []float64{p.Lat, p.Lng, p.Weight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value")
		}
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %g out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %g out of range", p.Lng)
	}
	if p.Weight < 0 {
		return fmt.Errorf("weight %g must not be negative", p.Weight)
	}
	return nil
}
