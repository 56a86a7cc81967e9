package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/incident-heatmap-go/internal/metrics"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/source"
	"github.com/jengzang/incident-heatmap-go/internal/spatial"
	"github.com/jengzang/incident-heatmap-go/internal/stats"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

// HeatmapRequest describes one fetch-and-bucketize run
type HeatmapRequest struct {
	Bounds    models.BoundingBox
	Grid      models.GridSize
	Scale     spatial.Scale
	OmitEmpty bool
}

// HeatmapService fetches incidents for a bounding box and buckets them into a grid
type HeatmapService struct {
	source   source.IncidentSource
	metrics  *metrics.Metrics
	logger   *zap.Logger
	maxCells int
}

// NewHeatmapService creates a new heatmap service. maxCells <= 0 means no limit.
func NewHeatmapService(src source.IncidentSource, m *metrics.Metrics, logger *zap.Logger, maxCells int) *HeatmapService {
	return &HeatmapService{
		source:   src,
		metrics:  m,
		logger:   logger.Named("heatmap"),
		maxCells: maxCells,
	}
}

// Validate checks a request without doing any I/O
func (s *HeatmapService) Validate(req HeatmapRequest) error {
	if err := spatial.ValidateBounds(req.Bounds); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidBounds, "invalid bounding box", err)
	}
	if err := spatial.ValidateGridSize(req.Grid); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidGridSize, "invalid grid size", err)
	}
	if s.maxCells > 0 && !req.Grid.Within(s.maxCells) {
		err := fmt.Errorf("%w: %dx%d exceeds the limit of %d cells", spatial.ErrInvalidGridSize, req.Grid.Rows, req.Grid.Cols, s.maxCells)
		return apperrors.Wrap(apperrors.CodeInvalidGridSize, "invalid grid size", err)
	}
	return nil
}

// Build validates the request, fetches incidents and buckets them.
// Fetch failures are returned with code data_fetch_failure.
func (s *HeatmapService) Build(ctx context.Context, req HeatmapRequest) (*models.HeatmapResponse, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	points, err := s.fetch(ctx, req.Bounds)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDataFetchFailure, "unable to load data", err)
	}

	return s.Bucketize(req, points)
}

// Bucketize turns already fetched points into a heatmap response
func (s *HeatmapService) Bucketize(req HeatmapRequest, points []models.IncidentPoint) (*models.HeatmapResponse, error) {
	opts := []spatial.Option{spatial.WithScale(req.Scale)}
	if req.OmitEmpty {
		opts = append(opts, spatial.OmitEmpty())
	}

	start := time.Now()
	cells, sum, err := spatial.BucketizeWithSummary(req.Bounds, points, req.Grid, opts...)
	if err != nil {
		return nil, classify(err)
	}
	s.metrics.BucketizeDuration.Observe(time.Since(start).Seconds())
	s.metrics.BucketizePoints.Observe(float64(len(points)))

	if sum.Excluded > 0 {
		s.logger.Debug("excluded incidents outside bounds",
			zap.Int("excluded", sum.Excluded),
			zap.Int("accepted", sum.Accepted))
	}

	cell := spatial.CellBounds(req.Bounds, req.Grid, 0, 0)
	width, height := spatial.SpanMeters(cell)

	resp := &models.HeatmapResponse{
		Bounds:        req.Bounds,
		Grid:          req.Grid,
		Cells:         cells,
		Count:         len(cells),
		TotalWeight:   sum.TotalWeight,
		MaxWeight:     sum.MaxWeight,
		PointCount:    sum.Accepted,
		ExcludedCount: sum.Excluded,
		Scale:         string(req.Scale),
		CellAreaKm2:   spatial.AreaKm2(cell),
		CellWidthM:    width,
		CellHeightM:   height,
		CellStats:     stats.CellWeights(cells),
	}
	if centroid, ok := spatial.WeightedCentroid(cells); ok {
		resp.Centroid = &centroid
	}
	return resp, nil
}

func (s *HeatmapService) fetch(ctx context.Context, b models.BoundingBox) ([]models.IncidentPoint, error) {
	name := s.source.Name()
	start := time.Now()
	points, err := s.source.Fetch(ctx, b)
	s.metrics.FetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchTotal.WithLabelValues(name, "error").Inc()
		s.logger.Warn("incident fetch failed", zap.String("source", name), zap.Error(err))
		return nil, err
	}
	s.metrics.FetchTotal.WithLabelValues(name, "ok").Inc()
	return points, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, spatial.ErrInvalidBounds):
		return apperrors.Wrap(apperrors.CodeInvalidBounds, "invalid bounding box", err)
	case errors.Is(err, spatial.ErrInvalidGridSize):
		return apperrors.Wrap(apperrors.CodeInvalidGridSize, "invalid grid size", err)
	default:
		return err
	}
}
