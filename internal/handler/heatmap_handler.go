package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/incident-heatmap-go/internal/config"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/service"
	"github.com/jengzang/incident-heatmap-go/internal/spatial"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
	"github.com/jengzang/incident-heatmap-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for one-off heatmaps
type HeatmapHandler struct {
	service *service.HeatmapService
	cfg     config.HeatmapConfig
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService, cfg config.HeatmapConfig) *HeatmapHandler {
	return &HeatmapHandler{service: service, cfg: cfg}
}

// GetHeatmap handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid query parameters", err))
		return
	}

	req, err := buildRequest(h.cfg, filter.Bounds(), filter.Rows, filter.Cols, filter.Scale, filter.OmitEmpty)
	if err != nil {
		response.Fail(c, err)
		return
	}

	resp, err := h.service.Build(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, resp)
}

// buildRequest fills grid and scale defaults from cfg. Zero rows or cols take the default.
func buildRequest(cfg config.HeatmapConfig, bounds models.BoundingBox, rows, cols int, scale string, omitEmpty bool) (service.HeatmapRequest, error) {
	if rows == 0 {
		rows = cfg.DefaultRows
	}
	if cols == 0 {
		cols = cfg.DefaultCols
	}

	def, err := spatial.ParseScale(cfg.Scale, spatial.ScaleLinear)
	if err != nil {
		def = spatial.ScaleLinear
	}
	s, err := spatial.ParseScale(scale, def)
	if err != nil {
		return service.HeatmapRequest{}, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid scale", err)
	}

	return service.HeatmapRequest{
		Bounds:    bounds,
		Grid:      models.GridSize{Rows: rows, Cols: cols},
		Scale:     s,
		OmitEmpty: omitEmpty,
	}, nil
}
