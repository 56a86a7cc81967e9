package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/incident-heatmap-go/internal/config"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/overlay"
	"github.com/jengzang/incident-heatmap-go/internal/render"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
	"github.com/jengzang/incident-heatmap-go/pkg/response"
)

// OverlayHandler handles HTTP requests for the shared overlay
type OverlayHandler struct {
	controller *overlay.Controller
	renderer   *render.GeoJSONRenderer
	cfg        config.HeatmapConfig
}

// NewOverlayHandler creates a new overlay handler
func NewOverlayHandler(controller *overlay.Controller, renderer *render.GeoJSONRenderer, cfg config.HeatmapConfig) *OverlayHandler {
	return &OverlayHandler{controller: controller, renderer: renderer, cfg: cfg}
}

// Refresh handles POST /api/v1/overlay/refresh
func (h *OverlayHandler) Refresh(c *gin.Context) {
	var body models.OverlayRefreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid request body", err))
		return
	}

	req, err := buildRequest(h.cfg, body.Bounds, body.Rows, body.Cols, body.Scale, body.OmitEmpty)
	if err != nil {
		response.Fail(c, err)
		return
	}

	state, err := h.controller.Refresh(c.Request.Context(), req)
	switch {
	case errors.Is(err, overlay.ErrSuperseded):
		response.Success(c, gin.H{"state": state, "superseded": true})
	case err != nil:
		response.Fail(c, err)
	default:
		response.Success(c, gin.H{"state": state, "superseded": false})
	}
}

// GetState handles GET /api/v1/overlay
func (h *OverlayHandler) GetState(c *gin.Context) {
	response.Success(c, h.controller.State())
}

// GetGeoJSON handles GET /api/v1/overlay/geojson
func (h *OverlayHandler) GetGeoJSON(c *gin.Context) {
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, h.renderer.Last())
}
