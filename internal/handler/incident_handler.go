package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/incident-heatmap-go/internal/middleware"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/service"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
	"github.com/jengzang/incident-heatmap-go/pkg/response"
)

// IncidentHandler handles HTTP requests for stored incidents
type IncidentHandler struct {
	service *service.IncidentService
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(service *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// ListIncidents handles GET /api/v1/incidents.
// The body is a bare JSON array of {lat, lng, weight} so the endpoint can feed
// another instance's http incident source.
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	var filter models.IncidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid query parameters", err))
		return
	}

	points, err := h.service.List(c.Request.Context(), filter.Bounds(), filter.Limit)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// IngestIncidents handles POST /api/v1/incidents
func (h *IncidentHandler) IngestIncidents(c *gin.Context) {
	var points []models.IncidentPoint
	if err := c.ShouldBindJSON(&points); err != nil {
		response.Fail(c, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid request body", err))
		return
	}

	source := "api"
	if session, ok := middleware.SessionFrom(c); ok {
		source = "api:" + session.Subject
	}

	n, err := h.service.Ingest(c.Request.Context(), points, source)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, gin.H{"inserted": n})
}
