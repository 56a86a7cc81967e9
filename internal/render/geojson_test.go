package render

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/overlay"
)

func TestGeoJSONRendererRender(t *testing.T) {
	r := NewGeoJSONRenderer(DefaultStyle)
	require.Empty(t, r.Last().Features)

	state := overlay.State{
		Generation: 3,
		Status:     overlay.StatusReady,
		Heatmap: &models.HeatmapResponse{Cells: []models.GridCell{
			{Row: 0, Col: 0, Bounds: models.BoundingBox{West: -76, South: 40, East: -74, North: 40.65}, Weight: 3, Intensity: 1},
			{Row: 0, Col: 1, Bounds: models.BoundingBox{West: -74, South: 40, East: -72, North: 40.65}, Weight: 0},
		}},
	}
	require.NoError(t, r.Render(context.Background(), state))

	fc := r.Last()
	require.Len(t, fc.Features, 2)
	require.EqualValues(t, 3, fc.ExtraMembers["generation"])

	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	require.Equal(t, orb.Point{-76, 40}, poly[0][0])
	require.Equal(t, orb.Point{-74, 40.65}, poly[0][2])
	require.Equal(t, poly[0][0], poly[0][len(poly[0])-1])

	require.Equal(t, "#bd0026", fc.Features[0].Properties["fill"])
	require.InDelta(t, 0.75, fc.Features[0].Properties["fill-opacity"], 1e-9)
	require.Equal(t, 0.0, fc.Features[1].Properties["fill-opacity"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"FeatureCollection"`)
	require.Contains(t, string(data), `"status":"ready"`)
}

func TestStyle(t *testing.T) {
	require.Equal(t, "#ffffb2", DefaultStyle.Color(0))
	require.Equal(t, "#bd0026", DefaultStyle.Color(2))
	require.InDelta(t, 0.4, DefaultStyle.Opacity(0.5), 1e-9)
}
