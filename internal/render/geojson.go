// Package render turns overlay cells into GeoJSON polygons for the map widget.
package render

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/overlay"
)

// Style controls how intensity maps to polygon fill
type Style struct {
	MinOpacity float64
	MaxOpacity float64
	LowColor   [3]uint8
	HighColor  [3]uint8
}

// DefaultStyle fades from pale yellow to dark red
var DefaultStyle = Style{
	MinOpacity: 0.05,
	MaxOpacity: 0.75,
	LowColor:   [3]uint8{255, 255, 178},
	HighColor:  [3]uint8{189, 0, 38},
}

// GeoJSONRenderer implements overlay.MapRenderer by keeping the last rendered
// FeatureCollection for serving
type GeoJSONRenderer struct {
	style Style
	last  atomic.Pointer[geojson.FeatureCollection]
}

// NewGeoJSONRenderer creates a renderer using style
func NewGeoJSONRenderer(style Style) *GeoJSONRenderer {
	r := &GeoJSONRenderer{style: style}
	r.last.Store(geojson.NewFeatureCollection())
	return r
}

// Render implements overlay.MapRenderer
func (r *GeoJSONRenderer) Render(ctx context.Context, state overlay.State) error {
	fc := r.Collection(state.Cells())
	fc.ExtraMembers = geojson.Properties{
		"generation": state.Generation,
		"status":     string(state.Status),
	}
	if state.Error != "" {
		fc.ExtraMembers["error"] = state.Error
	}
	r.last.Store(fc)
	return nil
}

// Last returns the most recently rendered collection
func (r *GeoJSONRenderer) Last() *geojson.FeatureCollection {
	return r.last.Load()
}

// Collection builds one polygon feature per cell
func (r *GeoJSONRenderer) Collection(cells []models.GridCell) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cell := range cells {
		b := orb.Bound{
			Min: orb.Point{cell.Bounds.West, cell.Bounds.South},
			Max: orb.Point{cell.Bounds.East, cell.Bounds.North},
		}
		f := geojson.NewFeature(b.ToPolygon())
		f.Properties["row"] = cell.Row
		f.Properties["col"] = cell.Col
		f.Properties["weight"] = cell.Weight
		f.Properties["intensity"] = cell.Intensity
		f.Properties["fill"] = r.style.Color(cell.Intensity)
		f.Properties["fill-opacity"] = r.style.Opacity(cell.Intensity)
		fc.Append(f)
	}
	return fc
}

// Opacity maps intensity to fill opacity. Zero intensity cells are transparent.
func (s Style) Opacity(intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return s.MinOpacity + clamp01(intensity)*(s.MaxOpacity-s.MinOpacity)
}

// Color maps intensity to a hex color between LowColor and HighColor
func (s Style) Color(intensity float64) string {
	t := clamp01(intensity)
	var c [3]uint8
	for i := range c {
		lo, hi := float64(s.LowColor[i]), float64(s.HighColor[i])
		c[i] = uint8(math.Round(lo + (hi-lo)*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
