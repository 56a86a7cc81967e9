// Package overlay owns the visible heatmap overlay. Each refresh is a numbered
// generation and only the most recently started generation may replace the
// visible state.
package overlay

import (
	"time"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// Status of the overlay as shown to the map UI
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// UnableToLoadMessage is the user facing message for fetch failures
const UnableToLoadMessage = "unable to load data"

// State is an immutable snapshot of the overlay.
// Heatmap is shared between snapshots and must not be modified.
type State struct {
	Generation uint64                  `json:"generation"` // Latest initiated refresh
	Status     Status                  `json:"status"`
	Bounds     models.BoundingBox      `json:"bounds"` // Requested while loading, of the visible cells otherwise
	Grid       models.GridSize         `json:"grid"`
	Heatmap    *models.HeatmapResponse `json:"heatmap,omitempty"` // Last successful result
	Error      string                  `json:"error,omitempty"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// Cells returns the visible cells, nil when nothing has loaded yet
func (s State) Cells() []models.GridCell {
	if s.Heatmap == nil {
		return nil
	}
	return s.Heatmap.Cells
}

// Begin returns the state shown while generation gen is loading.
// Previously loaded cells stay visible.
func Begin(prev State, gen uint64, bounds models.BoundingBox, grid models.GridSize, now time.Time) State {
	next := prev
	next.Generation = gen
	next.Status = StatusLoading
	next.Bounds = bounds
	next.Grid = grid
	next.Error = ""
	next.UpdatedAt = now
	return next
}

// Apply returns the state after generation gen finished with resp or err.
// On error the previous cells are kept, together with the bounds and grid
// they were built for, and the state is marked as failed.
func Apply(prev State, gen uint64, resp *models.HeatmapResponse, err error, now time.Time) State {
	next := prev
	next.Generation = gen
	next.UpdatedAt = now
	if err != nil {
		next.Status = StatusError
		next.Error = UnableToLoadMessage
		if prev.Heatmap != nil {
			next.Bounds = prev.Heatmap.Bounds
			next.Grid = prev.Heatmap.Grid
		}
		return next
	}

	next.Status = StatusReady
	next.Error = ""
	next.Heatmap = resp
	next.Bounds = resp.Bounds
	next.Grid = resp.Grid
	return next
}
