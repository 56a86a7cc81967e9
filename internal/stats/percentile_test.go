package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

func TestPercentile(t *testing.T) {
	values := []float64{4, 1, 3, 2, 5}

	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 1.0, Percentile(values, 0))
	assert.Equal(t, 3.0, Percentile(values, 50))
	assert.Equal(t, 5.0, Percentile(values, 100))
	assert.InDelta(t, 4.6, Percentile(values, 90), 1e-9)
	assert.Equal(t, 5.0, Percentile(values, 150))
	assert.Equal(t, []float64{4, 1, 3, 2, 5}, values, "input must not be reordered")
}

func TestCellWeights(t *testing.T) {
	cells := []models.GridCell{{Weight: 4}, {Weight: 0}, {Weight: 0}, {Weight: 2}}

	got := CellWeights(cells)
	assert.Equal(t, 2, got.NonEmpty)
	assert.Equal(t, 3.0, got.Mean)
	assert.Equal(t, 3.0, got.P50)
	assert.InDelta(t, 3.8, got.P90, 1e-9)

	assert.Equal(t, models.CellWeightStats{}, CellWeights([]models.GridCell{{Weight: 0}}))
}
