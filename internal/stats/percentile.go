// Package stats summarizes heatmap cell weights.
package stats

import (
	"math"
	"sort"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// Percentile calculates the p-th percentile (0-100) of values.
// Uses linear interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	w := index - float64(lower)
	return sorted[lower]*(1-w) + sorted[upper]*w
}

// CellWeights describes the weights of cells that received at least one incident
func CellWeights(cells []models.GridCell) models.CellWeightStats {
	weights := make([]float64, 0, len(cells))
	var sum float64
	for _, c := range cells {
		if c.Weight > 0 {
			weights = append(weights, c.Weight)
			sum += c.Weight
		}
	}
	if len(weights) == 0 {
		return models.CellWeightStats{}
	}
	sort.Float64s(weights)

	return models.CellWeightStats{
		NonEmpty: len(weights),
		Mean:     sum / float64(len(weights)),
		P50:      percentileSorted(weights, 50),
		P90:      percentileSorted(weights, 90),
		P99:      percentileSorted(weights, 99),
	}
}
