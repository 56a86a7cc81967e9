package spatial

import (
	"fmt"
	"math"
	"strings"
)

// Scale maps a cell weight to a render intensity in [0, 1]
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale parses "linear" or "log"; empty input yields def.
func ParseScale(s string, def Scale) (Scale, error) {
	switch Scale(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case ScaleLinear:
		return ScaleLinear, nil
	case ScaleLog:
		return ScaleLog, nil
	default:
		return "", fmt.Errorf("unknown intensity scale %q", s)
	}
}

// Intensity returns weight relative to maxWeight. Non-positive inputs map to 0.
func (s Scale) Intensity(weight, maxWeight float64) float64 {
	if weight <= 0 || maxWeight <= 0 {
		return 0
	}

	var v float64
	switch s {
	case ScaleLog:
		v = math.Log1p(weight) / math.Log1p(maxWeight)
	default:
		v = weight / maxWeight
	}
	return math.Min(v, 1)
}
