package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScale(t *testing.T) {
	s, err := ParseScale("", ScaleLog)
	require.NoError(t, err)
	assert.Equal(t, ScaleLog, s)

	s, err = ParseScale(" LINEAR ", ScaleLog)
	require.NoError(t, err)
	assert.Equal(t, ScaleLinear, s)

	_, err = ParseScale("cubic", ScaleLinear)
	require.Error(t, err)
}

func TestScaleIntensity(t *testing.T) {
	assert.Equal(t, 0.25, ScaleLinear.Intensity(1, 4))
	assert.Equal(t, 1.0, ScaleLinear.Intensity(4, 4))
	assert.Zero(t, ScaleLinear.Intensity(0, 4))
	assert.Zero(t, ScaleLinear.Intensity(-2, 4))
	assert.Zero(t, ScaleLinear.Intensity(3, 0))

	assert.InDelta(t, math.Log(2)/math.Log(5), ScaleLog.Intensity(1, 4), 1e-12)
	assert.Equal(t, 1.0, ScaleLog.Intensity(4, 4))
}
