package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridSizeWithin(t *testing.T) {
	assert.True(t, GridSize{Rows: 20, Cols: 20}.Within(400))
	assert.False(t, GridSize{Rows: 20, Cols: 21}.Within(400))
	assert.False(t, GridSize{Rows: 0, Cols: 5}.Within(400))
	assert.False(t, GridSize{Rows: 5, Cols: -1}.Within(400))
	assert.False(t, GridSize{Rows: 3037000500, Cols: 3037000500}.Within(math.MaxInt))
	assert.False(t, GridSize{Rows: math.MaxInt, Cols: 2}.Within(math.MaxInt))
	assert.True(t, GridSize{Rows: math.MaxInt, Cols: 1}.Within(math.MaxInt))
}
