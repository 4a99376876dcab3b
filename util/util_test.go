package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(40, Clamp(12, 40, 160))
	assert.Equal(160, Clamp(200, 40, 160))
	assert.Equal(90, Clamp(90, 40, 160))
}

func TestMinMaxMean(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Min(5, 2, 9))
	assert.Equal(9, Max(5, 2, 9))
	assert.Equal(0, Min[int]())
	assert.InDelta(5.0, Mean([]int{4, 5, 6}), 1e-9)
	assert.Equal(0.0, Mean([]int{}))
	assert.Equal(3, Abs(-3))
}
