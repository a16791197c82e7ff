package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	s := computeProgress(500, 250, 1000, 1.0, 5.0)
	assert.Equal(t, int64(500), s.done)
	assert.InDelta(t, 50.0, s.percent, 1e-9)
	assert.InDelta(t, 250.0, s.rate, 1e-9)
	assert.InDelta(t, 5.0, s.elapsed, 1e-9)
	assert.InDelta(t, 2.0, s.eta, 1e-9)
}

func TestComputeProgressZeroRate(t *testing.T) {
	// Stalled interval: no rate, and no estimate instead of infinity
	s := computeProgress(100, 100, 1000, 1.0, 3.0)
	assert.Zero(t, s.rate)
	assert.Zero(t, s.eta)
}

func TestComputeProgressClampsInterval(t *testing.T) {
	s := computeProgress(10, 0, 100, 0, 1.0)
	assert.False(t, math.IsInf(s.rate, 1))
	assert.InDelta(t, 1e7, s.rate, 1e-3)
}

func TestComputeProgressCompleted(t *testing.T) {
	s := computeProgress(1000, 900, 1000, 1.0, 10.0)
	assert.InDelta(t, 100.0, s.percent, 1e-9)
	assert.Zero(t, s.eta)
}

func TestComputeProgressEmptySpace(t *testing.T) {
	s := computeProgress(0, 0, 0, 1.0, 0.5)
	assert.InDelta(t, 100.0, s.percent, 1e-9)
	assert.Zero(t, s.eta)
}
