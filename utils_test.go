package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberLarge(t *testing.T) {
	assert.Equal(t, "999", formatNumberLarge(999))
	assert.Equal(t, "1.50K", formatNumberLarge(1500))
	assert.Equal(t, "2.00M", formatNumberLarge(2000000))
	assert.Equal(t, "3.50B", formatNumberLarge(3500000000))
	assert.Equal(t, "1.50T", formatNumberLarge(1500000000000))
}

func TestFormatDurationDetailed(t *testing.T) {
	assert.Equal(t, "30.0s", formatDurationDetailed(30*time.Second))
	assert.Equal(t, "1m30s", formatDurationDetailed(90*time.Second))
	assert.Equal(t, "2h5m", formatDurationDetailed(2*time.Hour+5*time.Minute))
}

func TestGetHostnameSafe(t *testing.T) {
	assert.NotEmpty(t, getHostnameSafe())
}
