package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	// Hand-checked against the polynomial definition
	assert.Equal(t, uint32(0xFFFFFFFF), encode(""))
	assert.Equal(t, uint32(0), encode("!"))
	assert.Equal(t, uint32(73029), encode("abc"))
	assert.Equal(t, uint32(0x7BBE7549), encode("Sat_ab"))
}

func TestEncodeMatchesWeightedSum(t *testing.T) {
	// encode is the weighted character sum minus one
	for _, s := range []string{"0", "z", "Satori", "Sat_ab", "ABC-_123", "0123456789abcdefghij"} {
		var sum uint32
		for i := 0; i < len(s); i++ {
			sum += weightTable[len(s)-1-i] * (uint32(s[i]) - 32)
		}
		assert.Equal(t, sum-1, encode(s), "string %q", s)
	}
}

func TestEncodeAppendStep(t *testing.T) {
	// Appending ch multiplies the running polynomial by 33 and adds ch-32
	prefix := encode("Sat_a")
	assert.Equal(t, (prefix+1)*33+uint32('b')-32-1, encode("Sat_ab"))
}

func TestParseTarget(t *testing.T) {
	v, matchAny, err := parseTarget("7BBE7549")
	require.NoError(t, err)
	assert.False(t, matchAny)
	assert.Equal(t, uint32(0x7BBE7549), v)

	v, matchAny, err = parseTarget("ffffffff")
	require.NoError(t, err)
	assert.False(t, matchAny)
	assert.Equal(t, uint32(0xFFFFFFFF), v)

	v, matchAny, err = parseTarget("  1f ")
	require.NoError(t, err)
	assert.False(t, matchAny)
	assert.Equal(t, uint32(0x1F), v)
}

func TestParseTargetMatchAnySentinel(t *testing.T) {
	_, matchAny, err := parseTarget("0")
	require.NoError(t, err)
	assert.True(t, matchAny)

	_, matchAny, err = parseTarget("00000000")
	require.NoError(t, err)
	assert.True(t, matchAny)
}

func TestParseTargetRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "xyz", "0x1F", "-5", "123456789"} {
		_, _, err := parseTarget(s)
		assert.ErrorIs(t, err, errBadTarget, "input %q", s)
	}
}
