package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightTableValues(t *testing.T) {
	expected := [maxPatternLen]uint32{
		0x00000001, 0x00000021, 0x00000441, 0x00008C61,
		0x00121881, 0x025528A1, 0x4CFA3CC1, 0xEC41D4E1,
		0x747C7101, 0x040A9121, 0x855CB541, 0x30F35D61,
		0x4F5F0981, 0x3B4039A1, 0xA3476DC1, 0x0C3525E1,
		0x92D9E201, 0xEE162221, 0xB0DA6641, 0xCC272E61,
		0x510CFA81, 0x72AC4AA1,
	}
	assert.Equal(t, expected, weightTable)
}

func TestWeightTableRecurrence(t *testing.T) {
	assert.Equal(t, uint32(1), weightTable[0])
	for k := 1; k < maxPatternLen; k++ {
		assert.Equal(t, weightTable[k-1]*33, weightTable[k], "index %d", k)
	}
}

func TestCharDeltas(t *testing.T) {
	assert.Equal(t, uint32('0'-'!'), charDeltas[0])
	assert.Equal(t, uint32('a'-'!'), charDeltas[10])
	assert.Equal(t, uint32('A'-'!'), charDeltas[36])
	assert.Equal(t, uint32('-'-'!'), charDeltas[62])
	assert.Equal(t, uint32('_'-'!'), charDeltas[63])

	for i := 0; i < charsetLen; i++ {
		assert.Equal(t, uint32(charset[i])-uint32(placeholder), charDeltas[i], "index %d", i)
	}
}

func TestCharsetShape(t *testing.T) {
	assert.Len(t, charset, charsetLen)

	// No duplicates, no wildcard mark, nothing below the placeholder
	seen := make(map[byte]bool)
	for i := 0; i < len(charset); i++ {
		assert.False(t, seen[charset[i]], "duplicate %q", charset[i])
		seen[charset[i]] = true
		assert.Greater(t, charset[i], byte(placeholder))
	}
	assert.False(t, seen[wildcardMark])
}
