package main

// ==================== WEIGHT TABLE ====================

const (
	// maxPatternLen is the longest supported template. It equals the weight
	// table length: one positional weight per character.
	maxPatternLen = 22

	// maxWildcards bounds the enumerable space. 64^11 already exceeds the
	// signed 64-bit range, so anything past 10 wildcards is refused.
	maxWildcards = 10
)

// weightTable[k] = 33^k mod 2^32, the multiplier of the character k positions
// from the right end of the string.
var weightTable [maxPatternLen]uint32

func init() {
	w := uint32(1)
	for k := range weightTable {
		weightTable[k] = w
		w *= 33
	}
}
