package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ==================== CHECKSUM FUNCTION ====================

var errBadTarget = errors.New("invalid target checksum")

// encode computes the 32-bit EAID checksum: a base-33 polynomial over the
// character values (code point minus 32), processed left to right, minus one.
// Equivalently sum(value_i * 33^(n-1-i)) - 1 mod 2^32, which is what makes
// per-candidate deltas possible during the search.
func encode(s string) uint32 {
	var acc uint32
	for i := 0; i < len(s); i++ {
		acc = acc*33 + uint32(s[i]) - 32
	}
	return acc - 1
}

// parseTarget reads the target argument. The literal "0" selects match-any
// mode; anything else must be a hex checksum fitting 32 bits.
func parseTarget(s string) (target uint32, matchAny bool, err error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q (want hex, or 0 for match-any)", errBadTarget, s)
	}
	return uint32(v), v == 0, nil
}
