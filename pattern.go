package main

import (
	"errors"
	"fmt"
	"strings"
)

// ==================== PATTERN COMPILER ====================

var errPatternTooLong = errors.New("pattern too long")

// Pattern is the compiled, immutable form of a template. Everything the
// workers need per candidate is precomputed here once: the base checksum of
// the placeholder-substituted template, the wildcard positions and the
// weight of each one.
type Pattern struct {
	raw         string
	substituted string
	base        uint32
	positions   []int
	weights     []uint32
}

// compilePattern validates the raw template and precomputes the search
// parameters. Wildcard j corresponds to the j-th base-64 digit of a
// candidate index, least significant first.
func compilePattern(raw string) (*Pattern, error) {
	if len(raw) > maxPatternLen {
		return nil, fmt.Errorf("%w: %d characters (max %d)", errPatternTooLong, len(raw), maxPatternLen)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < 32 || raw[i] > 126 {
			return nil, fmt.Errorf("pattern contains non-ASCII byte 0x%02X at position %d", raw[i], i)
		}
	}

	sub := strings.ReplaceAll(raw, string(wildcardMark), string(placeholder))
	p := &Pattern{
		raw:         raw,
		substituted: sub,
		base:        encode(sub),
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == wildcardMark {
			p.positions = append(p.positions, i)
			p.weights = append(p.weights, weightTable[len(raw)-i-1])
		}
	}
	return p, nil
}

// Wildcards returns the number of enumerable positions.
func (p *Pattern) Wildcards() int {
	return len(p.positions)
}

// SpaceSize is 64^w. Only meaningful while w <= maxWildcards; the
// orchestrator refuses larger spaces before ever asking.
func (p *Pattern) SpaceSize() uint64 {
	return uint64(1) << (6 * uint(len(p.positions)))
}
