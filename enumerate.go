package main

// ==================== CANDIDATE ENUMERATOR ====================

// checksumAt computes the checksum of candidate i without materializing the
// string: the base checksum plus each wildcard digit's delta scaled by its
// positional weight, all mod 2^32. O(wildcards) per candidate.
func (p *Pattern) checksumAt(i uint64) uint32 {
	idx := i
	var extra uint32
	for _, w := range p.weights {
		extra += w * charDeltas[idx&63]
		idx >>= 6
	}
	return p.base + extra
}

// reconstruct materializes candidate i as a concrete EAID. Only called on
// hits, so the allocation does not matter.
func (p *Pattern) reconstruct(i uint64) string {
	out := []byte(p.substituted)
	idx := i
	for _, pos := range p.positions {
		out[pos] = charset[idx&63]
		idx >>= 6
	}
	return string(out)
}
