package main

// ==================== EAID ALPHABET ====================

// charset holds every character a wildcard may take. Its length is exactly
// 64 so that index arithmetic in the hot loop reduces to 6-bit shifts and
// masks instead of division.
const charset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

const charsetLen = 64

const (
	// wildcardMark is the template character standing for "any charset char".
	wildcardMark = '@'
	// placeholder replaces wildcard marks before the base checksum is taken.
	// It sits below every charset character, so the per-character deltas in
	// charDeltas are all positive.
	placeholder = '!'
)

// charDeltas[c] is the checksum contribution difference between charset[c]
// and the placeholder, valid for any wildcard position because the
// positional multiplier lives in the weight table.
var charDeltas [charsetLen]uint32

func init() {
	for i := 0; i < charsetLen; i++ {
		charDeltas[i] = uint32(charset[i]) - placeholder
	}
}
