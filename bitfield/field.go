// Package bitfield reads and writes fixed-position fields inside unsigned
// machine words.
//
// A field is identified by the position of its lowest bit and a right-aligned
// mask giving its width. Positions are not range checked: a field that runs
// off the top of the word is silently truncated by the shifts.
package bitfield

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Word is any unsigned integer type usable as storage for opcode bits.
type Word interface {
	constraints.Unsigned
}

// Get returns the field of w at pos selected by mask. The word is converted
// to the result type after shifting, so a narrower result type truncates and
// a wider one zero-extends.
func Get[R, W Word](w W, pos uint, mask R) R {
	return R(w>>pos) & mask
}

// Set returns w with the field at pos replaced by v & mask. All bits of w
// outside the field are preserved.
func Set[W, R Word](w W, pos uint, mask R, v R) W {
	return w ^ ((w ^ (W(v) << pos)) & (W(mask) << pos))
}

// Mask returns a mask with bits hi down to lo (inclusive) set.
func Mask[W Word](hi, lo uint) W {
	return W((uint64(1) << (hi + 1)) - (uint64(1) << lo))
}

// Ones returns a right-aligned mask of n set bits.
func Ones[W Word](n uint) W {
	if n == 0 {
		return 0
	}
	return Mask[W](n-1, 0)
}

// Len returns the number of significant bits in mask.
func Len[W Word](mask W) int {
	return bits.Len64(uint64(mask))
}
