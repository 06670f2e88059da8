// Package decode selects entries of a machine-instruction table from the
// leading words of a byte buffer, using a bit-trie built over the table.
package decode

import (
	"fmt"

	"github.com/apparentlymart/cfdecode/bitfield"
)

// Pattern is the fixed-bit part of a table entry. Bits and Mask span Words
// words laid out the way a Cursor accumulates them.
type Pattern struct {
	Bits  uint64
	Mask  uint64
	Words int
}

// Match reports whether bits agree with the pattern under its mask.
func (p Pattern) Match(bits uint64) bool {
	return bits&p.Mask == p.Bits
}

// Within restricts the pattern to the first n words of a layout.
func (p Pattern) Within(n int, layout Layout) Pattern {
	r := layout.Readable(n)
	return Pattern{Bits: p.Bits & r, Mask: p.Mask & r, Words: min(n, p.Words)}
}

// Field extracts the pattern's required value for a field. It is only
// meaningful where the field lies within Mask.
func (p Pattern) Field(pos, width uint) uint64 {
	return bitfield.Get(p.Bits, pos, bitfield.Ones[uint64](width))
}

func (p Pattern) String() string {
	return fmt.Sprintf("%#o/%#o", p.Bits, p.Mask)
}

// Item is an entry that can be selected by a decode index.
type Item interface {
	Pattern() Pattern

	// Admits reports whether the entry accepts field values that the
	// pattern leaves free, such as the addressing mode of an operand. Only
	// the bits in known have been read; fields outside it must be accepted.
	Admits(bits, known uint64) bool
}

// Match checks item against the cursor. The bits read so far are checked
// first, against both the pattern and the item's admissibility; if they
// agree the cursor is advanced to cover the whole pattern and both are
// checked again over every word read.
//
// The returned cursor has read at least the pattern's words on success.
func Match[T Item](item T, c Cursor) (Cursor, error) {
	p := item.Pattern()
	if !couldMatch(item, c) {
		return c, ErrNoMatch
	}
	for c.Words() < p.Words {
		next, ok := c.Advance()
		if !ok {
			return c, ErrTruncated
		}
		c = next
	}
	if !p.Match(c.Bits()) || !item.Admits(c.Bits(), c.Layout().Readable(c.Words())) {
		return c, ErrNoMatch
	}
	return c, nil
}

// couldMatch reports whether item agrees with the words read so far, so
// that reading more of them might complete a match.
func couldMatch[T Item](item T, c Cursor) bool {
	known := c.Layout().Readable(c.Words())
	return item.Pattern().Within(c.Words(), c.Layout()).Match(c.Bits()) && item.Admits(c.Bits(), known)
}
