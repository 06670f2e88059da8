package decode

import (
	"encoding/binary"
)

// Layout describes how words are stored in the input: their width in bits
// and their byte order.
type Layout struct {
	WordBits uint
	Order    binary.ByteOrder
}

// BigEndian16 is the layout of 68k and ColdFire machine code.
var BigEndian16 = Layout{WordBits: 16, Order: binary.BigEndian}

// WordBytes is the number of bytes in one word.
func (l Layout) WordBytes() int {
	return int(l.WordBits / 8)
}

// MaxWords is the number of words that fit in the accumulated bits.
func (l Layout) MaxWords() int {
	return 64 / int(l.WordBits)
}

// Readable returns the mask of accumulated bits occupied by the first n
// words.
func (l Layout) Readable(n int) uint64 {
	if n >= l.MaxWords() {
		return ^uint64(0)
	}
	return uint64(1)<<(uint(n)*l.WordBits) - 1
}

func (l Layout) read(buf []byte) uint64 {
	switch l.WordBits {
	case 8:
		return uint64(buf[0])
	case 16:
		return uint64(l.Order.Uint16(buf))
	case 32:
		return uint64(l.Order.Uint32(buf))
	default:
		return l.Order.Uint64(buf)
	}
}

// Cursor accumulates words read from the front of a buffer. The first word
// occupies the low bits and each later word is shifted above the previous
// one. Words past the capacity of the accumulator are still consumed and
// are reported by Last.
//
// A Cursor is a value; advancing returns a new cursor and leaves the old one
// usable.
type Cursor struct {
	layout Layout
	bits   uint64
	last   uint64
	words  int
	rest   []byte
}

// NewCursor reads the first word of buf. It returns false if buf is shorter
// than one word.
func NewCursor(buf []byte, layout Layout) (Cursor, bool) {
	c := Cursor{layout: layout, rest: buf}
	return c.Advance()
}

// Advance reads one more word. It returns false, and the receiver unchanged,
// if too few bytes remain.
func (c Cursor) Advance() (Cursor, bool) {
	n := c.layout.WordBytes()
	if len(c.rest) < n {
		return c, false
	}
	w := c.layout.read(c.rest)
	if c.words < c.layout.MaxWords() {
		c.bits |= w << (uint(c.words) * c.layout.WordBits)
	}
	c.last = w
	c.words++
	c.rest = c.rest[n:]
	return c, true
}

// Bits returns the accumulated words.
func (c Cursor) Bits() uint64 {
	return c.bits
}

// Last returns the most recently read word.
func (c Cursor) Last() uint64 {
	return c.last
}

// Words returns how many words have been read.
func (c Cursor) Words() int {
	return c.words
}

// Remaining returns the unread suffix of the buffer.
func (c Cursor) Remaining() []byte {
	return c.rest
}

// Layout returns the layout the cursor reads with.
func (c Cursor) Layout() Layout {
	return c.layout
}
