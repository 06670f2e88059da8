package decode

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	buf := []byte{0x4C, 0x40, 0x08, 0x01, 0x12, 0x34, 0xAB}

	c, ok := NewCursor(buf, BigEndian16)
	require.True(t, ok)
	assert.Equal(t, uint64(0x4C40), c.Bits())
	assert.Equal(t, uint64(0x4C40), c.Last())
	assert.Equal(t, 1, c.Words())
	assert.Equal(t, buf[2:], c.Remaining())

	c2, ok := c.Advance()
	require.True(t, ok)
	assert.Equal(t, uint64(0x0801_4C40), c2.Bits())
	assert.Equal(t, uint64(0x0801), c2.Last())
	assert.Equal(t, 2, c2.Words())

	// The original cursor is untouched.
	assert.Equal(t, uint64(0x4C40), c.Bits())
	assert.Equal(t, 1, c.Words())

	c3, ok := c2.Advance()
	require.True(t, ok)
	assert.Equal(t, uint64(0x1234_0801_4C40), c3.Bits())
	assert.Equal(t, []byte{0xAB}, c3.Remaining())

	// A trailing odd byte cannot form a word.
	c4, ok := c3.Advance()
	assert.False(t, ok)
	assert.Equal(t, c3, c4)
}

func TestCursorShort(t *testing.T) {
	_, ok := NewCursor(nil, BigEndian16)
	assert.False(t, ok)
	_, ok = NewCursor([]byte{0x4E}, BigEndian16)
	assert.False(t, ok)
}

func TestCursorOverflow(t *testing.T) {
	buf := []byte{
		0x00, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04,
		0x00, 0x05,
	}
	c, ok := NewCursor(buf, BigEndian16)
	require.True(t, ok)
	for i := 0; i < 4; i++ {
		c, ok = c.Advance()
		require.True(t, ok)
	}
	assert.Equal(t, 5, c.Words())
	assert.Equal(t, uint64(0x0004_0003_0002_0001), c.Bits())
	assert.Equal(t, uint64(5), c.Last())
	assert.Empty(t, c.Remaining())
}

func TestCursorLayouts(t *testing.T) {
	le16 := Layout{WordBits: 16, Order: binary.LittleEndian}
	c, ok := NewCursor([]byte{0x71, 0x4E}, le16)
	require.True(t, ok)
	assert.Equal(t, uint64(0x4E71), c.Bits())

	be32 := Layout{WordBits: 32, Order: binary.BigEndian}
	c, ok = NewCursor([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}, be32)
	require.True(t, ok)
	c, ok = c.Advance()
	require.True(t, ok)
	assert.Equal(t, uint64(0x0102_0304_DEAD_BEEF), c.Bits())
	assert.Equal(t, 2, be32.MaxWords())

	assert.Equal(t, uint64(0xFFFF), BigEndian16.Readable(1))
	assert.Equal(t, ^uint64(0), BigEndian16.Readable(4))
	assert.Equal(t, uint64(0), BigEndian16.Readable(0))
}
