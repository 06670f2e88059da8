package bitfield

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		word uint32
		pos  uint
		mask uint16
		want uint16
	}{
		{0o150200 | 3<<9, 9, 7, 3},
		{0x4E71, 0, 0xFFFF, 0x4E71},
		{0xD680, 12, 0xF, 0xD},
		{0x0003_F428, 16, 0xFFFF, 3},
		{0xFFFF_FFFF, 30, 0xF, 3}, // runs off the top
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Get(test.word, test.pos, test.mask), "Get(%#x, %d, %#x)", test.word, test.pos, test.mask)
	}
}

func TestSet(t *testing.T) {
	assert.Equal(t, uint16(0o153200), Set(uint16(0o150200), 9, uint16(7), 3))
	assert.Equal(t, uint16(0xD680), Set(uint16(0xDE80), 9, uint16(7), 3))
	// Only v & mask is installed.
	assert.Equal(t, uint16(0x00F0), Set(uint16(0), 4, uint16(0xF), 0xFF))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		w := rng.Uint64()
		v := rng.Uint64()
		width := uint(rng.Intn(16) + 1)
		pos := uint(rng.Intn(64 - int(width) + 1))
		mask := Ones[uint64](width)

		got := Set(w, pos, mask, v)
		require.Equal(t, v&mask, Get(got, pos, mask))

		outside := ^(mask << pos)
		require.Equal(t, w&outside, got&outside, "bits outside the field changed")
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, uint16(0o7000), Mask[uint16](11, 9))
	assert.Equal(t, uint32(0xFFFF_0000), Mask[uint32](31, 16))
	assert.Equal(t, ^uint64(0), Mask[uint64](63, 0))
	assert.Equal(t, uint8(0x80), Mask[uint8](7, 7))
	assert.Equal(t, uint16(0), Ones[uint16](0))
	assert.Equal(t, uint16(0xFF), Ones[uint16](8))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, Len(uint16(0)))
	assert.Equal(t, 3, Len(uint16(7)))
	assert.Equal(t, 16, Len(uint32(0xFFFF)))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw  string
		want Range
	}{
		{"11:9", Range{11, 9}},
		{"15..12", Range{15, 12}},
		{"8", Range{8, 8}},
		{"31..16", Range{31, 16}},
	}
	for _, test := range tests {
		got, err := ParseRange(test.raw)
		require.NoError(t, err, test.raw)
		assert.Equal(t, test.want, got, test.raw)
	}

	for _, raw := range []string{"", "a:b", "3:9", "1..x"} {
		_, err := ParseRange(raw)
		assert.Error(t, err, raw)
	}
}

func TestRange(t *testing.T) {
	r := Range{Hi: 11, Lo: 9}
	assert.Equal(t, uint(3), r.Width())
	assert.Equal(t, uint64(3), r.Get(0o153200))
	assert.Equal(t, uint64(0o153200), r.Set(0o150200, 3))
	assert.Equal(t, "11..9", r.String())
	assert.Equal(t, "8", Range{8, 8}.String())
}
