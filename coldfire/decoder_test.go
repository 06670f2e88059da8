package coldfire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nsf/jsondiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/apparentlymart/cfdecode/decode"
	"github.com/apparentlymart/cfdecode/internal/log"
)

func words(ws ...uint16) []byte {
	buf := make([]byte, 2*len(ws))
	for i, w := range ws {
		binary.BigEndian.PutUint16(buf[2*i:], w)
	}
	return buf
}

func TestDecodeNop(t *testing.T) {
	stmt, rest, err := Decode([]byte{0x4E, 0x71})
	require.NoError(t, err)
	assert.Equal(t, "nop", stmt.Op.Name)
	assert.Empty(t, stmt.Args)
	assert.Equal(t, 2, stmt.Len())
	assert.Empty(t, rest)
}

func TestDecodeAddDataReg(t *testing.T) {
	stmt, rest, err := Decode(words(0xD680, 0x4E71))
	require.NoError(t, err)
	assert.Equal(t, "add.l", stmt.Op.Name)
	require.Len(t, stmt.Args, 2)
	assert.Equal(t, D0, stmt.Args[0])
	assert.Equal(t, D3, stmt.Args[1])
	assert.Equal(t, words(0x4E71), rest)
}

func TestDecodeTruncated(t *testing.T) {
	tests := map[string][]byte{
		"empty":           nil,
		"half opword":     {0x4E},
		"bra.w":           words(0x6000),
		"bsr.w odd":       {0x61, 0x00, 0x12},
		"bsr.l":           words(0x61FF, 0x0000),
		"movem mask":      words(0x48D0),
		"move.l imm":      words(0x203C, 0x1234),
		"move.l disp":     words(0x2228),
		"addi.l":          words(0x0680, 0x0000),
		"brief extension": words(0x2430),
	}
	for name, buf := range tests {
		t.Run(name, func(t *testing.T) {
			stmt, rest, err := Decode(buf)
			assert.ErrorIs(t, err, ErrTruncated)
			assert.Nil(t, stmt.Op)
			assert.Equal(t, buf, rest)
		})
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	for _, w := range []uint16{0x0000, 0xFFFF, 0x4AFA, 0x4E74} {
		_, _, err := Decode(words(w, 0x0800, 0x0800))
		assert.ErrorIs(t, err, ErrUnrecognized, "%#04x", w)
	}
}

func TestDecodeInadmissibleNeedsNoMoreWords(t *testing.T) {
	// Opwords whose addressing mode no row accepts are unrecognized even
	// when the rows they resemble need an extension word.
	for _, w := range []uint16{0x4C7C, 0x0808} {
		_, _, err := Decode(words(w))
		assert.ErrorIs(t, err, ErrUnrecognized, "%#04x", w)
		_, _, err = Decode(words(w, 0x0000))
		assert.ErrorIs(t, err, ErrUnrecognized, "%#04x", w)
	}

	for w := 0; w <= 0xFFFF; w++ {
		_, _, err := Decode(words(uint16(w)))
		if !errors.Is(err, ErrTruncated) {
			continue
		}
		bits := uint64(w)
		found := false
		for _, enc := range encodings {
			if enc.Pattern().Within(1, decode.BigEndian16).Match(bits) && enc.Admits(bits, 0xFFFF) {
				found = true
				break
			}
		}
		require.True(t, found, "%#04x reported truncated but no row accepts it", w)
	}
}

func TestDecodeTrace(t *testing.T) {
	assert.Equal(t, "0x4e71", opwordValue(0x4E71).LogValue().String())

	var buf bytes.Buffer
	prev := log.Root()
	log.SetDefault(log.NewLogger(log.NewTextHandler(&buf, log.LevelTrace)))
	defer log.SetDefault(prev)

	_, _, err := Decode(words(0xFFFF))
	require.ErrorIs(t, err, ErrUnrecognized)
	assert.Contains(t, buf.String(), "opword=0xffff")
	assert.Contains(t, buf.String(), "module=decode")
}

func TestDecodeQuick(t *testing.T) {
	for v := uint16(0); v < 8; v++ {
		stmt, _, err := Decode(words(0x5080 | v<<9))
		require.NoError(t, err)
		assert.Equal(t, "addq.l", stmt.Op.Name)
		want := int64(v)
		if v == 0 {
			want = 8
		}
		assert.Equal(t, Imm{Value: want}, stmt.Args[0])
	}

	stmt, _, err := Decode(words(0xA140))
	require.NoError(t, err)
	assert.Equal(t, "mov3q.l #-1,d0", stmt.String())
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		in   []uint16
		want string
	}{
		{[]uint16{0x4E75}, "rts"},
		{[]uint16{0x2040}, "movea.l d0,a0"},
		{[]uint16{0x7001}, "moveq.l #1,d0"},
		{[]uint16{0x70FF}, "moveq.l #-1,d0"},
		{[]uint16{0x203C, 0x1234, 0x5678}, "move.l #$12345678,d0"},
		{[]uint16{0x2228, 0x0010}, "move.l (16,a0),d1"},
		{[]uint16{0x2430, 0x1C08}, "move.l (8,a0,d1.l*4),d2"},
		{[]uint16{0x6602}, "bne.b *+4"},
		{[]uint16{0x6000, 0x0010}, "bra.w *+18"},
		{[]uint16{0x61FF, 0x0000, 0x0100}, "bsr.l *+258"},
		{[]uint16{0x4E56, 0xFFF8}, "link.w fp,#-8"},
		{[]uint16{0x48D0, 0x0303}, "movem.l d0-d1/a0-a1,(a0)"},
		{[]uint16{0x4CEE, 0x3F00, 0xFFF0}, "movem.l (-16,fp),a0-a5"},
		{[]uint16{0x4E7B, 0x0801}, "movec.l d0,vbr"},
		{[]uint16{0x4E7B, 0x8002}, "movec.l a0,cacr"},
		{[]uint16{0xF4E8}, "cpushl bc,(a0)"},
		{[]uint16{0x0680, 0x0000, 0x0001}, "addi.l #$1,d0"},
		{[]uint16{0x0C00, 0x0042}, "cmpi.b #$42,d0"},
		{[]uint16{0x0800, 0x0003}, "btst.l #3,d0"},
		{[]uint16{0x50C0}, "st.b d0"},
		{[]uint16{0x55C1}, "slo.b d1"},
		{[]uint16{0x6402}, "bhs.b *+4"},
		{[]uint16{0x6502}, "blo.b *+4"},
		{[]uint16{0x51FC}, "tpf"},
		{[]uint16{0x46FC, 0x2700}, "move.w #$2700,sr"},
		{[]uint16{0x40E7, 0x46FC, 0x2700}, "strldsr #$2700"},
		{[]uint16{0x4E41}, "trap #1"},
		{[]uint16{0x41F9, 0x0001, 0x0000}, "lea.l ($00010000).l,a0"},
		{[]uint16{0x4878, 0x1234}, "pea.l ($1234).w"},
		{[]uint16{0x4EBA, 0x0010}, "jsr (16,pc)"},
		{[]uint16{0xE388}, "lsl.l #1,d0"},
		{[]uint16{0x4AC8}, "halt"},
		{[]uint16{0x4C40, 0x1801}, "divs.l d0,d1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			buf := words(tt.in...)
			stmt, rest, err := Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.String())
			assert.Equal(t, len(buf), stmt.Len())
			assert.Empty(t, rest)
		})
	}
}

func TestDecodeBriefExtension(t *testing.T) {
	_, _, err := Decode(words(0x2430, 0x1408))
	assert.ErrorIs(t, err, ErrInvalidOperand, "word-sized index")

	_, _, err = Decode(words(0x2430, 0x1D08))
	assert.ErrorIs(t, err, ErrInvalidOperand, "full extension word")
}

func TestDecodeRegisterPolicy(t *testing.T) {
	// The remainder form is only told apart from the division by its
	// register fields, which are not checked, so the division always wins.
	stmt, _, err := Decode(words(0x4C40, 0x1802))
	require.NoError(t, err)
	assert.Equal(t, "divs.l", stmt.Op.Name)
	assert.True(t, stmt.Encoding.Flags.Has(RegsSame))
}

func TestDecoderFeatures(t *testing.T) {
	isaA := &Decoder{Features: FeatA}
	_, _, err := isaA.Decode(words(0x4C40, 0x1801))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, _, err = isaA.Decode(words(0x7100))
	assert.ErrorIs(t, err, ErrUnsupported)

	stmt, _, err := isaA.Decode(words(0x4E71))
	require.NoError(t, err)
	assert.Equal(t, "nop", stmt.Op.Name)

	withDiv := &Decoder{Features: FeatA | FeatHWDiv}
	stmt, _, err = withDiv.Decode(words(0x4C40, 0x1801))
	require.NoError(t, err)
	assert.Equal(t, "divs.l", stmt.Op.Name)

	isaB := &Decoder{Features: FeatB}
	stmt, _, err = isaB.Decode(words(0x7100))
	require.NoError(t, err)
	assert.Equal(t, "mvs.b d0,d0", stmt.String())
}

func TestDecodeLabels(t *testing.T) {
	labels := []Label{"start", "entry"}
	stmt, _, err := Decode(words(0x4E71), labels...)
	require.NoError(t, err)
	assert.Equal(t, "start: entry: nop", stmt.String())

	labels[0] = "changed"
	assert.Equal(t, Label("start"), stmt.Labels[0])
}

func TestDecodeSequence(t *testing.T) {
	buf := words(0x7001, 0x6000, 0x0010, 0x4E75)
	var got []string
	for len(buf) > 0 {
		stmt, rest, err := Decode(buf)
		require.NoError(t, err)
		got = append(got, stmt.String())
		buf = rest
	}
	assert.Equal(t, []string{"moveq.l #1,d0", "bra.w *+18", "rts"}, got)
}

func TestDecodeDeterministic(t *testing.T) {
	inputs := [][]byte{
		words(0x4CEE, 0x3F00, 0xFFF0),
		words(0x2430, 0x1C08),
		words(0x61FF, 0x0000, 0x0100),
		words(0x4E71),
	}
	opts := jsondiff.DefaultConsoleOptions()
	for _, in := range inputs {
		first, rest1, err := Decode(append([]byte(nil), in...), "l")
		require.NoError(t, err)
		second, rest2, err := Decode(append([]byte(nil), in...), "l")
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		diff, desc := jsondiff.Compare(a, b, &opts)
		assert.Equal(t, jsondiff.FullMatch, diff, desc)
		assert.Equal(t, len(rest1), len(rest2))
		assert.Same(t, first.Encoding, second.Encoding)
	}
}

// firstOpword returns the lowest opword the row accepts, with the row's own
// extension word bits.
func firstOpword(enc *Encoding) (uint64, bool) {
	for w := uint64(0); w <= 0xFFFF; w++ {
		bits := w | uint64(enc.Bits)&0xFFFF0000
		if enc.Pattern().Match(bits) && enc.Admits(bits, ^uint64(0)) {
			return bits, true
		}
	}
	return 0, false
}

func TestTruncationSafety(t *testing.T) {
	for _, enc := range Encodings() {
		t.Run(enc.String(), func(t *testing.T) {
			bits, ok := firstOpword(enc)
			require.True(t, ok, "row accepts no opword")

			ws := []uint16{uint16(bits)}
			if enc.Words == 2 {
				ws = append(ws, uint16(bits>>16))
			}
			// 0x0800 is a valid brief extension word and a valid value
			// for every other kind of extension word.
			for i := 0; i < 5; i++ {
				ws = append(ws, 0x0800)
			}
			buf := words(ws...)

			stmt, _, err := Decode(buf)
			require.NoError(t, err)
			if enc.Flags.Policy() == 0 {
				assert.Same(t, enc, stmt.Encoding)
			}

			short := buf[:stmt.Len()-1]
			assert.NotPanics(t, func() {
				_, rest, err := Decode(short)
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrTruncated), "%s", err)
				assert.Equal(t, short, rest)
			})
		})
	}
}

func TestIndexMatchesTable(t *testing.T) {
	exts := []uint16{0x0000, 0x0003, 0x0800, 0x1801, 0x46FC, 0xFFFF}
	for _, enc := range encodings {
		if ext := uint16(enc.Bits >> 16); enc.Words == 2 && !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}

	check := func(buf []byte) {
		c, ok := decode.NewCursor(buf, decode.BigEndian16)
		require.True(t, ok)
		want, wantNext, wantErr := decode.ScanTable(encodings, c)
		got, gotNext, gotErr := index.Lookup(c)
		if wantErr != nil {
			if !assert.Equal(t, wantErr, gotErr, "% x", buf) {
				t.FailNow()
			}
			return
		}
		if !assert.NoError(t, gotErr, "% x", buf) || !assert.Same(t, want, got, "% x", buf) {
			t.FailNow()
		}
		assert.Equal(t, wantNext.Words(), gotNext.Words())
	}

	for w := 0; w <= 0xFFFF; w++ {
		check(words(uint16(w)))
		for _, ext := range exts {
			check(words(uint16(w), ext))
		}
	}
}
