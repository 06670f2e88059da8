package coldfire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	problems := Validate()
	for _, p := range problems {
		assert.True(t, p.Unresolved, "%s", p)
	}
	require.Len(t, problems, 2)

	pairs := make(map[string]string)
	for _, p := range problems {
		pairs[p.Encoding.Inst.Name] = p.Other.Inst.Name
		assert.True(t, p.Encoding.Flags.Has(RegsSame))
		assert.True(t, p.Other.Flags.Has(RegsDistinct))
	}
	assert.Equal(t, map[string]string{"divs.l": "rems.l", "divu.l": "remu.l"}, pairs)
}

func TestValidateTable(t *testing.T) {
	nop := &Instruction{Name: "nop"}
	rows := []*Encoding{
		{Inst: nop, Bits: 0o047161, Mask: 0o177777, Words: 1},
		{Inst: nop, Bits: 0o047162, Mask: 0o177770, Words: 1},
		{Inst: nop, Bits: 0o047163, Mask: 0o177777, Words: 1, Operands: []Operand{dreg(0)}},
		{Inst: nop, Bits: 0o047164, Mask: 0o177777, Words: 1, Operands: []Operand{reglist(16)}, Flags: withArity(0, 1)},
		{Inst: nop, Bits: 0o047161, Mask: 0o177777, Words: 1},
	}
	problems := ValidateTable(rows)

	var msgs []string
	for _, p := range problems {
		msgs = append(msgs, p.String())
	}
	require.Len(t, problems, 4, "%q", msgs)
	assert.Contains(t, problems[0].Msg, "outside mask")
	assert.Contains(t, problems[1].Msg, "arity 0 but 1 operands")
	assert.Contains(t, problems[2].Msg, "outside the pattern")

	overlap := problems[3]
	assert.Same(t, rows[0], overlap.Encoding)
	assert.Same(t, rows[4], overlap.Other)
	assert.Equal(t, uint16(0x4E71), overlap.Opword)
	assert.False(t, overlap.Unresolved)
}

func TestTableShape(t *testing.T) {
	rows := Encodings()
	assert.Len(t, rows, len(encodings))

	// Every mnemonic has a single shared record.
	for _, enc := range rows {
		inst, ok := LookupInstruction(enc.Inst.Name)
		require.True(t, ok, enc.Inst.Name)
		assert.Same(t, inst, enc.Inst)
	}

	// Supervisor rows follow the user rows.
	names := make([]string, len(rows))
	for i, enc := range rows {
		names[i] = enc.Inst.Name
	}
	assert.Equal(t, "add.l", names[0])
	assert.Equal(t, "wdebug.l", names[len(names)-1])
	assert.Less(t, indexOf(names, "divs.l"), indexOf(names, "rems.l"))
	assert.Less(t, indexOf(names, "divu.l"), indexOf(names, "remu.l"))

	root := DecodeIndex()
	assert.Equal(t, "trie", root.Kind().String())
	assert.Equal(t, uint(12), root.Pos())
	assert.Equal(t, uint(4), root.Width())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
