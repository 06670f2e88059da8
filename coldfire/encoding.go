package coldfire

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/cfdecode/decode"
)

// Size is the operation size of an instruction.
type Size uint8

const (
	Unsized Size = iota
	Byte
	Word
	Long
)

func (s Size) String() string {
	switch s {
	case Byte:
		return "b"
	case Word:
		return "w"
	case Long:
		return "l"
	default:
		return ""
	}
}

// Instruction is the canonical record for one mnemonic. Every encoding of
// a mnemonic shares the same record.
type Instruction struct {
	Name string
	Size Size
}

func (i *Instruction) String() string {
	return i.Name
}

// Encoding is one row of the encoding table. Bits and Mask cover the
// opword and, when Words is 2, the first extension word in bits 16-31.
type Encoding struct {
	Inst     *Instruction
	Bits     uint32
	Mask     uint32
	Words    int
	Operands []Operand
	Flags    Flags
}

// Pattern implements decode.Item.
func (e *Encoding) Pattern() decode.Pattern {
	return decode.Pattern{Bits: uint64(e.Bits), Mask: uint64(e.Mask), Words: e.Words}
}

// Admits implements decode.Item: every operand whose field lies within
// known must accept it.
func (e *Encoding) Admits(bits, known uint64) bool {
	for _, op := range e.Operands {
		if m := op.fieldMask(); m&known == m && !op.Admits(bits) {
			return false
		}
	}
	return true
}

func (e *Encoding) String() string {
	ops := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		ops[i] = op.String()
	}
	if e.Words > 1 {
		return fmt.Sprintf("%s (%#06o,%#06o)/(%#06o,%#06o) [%s]", e.Inst, e.Bits&0xFFFF, e.Bits>>16, e.Mask&0xFFFF, e.Mask>>16, strings.Join(ops, " "))
	}
	return fmt.Sprintf("%s %#06o/%#06o [%s]", e.Inst, e.Bits, e.Mask, strings.Join(ops, " "))
}

// instructions holds the shared mnemonic records, keyed by name.
var instructions = map[string]*Instruction{}

func instruction(name string, size Size) *Instruction {
	if inst, ok := instructions[name]; ok {
		return inst
	}
	inst := &Instruction{Name: name, Size: size}
	instructions[name] = inst
	return inst
}

// sizeOf derives the operation size from a mnemonic's suffix.
func sizeOf(name string) Size {
	switch {
	case strings.HasSuffix(name, ".b"):
		return Byte
	case strings.HasSuffix(name, ".w"):
		return Word
	case strings.HasSuffix(name, ".l"):
		return Long
	default:
		return Unsized
	}
}

// LookupInstruction returns the record for a mnemonic.
func LookupInstruction(name string) (*Instruction, bool) {
	inst, ok := instructions[name]
	return inst, ok
}

// InstructionNamed returns the shared record for name, or a new record
// sized from the mnemonic's suffix when the table has no such instruction.
func InstructionNamed(name string) *Instruction {
	if inst, ok := instructions[name]; ok {
		return inst
	}
	return &Instruction{Name: name, Size: sizeOf(name)}
}

// NewEncoding returns a table row. Bits and Mask hold the opword in the
// low 16 bits and the first extension word, if words is 2, above it.
func NewEncoding(inst *Instruction, bits, mask uint32, words int, flags Flags, ops ...Operand) *Encoding {
	return &Encoding{
		Inst:     inst,
		Bits:     bits,
		Mask:     mask,
		Words:    words,
		Operands: ops,
		Flags:    withArity(flags, len(ops)),
	}
}

func op1(name string, bits, mask uint16, flags Flags, ops ...Operand) *Encoding {
	return NewEncoding(instruction(name, sizeOf(name)), uint32(bits), uint32(mask), 1, flags, ops...)
}

func op2(name string, bits0, bits1, mask0, mask1 uint16, flags Flags, ops ...Operand) *Encoding {
	return NewEncoding(instruction(name, sizeOf(name)), uint32(bits0)|uint32(bits1)<<16, uint32(mask0)|uint32(mask1)<<16, 2, flags, ops...)
}

func ea(modes ModeSet) Operand      { return Operand{Kind: OpEa, Modes: modes} }
func eaDst(modes ModeSet) Operand   { return Operand{Kind: OpEaMove, Pos: 6, Modes: modes} }
func dreg(pos uint8) Operand        { return Operand{Kind: OpDataReg, Pos: pos} }
func areg(pos uint8) Operand        { return Operand{Kind: OpAddrReg, Pos: pos} }
func aind(pos uint8) Operand        { return Operand{Kind: OpAddrInd, Pos: pos} }
func reg(pos uint8) Operand         { return Operand{Kind: OpReg, Pos: pos} }
func dpair(pos, pos2 uint8) Operand { return Operand{Kind: OpDataRegPair, Pos: pos, Pos2: pos2} }
func bitnum(pos uint8) Operand      { return Operand{Kind: OpBitNum, Pos: pos} }
func quick3(pos uint8) Operand      { return Operand{Kind: OpQuick3, Pos: pos} }
func quick3m(pos uint8) Operand     { return Operand{Kind: OpQuick3M, Pos: pos} }
func quick4(pos uint8) Operand      { return Operand{Kind: OpQuick4, Pos: pos} }
func quick8(pos uint8) Operand      { return Operand{Kind: OpQuick8, Pos: pos} }
func pcrel8(pos uint8) Operand      { return Operand{Kind: OpPCRel8, Pos: pos} }
func reglist(pos uint8) Operand     { return Operand{Kind: OpRegList, Pos: pos} }
func cachesel(pos uint8) Operand    { return Operand{Kind: OpCacheSel, Pos: pos} }
func ctlreg(pos uint8) Operand      { return Operand{Kind: OpCtlReg, Pos: pos} }

var (
	imm     = Operand{Kind: OpImm}
	imm16   = Operand{Kind: OpImm16}
	imm32   = Operand{Kind: OpImm32}
	disp16  = Operand{Kind: OpDisp16}
	pcrel16 = Operand{Kind: OpPCRel16}
	pcrel32 = Operand{Kind: OpPCRel32}
	ccr     = Operand{Kind: OpCCR}
	sr      = Operand{Kind: OpSR}
	usp     = Operand{Kind: OpUSP}
)
