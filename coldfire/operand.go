package coldfire

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/cfdecode/bitfield"
)

// Mode is an effective addressing mode.
type Mode uint8

const (
	ModeDataReg  Mode = iota // Dn
	ModeAddrReg              // An
	ModeInd                  // (An)
	ModePostInc              // (An)+
	ModePreDec               // -(An)
	ModeDisp                 // (d16,An)
	ModeIndex                // (d8,An,Xi*s)
	ModeAbsShort             // (xxx).w
	ModeAbsLong              // (xxx).l
	ModePCDisp               // (d16,pc)
	ModePCIndex              // (d8,pc,Xi*s)
	ModeImm                  // #imm
	ModeInvalid
)

// modeOf maps the 3-bit mode and register fields of an effective address to
// a Mode.
func modeOf(mode, reg uint64) Mode {
	if mode < 7 {
		return Mode(mode)
	}
	if reg <= 4 {
		return ModeAbsShort + Mode(reg)
	}
	return ModeInvalid
}

// ModeSet is a set of addressing modes an operand accepts.
type ModeSet uint16

// modeLetters spells a ModeSet in the manner of the reference manual's
// addressing-mode tables, one letter per Mode with "_" for absent modes.
const modeLetters = "daipmdxnfDXI"

const (
	EaAll        ModeSet = 0b1111_1111_1111
	EaAlterable  ModeSet = 0b0001_1111_1111
	EaData       ModeSet = 0b1111_1111_1101
	EaDataAlt    ModeSet = 0b0001_1111_1101
	EaMemAlt     ModeSet = 0b0001_1111_1100
	EaControl    ModeSet = 0b0111_1110_0100
	EaExtWord    ModeSet = 0b0000_0011_1101
	EaMovem      ModeSet = 0b0000_0010_0100
	EaBitStatic  ModeSet = 0b0000_0011_1100
	EaBitDynamic ModeSet = 0b0111_1111_1100
	EaToCcr      ModeSet = 0b1000_0000_0001
)

func (s ModeSet) Has(m Mode) bool {
	return m < ModeInvalid && s&(1<<m) != 0
}

func (s ModeSet) String() string {
	var b strings.Builder
	for i := 0; i < len(modeLetters); i++ {
		if s&(1<<i) != 0 {
			b.WriteByte(modeLetters[i])
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ParseModeSet parses the form produced by ModeSet.String.
func ParseModeSet(s string) (ModeSet, error) {
	if len(s) != len(modeLetters) {
		return 0, fmt.Errorf("mode set %q must have %d letters", s, len(modeLetters))
	}
	var ret ModeSet
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case modeLetters[i]:
			ret |= 1 << i
		case '_':
		default:
			return 0, fmt.Errorf("mode set %q has %q where %q or '_' belongs", s, s[i], modeLetters[i])
		}
	}
	return ret, nil
}

// OperandKind identifies how an operand is encoded.
type OperandKind uint8

const (
	OpEa          OperandKind = iota + 1 // mode at Pos+3, register at Pos
	OpEaMove                             // register at Pos+3, mode at Pos
	OpDataReg                            // 3 bits
	OpAddrReg                            // 3 bits
	OpAddrInd                            // 3 bits, (An)
	OpReg                                // 4 bits, data then address
	OpDataRegPair                        // 3 bits at Pos and 3 bits at Pos2
	OpImm                                // extension words sized by the instruction
	OpImm16                              // one extension word
	OpImm32                              // two extension words
	OpDisp16                             // one signed extension word
	OpBitNum                             // 8 bits
	OpQuick3                             // 3 bits, 0 means 8
	OpQuick3M                            // 3 bits, 0 means -1
	OpQuick4                             // 4 bits
	OpQuick8                             // 8 bits, signed
	OpPCRel8                             // 8 bits, signed; 0x00 and 0xff are not allowed
	OpPCRel16                            // one signed extension word
	OpPCRel32                            // two extension words
	OpRegList                            // 16 bits
	OpCacheSel                           // 2 bits
	OpCtlReg                             // 12 bits
	OpCCR
	OpSR
	OpUSP
)

var operandKindNames = map[OperandKind]string{
	OpEa:          "ea",
	OpEaMove:      "eamove",
	OpDataReg:     "dreg",
	OpAddrReg:     "areg",
	OpAddrInd:     "aind",
	OpReg:         "reg",
	OpDataRegPair: "dpair",
	OpImm:         "imm",
	OpImm16:       "imm16",
	OpImm32:       "imm32",
	OpDisp16:      "disp16",
	OpBitNum:      "bitnum",
	OpQuick3:      "quick3",
	OpQuick3M:     "quick3m",
	OpQuick4:      "quick4",
	OpQuick8:      "quick8",
	OpPCRel8:      "pcrel8",
	OpPCRel16:     "pcrel16",
	OpPCRel32:     "pcrel32",
	OpRegList:     "reglist",
	OpCacheSel:    "cache",
	OpCtlReg:      "ctlreg",
	OpCCR:         "ccr",
	OpSR:          "sr",
	OpUSP:         "usp",
}

func (k OperandKind) String() string {
	if name, ok := operandKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OperandKind(%d)", uint8(k))
}

// ParseOperandKind looks up a kind by the name String returns.
func ParseOperandKind(s string) (OperandKind, bool) {
	for k, name := range operandKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Operand is the specification of one operand of an encoding. Positions
// count from bit 0 of the opword; bits 16 and up are in the first extension
// word.
type Operand struct {
	Kind  OperandKind
	Pos   uint8
	Pos2  uint8
	Modes ModeSet
}

// Width is the number of bits the operand occupies at Pos, not counting
// extension words it reads.
func (o Operand) Width() uint {
	switch o.Kind {
	case OpEa, OpEaMove:
		return 6
	case OpDataReg, OpAddrReg, OpAddrInd, OpDataRegPair, OpQuick3, OpQuick3M:
		return 3
	case OpReg, OpQuick4:
		return 4
	case OpBitNum, OpQuick8, OpPCRel8:
		return 8
	case OpRegList:
		return 16
	case OpCacheSel:
		return 2
	case OpCtlReg:
		return 12
	default:
		return 0
	}
}

// fieldMask is the mask of the bits Admits inspects.
func (o Operand) fieldMask() uint64 {
	switch o.Kind {
	case OpEa, OpEaMove, OpPCRel8:
		return bitfield.Mask[uint64](uint(o.Pos)+o.Width()-1, uint(o.Pos))
	default:
		return 0
	}
}

func (o Operand) field(bits uint64, pos uint8, width uint) uint64 {
	return bitfield.Get(bits, uint(pos), bitfield.Ones[uint64](width))
}

// mode returns the addressing mode selected by an OpEa or OpEaMove operand.
func (o Operand) mode(bits uint64) (Mode, uint8) {
	mode, reg := o.field(bits, o.Pos+3, 3), o.field(bits, o.Pos, 3)
	if o.Kind == OpEaMove {
		mode, reg = reg, mode
	}
	return modeOf(mode, reg), uint8(reg)
}

// Admits reports whether the operand accepts the value its fields hold in
// bits.
func (o Operand) Admits(bits uint64) bool {
	switch o.Kind {
	case OpEa, OpEaMove:
		m, _ := o.mode(bits)
		return o.Modes.Has(m)
	case OpPCRel8:
		v := o.field(bits, o.Pos, 8)
		return v != 0 && v != 0xFF
	default:
		return true
	}
}

func (o Operand) String() string {
	switch o.Kind {
	case OpEa, OpEaMove:
		return fmt.Sprintf("%s:%d:%s", o.Kind, o.Pos, o.Modes)
	case OpDataRegPair:
		return fmt.Sprintf("%s:%d:%d", o.Kind, o.Pos, o.Pos2)
	case OpImm, OpImm16, OpImm32, OpDisp16, OpPCRel16, OpPCRel32, OpCCR, OpSR, OpUSP:
		return o.Kind.String()
	default:
		return fmt.Sprintf("%s:%d", o.Kind, o.Pos)
	}
}

// ParseOperand parses the form produced by Operand.String.
func ParseOperand(s string) (Operand, error) {
	parts := strings.Split(s, ":")
	kind, ok := ParseOperandKind(parts[0])
	if !ok {
		return Operand{}, fmt.Errorf("unknown operand kind %q", parts[0])
	}
	op := Operand{Kind: kind}
	want := 2
	switch kind {
	case OpEa, OpEaMove, OpDataRegPair:
		want = 3
	case OpImm, OpImm16, OpImm32, OpDisp16, OpPCRel16, OpPCRel32, OpCCR, OpSR, OpUSP:
		want = 1
	}
	if len(parts) != want {
		return Operand{}, fmt.Errorf("operand %q needs %d fields", s, want)
	}
	if want > 1 {
		var pos uint8
		if _, err := fmt.Sscanf(parts[1], "%d", &pos); err != nil {
			return Operand{}, fmt.Errorf("operand %q: invalid position: %s", s, err)
		}
		op.Pos = pos
	}
	switch kind {
	case OpEa, OpEaMove:
		modes, err := ParseModeSet(parts[2])
		if err != nil {
			return Operand{}, fmt.Errorf("operand %q: %s", s, err)
		}
		op.Modes = modes
	case OpDataRegPair:
		var pos2 uint8
		if _, err := fmt.Sscanf(parts[2], "%d", &pos2); err != nil {
			return Operand{}, fmt.Errorf("operand %q: invalid position: %s", s, err)
		}
		op.Pos2 = pos2
	}
	return op, nil
}
