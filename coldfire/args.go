package coldfire

import (
	"fmt"
	"strings"
)

// Arg is one decoded argument of a statement.
type Arg interface {
	fmt.Stringer
	isArg()
}

func (DataReg) isArg()    {}
func (AddrReg) isArg()    {}
func (Reg) isArg()        {}
func (SpecialReg) isArg() {}
func (CtlReg) isArg()     {}
func (CacheSel) isArg()   {}
func (Indirect) isArg()   {}
func (PostInc) isArg()    {}
func (PreDec) isArg()     {}
func (Disp) isArg()       {}
func (Index) isArg()      {}
func (PCDisp) isArg()     {}
func (PCIndex) isArg()    {}
func (AbsShort) isArg()   {}
func (AbsLong) isArg()    {}
func (Imm) isArg()        {}
func (PCRel) isArg()      {}
func (RegList) isArg()    {}
func (RegPair) isArg()    {}

// Indirect is (An).
type Indirect struct {
	Base AddrReg
}

func (a Indirect) String() string {
	return fmt.Sprintf("(%s)", a.Base)
}

// PostInc is (An)+.
type PostInc struct {
	Base AddrReg
}

func (a PostInc) String() string {
	return fmt.Sprintf("(%s)+", a.Base)
}

// PreDec is -(An).
type PreDec struct {
	Base AddrReg
}

func (a PreDec) String() string {
	return fmt.Sprintf("-(%s)", a.Base)
}

// Disp is (d16,An).
type Disp struct {
	Base AddrReg
	Disp int16
}

func (a Disp) String() string {
	return fmt.Sprintf("(%d,%s)", a.Disp, a.Base)
}

// Index is (d8,An,Xi*scale). The index register is always used as a long.
type Index struct {
	Base  AddrReg
	Disp  int8
	Index Reg
	Scale uint8
}

func (a Index) String() string {
	return fmt.Sprintf("(%d,%s,%s)", a.Disp, a.Base, indexString(a.Index, a.Scale))
}

// PCDisp is (d16,PC).
type PCDisp struct {
	Disp int16
}

func (a PCDisp) String() string {
	return fmt.Sprintf("(%d,pc)", a.Disp)
}

// PCIndex is (d8,PC,Xi*scale).
type PCIndex struct {
	Disp  int8
	Index Reg
	Scale uint8
}

func (a PCIndex) String() string {
	return fmt.Sprintf("(%d,pc,%s)", a.Disp, indexString(a.Index, a.Scale))
}

func indexString(r Reg, scale uint8) string {
	if scale <= 1 {
		return fmt.Sprintf("%s.l", r)
	}
	return fmt.Sprintf("%s.l*%d", r, scale)
}

// AbsShort is a sign-extended 16-bit absolute address.
type AbsShort struct {
	Addr int16
}

func (a AbsShort) String() string {
	return fmt.Sprintf("($%04x).w", uint16(a.Addr))
}

// AbsLong is a 32-bit absolute address.
type AbsLong struct {
	Addr uint32
}

func (a AbsLong) String() string {
	return fmt.Sprintf("($%08x).l", a.Addr)
}

// Imm is an immediate value. Values taken from extension words carry the
// size they were read at; values packed into the opword, such as quick
// immediates and bit numbers, are Unsized.
type Imm struct {
	Value int64
	Size  Size
}

func (a Imm) String() string {
	switch a.Size {
	case Byte:
		return fmt.Sprintf("#$%x", uint8(a.Value))
	case Word:
		return fmt.Sprintf("#$%x", uint16(a.Value))
	case Long:
		return fmt.Sprintf("#$%x", uint32(a.Value))
	default:
		return fmt.Sprintf("#%d", a.Value)
	}
}

// PCRel is a branch displacement, relative to the address of the opword
// plus two.
type PCRel struct {
	Disp int32
	Size Size
}

// Target returns the branch target of a statement at addr.
func (a PCRel) Target(addr uint32) uint32 {
	return addr + 2 + uint32(a.Disp)
}

func (a PCRel) String() string {
	return fmt.Sprintf("*%+d", int64(a.Disp)+2)
}

// RegList is a movem register mask: bit 0 is d0 and bit 15 is a7.
type RegList uint16

// Regs returns the registers in the list in mask order.
func (l RegList) Regs() []Reg {
	var ret []Reg
	for i := 0; i < 16; i++ {
		if l&(1<<i) != 0 {
			ret = append(ret, Reg(i))
		}
	}
	return ret
}

func (l RegList) String() string {
	var parts []string
	for i := 0; i < 16; {
		if l&(1<<i) == 0 {
			i++
			continue
		}
		// Runs never cross from the data to the address registers.
		j := i
		for j+1 < 16 && (j+1)%8 != 0 && l&(1<<(j+1)) != 0 {
			j++
		}
		if j == i {
			parts = append(parts, Reg(i).String())
		} else {
			parts = append(parts, fmt.Sprintf("%s-%s", Reg(i), Reg(j)))
		}
		i = j + 1
	}
	return strings.Join(parts, "/")
}

// RegPair is the Dw:Dx pair of a remainder instruction.
type RegPair struct {
	First  DataReg
	Second DataReg
}

func (p RegPair) String() string {
	return fmt.Sprintf("%s:%s", p.First, p.Second)
}

// argKind names the variant of a for JSON output.
func argKind(a Arg) string {
	switch a.(type) {
	case DataReg:
		return "dreg"
	case AddrReg:
		return "areg"
	case Reg:
		return "reg"
	case SpecialReg:
		return "special"
	case CtlReg:
		return "ctlreg"
	case CacheSel:
		return "cache"
	case Indirect:
		return "ind"
	case PostInc:
		return "postinc"
	case PreDec:
		return "predec"
	case Disp:
		return "disp"
	case Index:
		return "index"
	case PCDisp:
		return "pcdisp"
	case PCIndex:
		return "pcindex"
	case AbsShort:
		return "abs.w"
	case AbsLong:
		return "abs.l"
	case Imm:
		return "imm"
	case PCRel:
		return "pcrel"
	case RegList:
		return "reglist"
	case RegPair:
		return "regpair"
	default:
		return "unknown"
	}
}
