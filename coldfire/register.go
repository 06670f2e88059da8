package coldfire

import "fmt"

// DataReg is one of the data registers d0 through d7.
type DataReg uint8

const (
	D0 DataReg = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
)

// DataRegFromNum returns the data register numbered n.
func DataRegFromNum(n uint8) (DataReg, bool) {
	if n > 7 {
		return 0, false
	}
	return DataReg(n), true
}

func (r DataReg) String() string {
	return fmt.Sprintf("d%d", uint8(r))
}

// AddrReg is one of the address registers a0 through a7. a6 is the frame
// pointer and a7 the stack pointer by convention, and they are written that
// way.
type AddrReg uint8

const (
	A0 AddrReg = iota
	A1
	A2
	A3
	A4
	A5
	FP
	SP
)

// AddrRegFromNum returns the address register numbered n.
func AddrRegFromNum(n uint8) (AddrReg, bool) {
	if n > 7 {
		return 0, false
	}
	return AddrReg(n), true
}

func (r AddrReg) String() string {
	switch r {
	case FP:
		return "fp"
	case SP:
		return "sp"
	default:
		return fmt.Sprintf("a%d", uint8(r))
	}
}

// Reg is any general register, numbered as in a 4-bit register field: data
// registers 0-7 followed by address registers 8-15.
type Reg uint8

// RegFromNum returns the general register numbered n.
func RegFromNum(n uint8) (Reg, bool) {
	if n > 15 {
		return 0, false
	}
	return Reg(n), true
}

func (r Reg) IsAddr() bool {
	return r >= 8
}

func (r Reg) Data() DataReg {
	return DataReg(r & 7)
}

func (r Reg) Addr() AddrReg {
	return AddrReg(r & 7)
}

func (r Reg) String() string {
	if r.IsAddr() {
		return r.Addr().String()
	}
	return r.Data().String()
}

// SpecialReg is a register named implicitly by an instruction.
type SpecialReg uint8

const (
	PC SpecialReg = iota
	CCR
	SR
	USP
)

func (r SpecialReg) String() string {
	switch r {
	case PC:
		return "pc"
	case CCR:
		return "ccr"
	case SR:
		return "sr"
	case USP:
		return "usp"
	default:
		return fmt.Sprintf("SpecialReg(%d)", uint8(r))
	}
}

// CtlReg is a control register number as used by movec.
type CtlReg uint16

var ctlRegNames = map[CtlReg]string{
	0x002: "cacr",
	0x003: "asid",
	0x004: "acr0",
	0x005: "acr1",
	0x006: "acr2",
	0x007: "acr3",
	0x008: "mmubar",
	0x801: "vbr",
	0x80E: "sr",
	0x80F: "pc",
	0xC00: "rombar0",
	0xC01: "rombar1",
	0xC04: "rambar0",
	0xC05: "rambar1",
	0xC0C: "mpcr",
	0xC0D: "edrambar",
	0xC0E: "secmbar",
	0xC0F: "mbar",
}

func (r CtlReg) String() string {
	if name, ok := ctlRegNames[r]; ok {
		return name
	}
	return fmt.Sprintf("$%03x", uint16(r))
}

// CacheSel selects the caches affected by cpushl.
type CacheSel uint8

const (
	NoCache CacheSel = iota
	DataCache
	InstCache
	BothCaches
)

func (c CacheSel) String() string {
	switch c {
	case NoCache:
		return "nc"
	case DataCache:
		return "dc"
	case InstCache:
		return "ic"
	default:
		return "bc"
	}
}
