package coldfire

import (
	"fmt"
	"strings"
)

// Flags describes an encoding: its operand count, the hardware variants
// that implement it and any register constraints it leaves unchecked.
type Flags uint32

const arityMask Flags = 0b111

const (
	FeatA Flags = 1 << (iota + 3)
	FeatAPlus
	FeatB
	FeatC
	FeatHWDiv
	FeatFPU
	FeatMAC
	FeatEMAC
	FeatEMACB
	FeatMMU
	FeatUSP

	// RegsSame marks an encoding whose two register fields must name the
	// same register. It is not checked during decoding.
	RegsSame
	// RegsDistinct marks an encoding whose two register fields must name
	// different registers. It is not checked during decoding.
	RegsDistinct
)

const (
	ISAAUp     = FeatA | FeatAPlus | FeatB | FeatC
	ISAAPlusUp = FeatAPlus | FeatB | FeatC
	ISABUp     = FeatB | FeatC

	isaMask     = ISAAUp
	unitMask    = FeatHWDiv | FeatFPU | FeatMAC | FeatEMAC | FeatEMACB | FeatMMU | FeatUSP
	AllFeatures = isaMask | unitMask
	policyMask  = RegsSame | RegsDistinct
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FeatA, "isa_a"},
	{FeatAPlus, "isa_a+"},
	{FeatB, "isa_b"},
	{FeatC, "isa_c"},
	{FeatHWDiv, "hwdiv"},
	{FeatFPU, "fpu"},
	{FeatMAC, "mac"},
	{FeatEMAC, "emac"},
	{FeatEMACB, "emac_b"},
	{FeatMMU, "mmu"},
	{FeatUSP, "usp"},
	{RegsSame, "regs_same"},
	{RegsDistinct, "regs_distinct"},
}

var flagAliases = map[string]Flags{
	"isa_a_up":  ISAAUp,
	"isa_a+_up": ISAAPlusUp,
	"isa_b_up":  ISABUp,
	"all":       AllFeatures,
}

func withArity(f Flags, n int) Flags {
	return f&^arityMask | Flags(n)&arityMask
}

// Arity is the number of operands.
func (f Flags) Arity() int {
	return int(f & arityMask)
}

// Features returns only the hardware variant bits.
func (f Flags) Features() Flags {
	return f & AllFeatures
}

// Policy returns only the register constraint bits.
func (f Flags) Policy() Flags {
	return f & policyMask
}

// Has reports whether every bit of x is set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// SupportedBy reports whether an encoding with these flags is implemented
// by a processor offering variants. At least one of the encoding's
// instruction-set revisions must be offered, as must every optional unit
// the encoding needs.
func (f Flags) SupportedBy(variants Flags) bool {
	if isa := f & isaMask; isa != 0 && isa&variants == 0 {
		return false
	}
	return f&unitMask&^variants == 0
}

func (f Flags) String() string {
	var b strings.Builder
	for _, fn := range flagNames {
		if f&fn.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fn.name)
	}
	return b.String()
}

// ParseFeatures parses a list of variant names separated by commas or
// spaces, such as "isa_a+, hwdiv". The composites isa_a_up, isa_a+_up,
// isa_b_up and all are accepted too.
func ParseFeatures(s string) (Flags, error) {
	var ret Flags
	for _, raw := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		name := strings.ToLower(raw)
		if f, ok := flagAliases[name]; ok {
			ret |= f
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				ret |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown feature %q", raw)
		}
	}
	return ret, nil
}
