package coldfire

import (
	"fmt"

	"github.com/apparentlymart/cfdecode/internal/log"
)

// Problem is an inconsistency found in an encoding table.
type Problem struct {
	Encoding *Encoding

	// Other and Opword are set for overlaps: Opword is the first opword
	// both Encoding and Other accept.
	Other  *Encoding
	Opword uint16

	// Unresolved marks an overlap between rows whose register constraints
	// would tell them apart if they were enforced.
	Unresolved bool

	Msg string
}

func (p Problem) String() string {
	if p.Other != nil {
		return fmt.Sprintf("%s and %s both accept %#04x: %s", p.Encoding, p.Other, p.Opword, p.Msg)
	}
	return fmt.Sprintf("%s: %s", p.Encoding, p.Msg)
}

// Validate checks the built-in encoding table.
func Validate() []Problem {
	return ValidateTable(encodings)
}

// ValidateTable checks that each row of rows is well formed and that no
// opword is accepted by two rows. Overlaps are found by trying every
// opword; extension-word bits are taken from the rows' own patterns.
func ValidateTable(rows []*Encoding) []Problem {
	var problems []Problem
	for _, enc := range rows {
		problems = append(problems, checkRow(enc)...)
	}
	problems = append(problems, overlaps(rows)...)

	unresolved := 0
	for _, p := range problems {
		if p.Unresolved {
			unresolved++
		}
	}
	log.Debug(log.TableModule, "Validated table", "rows", len(rows), "problems", len(problems), "unresolved", unresolved)
	return problems
}

func checkRow(enc *Encoding) []Problem {
	var problems []Problem
	report := func(format string, args ...interface{}) {
		problems = append(problems, Problem{Encoding: enc, Msg: fmt.Sprintf(format, args...)})
	}

	if enc.Words < 1 || enc.Words > 2 {
		report("has %d words", enc.Words)
	}
	if enc.Bits&^enc.Mask != 0 {
		report("pattern bits %#o lie outside mask", enc.Bits&^enc.Mask)
	}
	if enc.Words == 1 && enc.Mask>>16 != 0 {
		report("mask reaches past the opword")
	}
	if enc.Flags.Arity() != len(enc.Operands) {
		report("arity %d but %d operands", enc.Flags.Arity(), len(enc.Operands))
	}
	if enc.Flags.Has(RegsSame | RegsDistinct) {
		report("register fields cannot be both equal and distinct")
	}
	for _, op := range enc.Operands {
		limit := uint(16 * enc.Words)
		if uint(op.Pos)+op.Width() > limit || (op.Kind == OpDataRegPair && uint(op.Pos2)+3 > limit) {
			report("operand %s lies outside the pattern", op)
		}
	}
	return problems
}

func overlaps(rows []*Encoding) []Problem {
	var problems []Problem
	seen := make(map[[2]int]bool)
	var cands []int
	for w := 0; w <= 0xFFFF; w++ {
		cands = cands[:0]
		for i, enc := range rows {
			if uint32(w)&enc.Mask&0xFFFF == enc.Bits&0xFFFF {
				cands = append(cands, i)
			}
		}
		for x := 0; x < len(cands); x++ {
			for y := x + 1; y < len(cands); y++ {
				i, j := cands[x], cands[y]
				if seen[[2]int{i, j}] {
					continue
				}
				a, b := rows[i], rows[j]
				if !overlapAt(a, b, uint32(w)) {
					continue
				}
				seen[[2]int{i, j}] = true
				p := Problem{Encoding: a, Other: b, Opword: uint16(w), Msg: "later row is shadowed"}
				if a.Flags.Policy() != 0 && b.Flags.Policy() != 0 {
					p.Unresolved = true
					p.Msg = "register constraints are not enforced"
				}
				problems = append(problems, p)
			}
		}
	}
	return problems
}

// overlapAt reports whether a and b both accept opword w along with some
// extension word.
func overlapAt(a, b *Encoding, w uint32) bool {
	both := a.Mask & b.Mask & 0xFFFF0000
	if (a.Bits^b.Bits)&both != 0 {
		return false
	}
	bits := uint64(w | (a.Bits|b.Bits)&0xFFFF0000)
	return a.Admits(bits, ^uint64(0)) && b.Admits(bits, ^uint64(0))
}
