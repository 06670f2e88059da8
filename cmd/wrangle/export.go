package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/apparentlymart/cfdecode/bitfield"
	"github.com/apparentlymart/cfdecode/coldfire"
)

// writeListing writes rows in the format loadListing reads.
func writeListing(w io.Writer, rows []*coldfire.Encoding) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "# ColdFire encoding table, in declaration order.")
	fmt.Fprintln(tw, "#")
	fmt.Fprintln(tw, "# name\tmatch\toperands\tfeatures")
	for _, enc := range rows {
		specs := matchSpecs(enc.Bits, enc.Mask, enc.Words)
		if enc.Words == 2 && enc.Mask>>16 == 0 {
			// Nothing in the match specs implies the extension word.
			specs = append(specs, "words=2")
		}
		ops := make([]string, len(enc.Operands))
		for i, op := range enc.Operands {
			ops[i] = op.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", enc.Inst.Name, strings.Join(specs, " "), strings.Join(ops, " "), featureList(enc.Flags))
	}
	return tw.Flush()
}

// matchSpecs describes each run of fixed bits as a "hi..lo=value" spec. Runs
// do not cross from one word into the next.
func matchSpecs(bits, mask uint32, words int) []string {
	var ret []string
	for word := words - 1; word >= 0; word-- {
		base := uint(16 * word)
		hi := int(base) + 15
		for hi >= int(base) {
			if mask&(1<<hi) == 0 {
				hi--
				continue
			}
			lo := hi
			for lo > int(base) && mask&(1<<(lo-1)) != 0 {
				lo--
			}
			rng := bitfield.Range{Hi: uint(hi), Lo: uint(lo)}
			ret = append(ret, fmt.Sprintf("%s=%#o", rng, rng.Get(uint64(bits))))
			hi = lo - 1
		}
	}
	return ret
}

// featureList spells flags the way coldfire.ParseFeatures reads them,
// preferring the composite names for runs of instruction-set revisions.
func featureList(flags coldfire.Flags) string {
	f := flags.Features() | flags.Policy()
	var names []string
	for _, c := range []struct {
		flags coldfire.Flags
		name  string
	}{
		{coldfire.ISAAUp, "isa_a_up"},
		{coldfire.ISAAPlusUp, "isa_a+_up"},
		{coldfire.ISABUp, "isa_b_up"},
	} {
		if f.Has(c.flags) {
			names = append(names, c.name)
			f &^= c.flags
		}
	}
	if f != 0 {
		names = append(names, strings.Split(f.String(), ", ")...)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

// writeGoMnemonics writes a Go source file declaring one constant per
// distinct instruction name, in table order.
func writeGoMnemonics(w io.Writer, pkg string, rows []*coldfire.Encoding) error {
	var names []string
	seen := make(map[string]bool)
	for _, enc := range rows {
		if !seen[enc.Inst.Name] {
			seen[enc.Inst.Name] = true
			names = append(names, enc.Inst.Name)
		}
	}

	fmt.Fprintf(w, "// Code generated by wrangle export; DO NOT EDIT.\n\n")
	fmt.Fprintf(w, "package %s\n\n", pkg)
	fmt.Fprintf(w, "// Mnemonic identifies one instruction name of the ColdFire encoding table.\n")
	fmt.Fprintf(w, "type Mnemonic uint16\n\n")
	fmt.Fprintf(w, "const (\n")
	width := 0
	for _, name := range names {
		width = max(width, len(makeIdentTitle(name)))
	}
	for i, name := range names {
		if i == 0 {
			fmt.Fprintf(w, "\t%-*s Mnemonic = iota // %s\n", width, makeIdentTitle(name), name)
		} else {
			fmt.Fprintf(w, "\t%-*s                 // %s\n", width, makeIdentTitle(name), name)
		}
	}
	fmt.Fprintf(w, ")\n\n")

	fmt.Fprintf(w, "var mnemonicNames = [...]string{\n")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s: %q,\n", makeIdentTitle(name), name)
	}
	fmt.Fprintf(w, "}\n\n")
	fmt.Fprintf(w, "func (m Mnemonic) String() string {\n")
	fmt.Fprintf(w, "\treturn mnemonicNames[m]\n")
	fmt.Fprintf(w, "}\n")
	return nil
}

type jsonTable struct {
	Rows []jsonRow `json:"rows"`
}

type jsonRow struct {
	Name     string   `json:"name"`
	Match    []string `json:"match"`
	Words    int      `json:"words"`
	Operands []string `json:"operands"`
	Features string   `json:"features"`
}

// tableJSON renders rows as the JSON document "verify --golden" compares.
func tableJSON(rows []*coldfire.Encoding) ([]byte, error) {
	t := jsonTable{Rows: make([]jsonRow, len(rows))}
	for i, enc := range rows {
		ops := make([]string, len(enc.Operands))
		for j, op := range enc.Operands {
			ops[j] = op.String()
		}
		t.Rows[i] = jsonRow{
			Name:     enc.Inst.Name,
			Match:    matchSpecs(enc.Bits, enc.Mask, enc.Words),
			Words:    enc.Words,
			Operands: ops,
			Features: featureList(enc.Flags),
		}
	}
	return json.MarshalIndent(t, "", "  ")
}
