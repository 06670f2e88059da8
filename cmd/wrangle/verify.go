package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/apparentlymart/cfdecode/coldfire"
)

// diffTables reports every difference between want and got, row by row.
func diffTables(want, got []*coldfire.Encoding) []string {
	var diffs []string
	for i := 0; i < max(len(want), len(got)); i++ {
		switch {
		case i >= len(want):
			diffs = append(diffs, fmt.Sprintf("row %d: unexpected %s", i+1, got[i]))
		case i >= len(got):
			diffs = append(diffs, fmt.Sprintf("row %d: missing %s", i+1, want[i]))
		default:
			for _, d := range diffRow(want[i], got[i]) {
				diffs = append(diffs, fmt.Sprintf("row %d (%s): %s", i+1, want[i].Inst, d))
			}
		}
	}
	return diffs
}

func diffRow(want, got *coldfire.Encoding) []string {
	var diffs []string
	if want.Inst.Name != got.Inst.Name {
		diffs = append(diffs, fmt.Sprintf("name %s, not %s", got.Inst.Name, want.Inst.Name))
	}
	if want.Bits != got.Bits || want.Mask != got.Mask {
		diffs = append(diffs, fmt.Sprintf("pattern %#o/%#o, not %#o/%#o", got.Bits, got.Mask, want.Bits, want.Mask))
	}
	if want.Words != got.Words {
		diffs = append(diffs, fmt.Sprintf("%d words, not %d", got.Words, want.Words))
	}
	if !equalOperands(want.Operands, got.Operands) {
		diffs = append(diffs, fmt.Sprintf("operands %v, not %v", got.Operands, want.Operands))
	}
	if want.Flags != got.Flags {
		diffs = append(diffs, fmt.Sprintf("features %s, not %s", featureList(got.Flags), featureList(want.Flags)))
	}
	return diffs
}

func equalOperands(a, b []coldfire.Operand) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// verifyListing compares a listing file against the built-in table.
func verifyListing(w io.Writer, filename string) error {
	rows, err := loadListingFile(filename)
	if err != nil {
		return err
	}
	diffs := diffTables(coldfire.Encodings(), rows)
	for _, d := range diffs {
		fmt.Fprintln(w, d)
	}
	if len(diffs) != 0 {
		return fmt.Errorf("%s differs from the built-in table in %d places", filename, len(diffs))
	}
	fmt.Fprintf(w, "%s matches the built-in table (%d rows)\n", filename, len(rows))
	return nil
}

// verifyGolden compares a JSON rendering of the table, as written by
// "wrangle export --format json", against the built-in table.
func verifyGolden(w io.Writer, filename string) error {
	golden, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	current, err := tableJSON(coldfire.Encodings())
	if err != nil {
		return err
	}

	differ := gojsondiff.New()
	delta, err := differ.Compare(golden, current)
	if err != nil {
		return fmt.Errorf("failed to compare %s: %s", filename, err)
	}
	if !delta.Modified() {
		fmt.Fprintf(w, "%s matches the built-in table\n", filename)
		return nil
	}

	// unmarshal for the formatter
	var leftObj interface{}
	if err := json.Unmarshal(golden, &leftObj); err != nil {
		return err
	}
	cfg := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       false,
	}
	asciiDiff, err := formatter.NewAsciiFormatter(leftObj, cfg).Format(delta)
	if err != nil {
		return fmt.Errorf("failed to format diff: %s", err)
	}
	fmt.Fprintln(w, asciiDiff)
	return fmt.Errorf("%s differs from the built-in table", filename)
}
