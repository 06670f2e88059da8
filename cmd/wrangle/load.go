package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/apparentlymart/cfdecode/bitfield"
	"github.com/apparentlymart/cfdecode/coldfire"
)

// loadListingFile reads an opcode listing such as the one written by
// "wrangle export".
func loadListingFile(filename string) ([]*coldfire.Encoding, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rows, err := loadListing(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %s", filename, err)
	}
	return rows, nil
}

// loadListing parses one encoding per line:
//
//	name match-spec... [words=N] operand... features
//
// Match specs are "hi..lo=value", with bits 16 and up belonging to the first
// extension word. Features are a comma-separated list as accepted by
// coldfire.ParseFeatures, or "-" for none.
func loadListing(r io.Reader) ([]*coldfire.Encoding, error) {
	var ret []*coldfire.Encoding

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := trimComments(sc.Text())
		fields := strings.Fields(line)
		if len(fields) < 3 {
			if len(fields) != 0 {
				return nil, fmt.Errorf("line %d: too few fields", lineNum)
			}
			continue
		}
		name := fields[0]
		fields = fields[1:] // skip name

		enc, err := parseRow(name, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s", lineNum, err)
		}
		ret = append(ret, enc)
	}

	return ret, sc.Err()
}

func parseRow(name string, fields []string) (*coldfire.Encoding, error) {
	var bits, mask uint32
	words := 1
	var ops []coldfire.Operand

	// The last field is always the feature list; everything before it is
	// a mixture of match specs, an optional word count and operands, in
	// that order.
	rawFeatures := fields[len(fields)-1]
	fields = fields[:len(fields)-1]

	for _, raw := range fields {
		switch {
		case unicode.IsDigit(rune(raw[0])):
			if len(ops) != 0 {
				return nil, fmt.Errorf("match spec %q after operands", raw)
			}
			v, m, err := parseMatchSpec(raw)
			if err != nil {
				return nil, err
			}
			if mask&m != 0 {
				return nil, fmt.Errorf("match spec %q overlaps an earlier one", raw)
			}
			bits |= v
			mask |= m

		case strings.HasPrefix(raw, "words="):
			n, err := strconv.Atoi(strings.TrimPrefix(raw, "words="))
			if err != nil || n < 1 || n > 2 {
				return nil, fmt.Errorf("invalid word count %q", raw)
			}
			words = n

		default:
			op, err := coldfire.ParseOperand(raw)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
	}

	// A mask reaching into the extension word implies it is read, even
	// without an explicit words=2.
	if mask>>16 != 0 {
		words = max(words, 2)
	}

	var flags coldfire.Flags
	if rawFeatures != "-" {
		f, err := coldfire.ParseFeatures(rawFeatures)
		if err != nil {
			return nil, err
		}
		flags = f
	}

	return coldfire.NewEncoding(coldfire.InstructionNamed(name), bits, mask, words, flags, ops...), nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

// parseMatchSpec parses "hi..lo=value" into the pattern bits and mask it
// describes. The value is in Go integer syntax, so 0o, 0x and 0b prefixes
// and leading-zero octal all work.
func parseMatchSpec(rawSpec string) (val uint32, mask uint32, err error) {
	rawRng, rawWant := partition(rawSpec, "=")
	if rawWant == "" {
		return 0, 0, fmt.Errorf("match spec %q has no value", rawSpec)
	}
	rng, err := bitfield.ParseRange(rawRng)
	if err != nil {
		return 0, 0, fmt.Errorf("match spec %q: %s", rawSpec, err)
	}
	if rng.Hi > 31 {
		return 0, 0, fmt.Errorf("match spec %q reaches past the first extension word", rawSpec)
	}
	want, err := strconv.ParseUint(rawWant, 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("match spec %q: %s", rawSpec, err)
	}
	if want > rng.Ones() {
		return 0, 0, fmt.Errorf("match spec %q: value does not fit in %d bits", rawSpec, rng.Width())
	}
	return uint32(rng.Set(0, want)), uint32(rng.Set(0, rng.Ones())), nil
}
