package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apparentlymart/cfdecode/coldfire"
)

// readInput reads filename, or in when filename is "-", as raw bytes or as
// hex text.
func readInput(in io.Reader, filename, format string) ([]byte, error) {
	var r io.Reader = in
	if filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch format {
	case "bin":
		return io.ReadAll(r)
	case "hex":
		buf, err := parseHexText(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %s", filename, err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// parseHexText reads whitespace-separated hex digits. Anything after a '#'
// or ';' on a line is ignored.
func parseHexText(r io.Reader) ([]byte, error) {
	var ret []byte
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		buf, err := parseHexWords(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %s", lineNum, err)
		}
		ret = append(ret, buf...)
	}
	return ret, sc.Err()
}

// parseHexWords parses one line of hex text such as "4e71 2f3c 0000 1000".
// Each group must be an even number of digits and may carry a 0x or $
// prefix.
func parseHexWords(line string) ([]byte, error) {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	var ret []byte
	for _, tok := range strings.Fields(line) {
		digits := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(tok), "0x"), "$")
		if len(digits)%2 != 0 {
			return nil, fmt.Errorf("%q has an odd number of digits", tok)
		}
		buf, err := hex.DecodeString(digits)
		if err != nil {
			return nil, fmt.Errorf("%q is not hex", tok)
		}
		ret = append(ret, buf...)
	}
	return ret, nil
}

// parseLabels parses "addr=name" pairs.
func parseLabels(raw []string) (map[uint32][]coldfire.Label, error) {
	ret := make(map[uint32][]coldfire.Label)
	for _, r := range raw {
		rawAddr, name, ok := strings.Cut(r, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("label %q must be addr=name", r)
		}
		addr, err := strconv.ParseUint(rawAddr, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("label %q: invalid address: %s", r, err)
		}
		ret[uint32(addr)] = append(ret[uint32(addr)], coldfire.Label(name))
	}
	return ret, nil
}
