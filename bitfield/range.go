package bitfield

import (
	"fmt"
	"strconv"
	"strings"
)

// Range names a field by its highest and lowest bit numbers, as written in
// reference manuals ("11:9").
type Range struct {
	Hi, Lo uint
}

// ParseRange parses "hi:lo", "hi..lo" or a single bit number.
func ParseRange(raw string) (Range, error) {
	rawHi, rawLo := raw, raw
	if i := strings.Index(raw, ".."); i >= 0 {
		rawHi, rawLo = raw[:i], raw[i+2:]
	} else if i := strings.IndexByte(raw, ':'); i >= 0 {
		rawHi, rawLo = raw[:i], raw[i+1:]
	}
	hi, err := strconv.ParseUint(strings.TrimSpace(rawHi), 10, 8)
	if err != nil {
		return Range{}, fmt.Errorf("invalid bit range %q: %s", raw, err)
	}
	lo, err := strconv.ParseUint(strings.TrimSpace(rawLo), 10, 8)
	if err != nil {
		return Range{}, fmt.Errorf("invalid bit range %q: %s", raw, err)
	}
	if lo > hi {
		return Range{}, fmt.Errorf("invalid bit range %q: bottom bit is above top bit", raw)
	}
	return Range{Hi: uint(hi), Lo: uint(lo)}, nil
}

// Width is the number of bits in the range.
func (r Range) Width() uint {
	return r.Hi - r.Lo + 1
}

// Ones is the right-aligned mask for a value stored in the range.
func (r Range) Ones() uint64 {
	return Ones[uint64](r.Width())
}

// Get extracts the range from w.
func (r Range) Get(w uint64) uint64 {
	return Get(w, r.Lo, r.Ones())
}

// Set stores v into the range of w.
func (r Range) Set(w uint64, v uint64) uint64 {
	return Set(w, r.Lo, r.Ones(), v)
}

func (r Range) String() string {
	if r.Hi == r.Lo {
		return strconv.FormatUint(uint64(r.Hi), 10)
	}
	return fmt.Sprintf("%d..%d", r.Hi, r.Lo)
}
