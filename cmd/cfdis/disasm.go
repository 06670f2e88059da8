package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/apparentlymart/cfdecode/coldfire"
	"github.com/apparentlymart/cfdecode/internal/log"
)

type disassembler struct {
	dec    *coldfire.Decoder
	base   uint32
	labels map[uint32][]coldfire.Label
	json   bool
	dump   bool
}

// line is one output line of a disassembly: a statement, or the data
// directive standing in for bytes that did not decode.
type line struct {
	Addr  uint32         `json:"addr"`
	Bytes []byte         `json:"-"`
	Stmt  *coldfire.Stmt `json:"stmt,omitempty"`
	Data  string         `json:"data,omitempty"`
	Err   string         `json:"error,omitempty"`
}

func (l line) String() string {
	text := l.Data
	if l.Stmt != nil {
		text = l.Stmt.FormatAt(l.Addr)
	}
	return fmt.Sprintf("%08x  %-29s %s", l.Addr, hexWords(l.Bytes), text)
}

// walk decodes buf from start to end, calling fn for every line. Bytes
// that do not decode are skipped one word at a time, or one byte at the
// very end of an odd-length buffer.
func (d *disassembler) walk(buf []byte, fn func(line) error) error {
	addr := d.base
	for len(buf) > 0 {
		stmt, rest, err := d.dec.Decode(buf, d.labels[addr]...)
		l := line{Addr: addr}
		if err != nil {
			n := min(2, len(buf))
			l.Bytes = buf[:n]
			l.Err = err.Error()
			if n == 2 {
				l.Data = fmt.Sprintf("dc.w $%02x%02x", buf[0], buf[1])
			} else {
				l.Data = fmt.Sprintf("dc.b $%02x", buf[0])
			}
			log.Debug(log.CLIModule, "Emitting data for undecodable bytes", "addr", fmt.Sprintf("%#x", addr), "err", err)
			rest = buf[n:]
		} else {
			l.Bytes = buf[:stmt.Len()]
			l.Stmt = &stmt
		}
		if err := fn(l); err != nil {
			return err
		}
		addr += uint32(len(buf) - len(rest))
		buf = rest
	}
	return nil
}

func (d *disassembler) run(w io.Writer, buf []byte) error {
	enc := json.NewEncoder(w)
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	return d.walk(buf, func(l line) error {
		switch {
		case d.json:
			return enc.Encode(l)
		case d.dump && l.Stmt != nil:
			fmt.Fprintln(w, l)
			cfg.Fdump(w, *l.Stmt)
		default:
			fmt.Fprintln(w, l)
		}
		return nil
	})
}

// hexWords renders bytes as space-separated 16-bit words.
func hexWords(buf []byte) string {
	var b strings.Builder
	for i := 0; i < len(buf); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", buf[i])
		if i+1 < len(buf) {
			fmt.Fprintf(&b, "%02x", buf[i+1])
		}
	}
	return b.String()
}
