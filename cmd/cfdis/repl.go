package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/apparentlymart/cfdecode/coldfire"
)

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cfdis_history")
}

// runRepl reads lines of hex words and prints their disassembly. The
// address advances past whatever each line decoded to; ".org addr" moves
// it explicitly.
func runRepl(w io.Writer, dec *coldfire.Decoder, base uint32, history string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "cfdis> ",
		HistoryFile: history,
		Stdout:      w,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %s", err)
	}
	defer rl.Close()

	s := replSession{w: w, d: disassembler{dec: dec, base: base}}
	for {
		input, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// io.EOF on ^D
			return nil
		}
		if strings.TrimSpace(input) == "exit" {
			return nil
		}
		s.eval(input)
	}
}

type replSession struct {
	w io.Writer
	d disassembler
}

func (s *replSession) eval(input string) {
	input = strings.TrimSpace(input)
	if rawAddr, ok := strings.CutPrefix(input, ".org"); ok {
		addr, err := strconv.ParseUint(strings.TrimSpace(rawAddr), 0, 32)
		if err != nil {
			fmt.Fprintf(s.w, "error: invalid address %q\n", strings.TrimSpace(rawAddr))
			return
		}
		s.d.base = uint32(addr)
		return
	}

	buf, err := parseHexWords(input)
	if err != nil {
		fmt.Fprintf(s.w, "error: %s\n", err)
		return
	}
	s.d.walk(buf, func(l line) error {
		fmt.Fprintln(s.w, l)
		if l.Err != "" {
			fmt.Fprintf(s.w, "          %s\n", l.Err)
		}
		s.d.base = l.Addr + uint32(len(l.Bytes))
		return nil
	})
}
