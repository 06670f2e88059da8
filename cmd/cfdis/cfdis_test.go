package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apparentlymart/cfdecode/coldfire"
)

// sample holds nop, add.l d0,d3, bra.b, an unrecognized word, rts and a
// trailing odd byte.
const sample = "4e71 d680 6002 ffff # comment\n0x4e75 $aa\n"

func sampleBytes(t *testing.T) []byte {
	buf, err := parseHexText(strings.NewReader(sample))
	require.NoError(t, err)
	return buf
}

func TestParseHexWords(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "4e71", want: []byte{0x4e, 0x71}},
		{in: "0x4E71 $d680", want: []byte{0x4e, 0x71, 0xd6, 0x80}},
		{in: "2f3c00001000", want: []byte{0x2f, 0x3c, 0x00, 0x00, 0x10, 0x00}},
		{in: "4e71 ; rest ignored", want: []byte{0x4e, 0x71}},
		{in: "4e7", wantErr: true},
		{in: "zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexWords(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLabels(t *testing.T) {
	got, err := parseLabels([]string{"0x1000=start", "4096=entry", "0x1004=loop"})
	require.NoError(t, err)
	assert.Equal(t, []coldfire.Label{"start", "entry"}, got[0x1000])
	assert.Equal(t, []coldfire.Label{"loop"}, got[0x1004])

	for _, bad := range []string{"start", "0x1000=", "zz=start"} {
		_, err := parseLabels([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestDisasm(t *testing.T) {
	d := disassembler{
		dec:    &coldfire.Decoder{},
		base:   0x1000,
		labels: map[uint32][]coldfire.Label{0x1008: {"done"}},
	}
	var out bytes.Buffer
	require.NoError(t, d.run(&out, sampleBytes(t)))

	var got [][]string
	for _, l := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		got = append(got, strings.Fields(l))
	}
	assert.Equal(t, [][]string{
		{"00001000", "4e71", "nop"},
		{"00001002", "d680", "add.l", "d0,d3"},
		{"00001004", "6002", "bra.b", "$1008"},
		{"00001006", "ffff", "dc.w", "$ffff"},
		{"00001008", "4e75", "done:", "rts"},
		{"0000100a", "aa", "dc.b", "$aa"},
	}, got)
}

func TestDisasmFeatures(t *testing.T) {
	d := disassembler{dec: &coldfire.Decoder{Features: coldfire.FeatA}}
	var out bytes.Buffer
	require.NoError(t, d.run(&out, []byte{0xa1, 0x40}))
	assert.Contains(t, out.String(), "dc.w $a140")

	d.dec = &coldfire.Decoder{Features: coldfire.FeatB}
	out.Reset()
	require.NoError(t, d.run(&out, []byte{0xa1, 0x40}))
	assert.Contains(t, out.String(), "mov3q.l #-1,d0")
}

func TestDisasmJSON(t *testing.T) {
	d := disassembler{dec: &coldfire.Decoder{}, json: true}
	var out bytes.Buffer
	require.NoError(t, d.run(&out, []byte{0x4e, 0x71, 0xff, 0xff}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first struct {
		Addr uint32 `json:"addr"`
		Stmt struct {
			Op     string `json:"op"`
			Length int    `json:"length"`
		} `json:"stmt"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "nop", first.Stmt.Op)
	assert.Equal(t, 2, first.Stmt.Length)

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, float64(2), second["addr"])
	assert.Equal(t, "dc.w $ffff", second["data"])
	assert.Contains(t, second["error"], "unrecognized opcode")
	assert.NotContains(t, second, "stmt")
}

func TestReplSession(t *testing.T) {
	var out bytes.Buffer
	s := replSession{w: &out, d: disassembler{dec: &coldfire.Decoder{}, base: 0x100}}

	s.eval("4e71 4e71")
	s.eval("6002")
	s.eval(".org 0x2000")
	s.eval("ffff")
	s.eval("xyz")
	s.eval(".org nowhere")

	text := out.String()
	assert.Contains(t, text, "00000100  4e71")
	assert.Contains(t, text, "00000102  4e71")
	assert.Contains(t, text, "bra.b $108")
	assert.Contains(t, text, "00002000  ffff")
	assert.Contains(t, text, "unrecognized opcode")
	assert.Contains(t, text, `error: "xyz" has an odd number of digits`)
	assert.Contains(t, text, `error: invalid address "nowhere"`)
}

func TestStats(t *testing.T) {
	buf := sampleBytes(t)
	buf = append(buf[:len(buf)-1], 0x4e, 0x71)
	st := collectStats(&coldfire.Decoder{}, buf)

	assert.Equal(t, 5, st.Stmts)
	assert.Equal(t, 1, st.Undecoded)
	assert.Equal(t, mnemonicCount{Name: "nop", Count: 2}, st.Counts[0])
	assert.Len(t, st.Counts, 4)

	var out bytes.Buffer
	writeStats(&out, st)
	assert.Contains(t, out.String(), "5 statements, 1 undecoded words")

	out.Reset()
	require.NoError(t, renderChart(&out, "sample", st))
	assert.Contains(t, out.String(), "Mnemonic frequency")
	assert.Contains(t, out.String(), "add.l")
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	hexFile := filepath.Join(dir, "code.hex")
	require.NoError(t, os.WriteFile(hexFile, []byte(sample), 0o644))
	binFile := filepath.Join(dir, "code.bin")
	require.NoError(t, os.WriteFile(binFile, []byte{0x4e, 0x71, 0x4e, 0x75}, 0o644))
	chart := filepath.Join(dir, "chart.html")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("disasm", "--format", "hex", "--base", "0x1000", "--label", "0x1000=start", hexFile)
	require.NoError(t, err)
	assert.Contains(t, out, "start: nop")

	out, err = run("disasm", binFile)
	require.NoError(t, err)
	assert.Contains(t, out, "00000002  4e75")

	out, err = run("stats", "--chart", chart, binFile)
	require.NoError(t, err)
	assert.Contains(t, out, "2 statements")
	assert.FileExists(t, chart)

	_, err = run("disasm", "--isa", "isa_q", binFile)
	assert.Error(t, err)
	_, err = run("disasm", "--format", "octal", binFile)
	assert.Error(t, err)
}
