package coldfire

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/slices"

	"github.com/apparentlymart/cfdecode/decode"
	"github.com/apparentlymart/cfdecode/internal/log"
)

// Decoder decodes instructions for a set of hardware variants.
type Decoder struct {
	// Features lists the variants whose instructions are accepted. The zero
	// value accepts every instruction in the table.
	Features Flags
}

var defaultDecoder Decoder

// Decode decodes one instruction from the start of buf with a Decoder that
// accepts every variant.
func Decode(buf []byte, labels ...Label) (Stmt, []byte, error) {
	return defaultDecoder.Decode(buf, labels...)
}

// Decode decodes one instruction from the start of buf and returns it along
// with the bytes that follow it. labels are attached to the statement.
//
// On failure the returned remainder is buf itself, so the caller can decide
// how to skip the undecodable bytes.
func (d *Decoder) Decode(buf []byte, labels ...Label) (Stmt, []byte, error) {
	c, ok := decode.NewCursor(buf, decode.BigEndian16)
	if !ok {
		return Stmt{}, buf, fmt.Errorf("%w: no opword", ErrTruncated)
	}
	opword := uint16(c.Bits())

	enc, next, err := index.Lookup(c)
	if err != nil {
		if errors.Is(err, decode.ErrTruncated) {
			err = ErrTruncated
		} else {
			err = ErrUnrecognized
		}
		log.Trace(log.DecodeModule, "Lookup failed", "opword", opwordValue(opword), "err", err)
		return Stmt{}, buf, fmt.Errorf("%w: opword %#04x", err, opword)
	}

	// The index only yields rows whose whole pattern matched, but the
	// statement must never be built from a row that disagrees with the
	// words actually read.
	if !enc.Pattern().Match(next.Bits()) {
		log.Trace(log.DecodeModule, "Pattern verification failed", "opword", opwordValue(opword), "encoding", enc)
		return Stmt{}, buf, fmt.Errorf("%w: opword %#04x: pattern verification failed", ErrUnrecognized, opword)
	}

	if d.Features != 0 && !enc.Flags.SupportedBy(d.Features) {
		return Stmt{}, buf, fmt.Errorf("%w: %s needs %s", ErrUnsupported, enc.Inst, enc.Flags.Features())
	}

	args, end, err := decodeOperands(enc, next)
	if err != nil {
		log.Trace(log.DecodeModule, "Operand decoding failed", "opword", opwordValue(opword), "err", err)
		return Stmt{}, buf, fmt.Errorf("%s at opword %#04x: %w", enc.Inst, opword, err)
	}

	rest := end.Remaining()
	return Stmt{
		Labels:   slices.Clone(labels),
		Op:       enc.Inst,
		Args:     args,
		Encoding: enc,
		length:   len(buf) - len(rest),
	}, rest, nil
}

// opwordValue renders an opword in log records. Formatting happens only
// when a handler emits the record.
type opwordValue uint16

func (v opwordValue) LogValue() slog.Value {
	return slog.StringValue(fmt.Sprintf("%#04x", uint16(v)))
}
