package coldfire

import (
	"fmt"

	"github.com/apparentlymart/cfdecode/decode"
)

// operandReader decodes the operands of one encoding, taking extension
// words from the cursor as each operand needs them.
type operandReader struct {
	enc  *Encoding
	bits uint64
	c    decode.Cursor
}

func decodeOperands(enc *Encoding, c decode.Cursor) ([]Arg, decode.Cursor, error) {
	r := operandReader{enc: enc, bits: c.Bits(), c: c}
	args := make([]Arg, 0, len(enc.Operands))
	for i, op := range enc.Operands {
		arg, err := r.operand(op)
		if err != nil {
			return nil, c, fmt.Errorf("operand %d (%s): %w", i, op, err)
		}
		args = append(args, arg)
	}
	return args, r.c, nil
}

// word reads the next extension word.
func (r *operandReader) word() (uint16, error) {
	next, ok := r.c.Advance()
	if !ok {
		return 0, ErrTruncated
	}
	r.c = next
	return uint16(next.Last()), nil
}

func (r *operandReader) long() (uint32, error) {
	hi, err := r.word()
	if err != nil {
		return 0, err
	}
	lo, err := r.word()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// immediate reads an immediate of the given size. A byte immediate still
// takes a whole word, of which only the low byte is used.
func (r *operandReader) immediate(size Size) (Imm, error) {
	switch size {
	case Byte:
		w, err := r.word()
		return Imm{Value: int64(uint8(w)), Size: Byte}, err
	case Word:
		w, err := r.word()
		return Imm{Value: int64(w), Size: Word}, err
	default:
		l, err := r.long()
		return Imm{Value: int64(l), Size: Long}, err
	}
}

func (r *operandReader) field(op Operand, pos uint8, width uint) uint8 {
	return uint8(op.field(r.bits, pos, width))
}

func (r *operandReader) dataReg(n uint8) (DataReg, error) {
	d, ok := DataRegFromNum(n)
	if !ok {
		return 0, fmt.Errorf("%w: data register %d", ErrInvalidOperand, n)
	}
	return d, nil
}

func (r *operandReader) addrReg(n uint8) (AddrReg, error) {
	a, ok := AddrRegFromNum(n)
	if !ok {
		return 0, fmt.Errorf("%w: address register %d", ErrInvalidOperand, n)
	}
	return a, nil
}

func (r *operandReader) operand(op Operand) (Arg, error) {
	switch op.Kind {
	case OpEa, OpEaMove:
		return r.ea(op)
	case OpDataReg:
		return r.dataReg(r.field(op, op.Pos, 3))
	case OpAddrReg:
		return r.addrReg(r.field(op, op.Pos, 3))
	case OpAddrInd:
		a, err := r.addrReg(r.field(op, op.Pos, 3))
		return Indirect{Base: a}, err
	case OpReg:
		reg, ok := RegFromNum(r.field(op, op.Pos, 4))
		if !ok {
			return nil, ErrInvalidOperand
		}
		return reg, nil
	case OpDataRegPair:
		first, err := r.dataReg(r.field(op, op.Pos, 3))
		if err != nil {
			return nil, err
		}
		second, err := r.dataReg(r.field(op, op.Pos2, 3))
		return RegPair{First: first, Second: second}, err
	case OpImm:
		return r.immediate(r.enc.Inst.Size)
	case OpImm16:
		return r.immediate(Word)
	case OpImm32:
		return r.immediate(Long)
	case OpDisp16:
		w, err := r.word()
		return Imm{Value: int64(int16(w))}, err
	case OpBitNum:
		return Imm{Value: int64(r.field(op, op.Pos, 8))}, nil
	case OpQuick3:
		v := int64(r.field(op, op.Pos, 3))
		if v == 0 {
			v = 8
		}
		return Imm{Value: v}, nil
	case OpQuick3M:
		v := int64(r.field(op, op.Pos, 3))
		if v == 0 {
			v = -1
		}
		return Imm{Value: v}, nil
	case OpQuick4:
		return Imm{Value: int64(r.field(op, op.Pos, 4))}, nil
	case OpQuick8:
		return Imm{Value: int64(int8(r.field(op, op.Pos, 8)))}, nil
	case OpPCRel8:
		return PCRel{Disp: int32(int8(r.field(op, op.Pos, 8))), Size: Byte}, nil
	case OpPCRel16:
		w, err := r.word()
		return PCRel{Disp: int32(int16(w)), Size: Word}, err
	case OpPCRel32:
		l, err := r.long()
		return PCRel{Disp: int32(l), Size: Long}, err
	case OpRegList:
		return RegList(op.field(r.bits, op.Pos, 16)), nil
	case OpCacheSel:
		return CacheSel(r.field(op, op.Pos, 2)), nil
	case OpCtlReg:
		return CtlReg(op.field(r.bits, op.Pos, 12)), nil
	case OpCCR:
		return CCR, nil
	case OpSR:
		return SR, nil
	case OpUSP:
		return USP, nil
	default:
		return nil, fmt.Errorf("%w: unknown operand kind %s", ErrInvalidOperand, op.Kind)
	}
}

// ea decodes an effective address, reading any extension words it needs.
func (r *operandReader) ea(op Operand) (Arg, error) {
	mode, reg := op.mode(r.bits)
	if !op.Modes.Has(mode) {
		return nil, fmt.Errorf("%w: addressing mode %d not allowed", ErrInvalidOperand, mode)
	}

	switch mode {
	case ModeDataReg:
		return r.dataReg(reg)
	case ModeAddrReg:
		return r.addrReg(reg)
	}
	if mode <= ModeIndex {
		base, err := r.addrReg(reg)
		if err != nil {
			return nil, err
		}
		switch mode {
		case ModeInd:
			return Indirect{Base: base}, nil
		case ModePostInc:
			return PostInc{Base: base}, nil
		case ModePreDec:
			return PreDec{Base: base}, nil
		case ModeDisp:
			w, err := r.word()
			return Disp{Base: base, Disp: int16(w)}, err
		default:
			disp, index, scale, err := r.brief()
			return Index{Base: base, Disp: disp, Index: index, Scale: scale}, err
		}
	}

	switch mode {
	case ModeAbsShort:
		w, err := r.word()
		return AbsShort{Addr: int16(w)}, err
	case ModeAbsLong:
		l, err := r.long()
		return AbsLong{Addr: l}, err
	case ModePCDisp:
		w, err := r.word()
		return PCDisp{Disp: int16(w)}, err
	case ModePCIndex:
		disp, index, scale, err := r.brief()
		return PCIndex{Disp: disp, Index: index, Scale: scale}, err
	case ModeImm:
		size := r.enc.Inst.Size
		if size == Unsized {
			size = Word
		}
		return r.immediate(size)
	default:
		return nil, fmt.Errorf("%w: addressing mode %d", ErrInvalidOperand, mode)
	}
}

// brief reads a brief extension word. ColdFire only has the long-index
// form with no full extension words, so bit 11 must be set and bit 8 clear.
func (r *operandReader) brief() (int8, Reg, uint8, error) {
	w, err := r.word()
	if err != nil {
		return 0, 0, 0, err
	}
	if w&0x0100 != 0 {
		return 0, 0, 0, fmt.Errorf("%w: full extension word %#04x", ErrInvalidOperand, w)
	}
	if w&0x0800 == 0 {
		return 0, 0, 0, fmt.Errorf("%w: word-sized index in %#04x", ErrInvalidOperand, w)
	}
	index, _ := RegFromNum(uint8(w >> 12))
	return int8(w), index, 1 << (w >> 9 & 3), nil
}
