package coldfire

import "fmt"

// branchConds and setConds name the sixteen condition codes in the order
// of the 4-bit condition field, for Bcc and Scc respectively.
var (
	branchConds = [16]string{"ra", "sr", "hi", "ls", "hs", "lo", "ne", "eq", "vc", "vs", "pl", "mi", "ge", "lt", "gt", "le"}
	setConds    = [16]string{"t", "f", "hi", "ls", "hs", "lo", "ne", "eq", "vc", "vs", "pl", "mi", "ge", "lt", "gt", "le"}
)

// encodings is the decode table. Rows follow the reference manual's
// listing: user instructions alphabetically, then supervisor instructions.
// Where two rows' patterns overlap, the earlier row wins.
var encodings = buildTable()

func buildTable() []*Encoding {
	var t []*Encoding
	add := func(rows ...*Encoding) {
		t = append(t, rows...)
	}

	add(
		op1("add.l", 0o150200, 0o170700, ISAAUp, ea(EaAll), dreg(9)),
		op1("add.l", 0o150600, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op1("adda.l", 0o150700, 0o170700, ISAAUp, ea(EaAll), areg(9)),
		op1("addi.l", 0o003200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("addq.l", 0o050200, 0o170700, ISAAUp, quick3(9), ea(EaAlterable)),
		op1("addx.l", 0o150600, 0o170770, ISAAUp, dreg(0), dreg(9)),
		op1("and.l", 0o140200, 0o170700, ISAAUp, ea(EaData), dreg(9)),
		op1("and.l", 0o140600, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op1("andi.l", 0o001200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("asl.l", 0o160640, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("asl.l", 0o160600, 0o170770, ISAAUp, quick3(9), dreg(0)),
		op1("asr.l", 0o160240, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("asr.l", 0o160200, 0o170770, ISAAUp, quick3(9), dreg(0)),
	)
	add(branches()...)
	add(
		op1("bchg.l", 0o000500, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("bchg.b", 0o000500, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op2("bchg.l", 0o004100, 0, 0o177770, 0o177400, ISAAUp, bitnum(16), dreg(0)),
		op2("bchg.b", 0o004100, 0, 0o177700, 0o177400, ISAAUp, bitnum(16), ea(EaBitStatic)),
		op1("bclr.l", 0o000600, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("bclr.b", 0o000600, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op2("bclr.l", 0o004200, 0, 0o177770, 0o177400, ISAAUp, bitnum(16), dreg(0)),
		op2("bclr.b", 0o004200, 0, 0o177700, 0o177400, ISAAUp, bitnum(16), ea(EaBitStatic)),
		op1("bitrev.l", 0o000300, 0o177770, FeatAPlus|FeatC, dreg(0)),
		op1("bset.l", 0o000700, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("bset.b", 0o000700, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op2("bset.l", 0o004300, 0, 0o177770, 0o177400, ISAAUp, bitnum(16), dreg(0)),
		op2("bset.b", 0o004300, 0, 0o177700, 0o177400, ISAAUp, bitnum(16), ea(EaBitStatic)),
		op1("btst.l", 0o000400, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("btst.b", 0o000400, 0o170700, ISAAUp, dreg(9), ea(EaBitDynamic)),
		op2("btst.l", 0o004000, 0, 0o177770, 0o177400, ISAAUp, bitnum(16), dreg(0)),
		op2("btst.b", 0o004000, 0, 0o177700, 0o177400, ISAAUp, bitnum(16), ea(EaBitStatic)),
		op1("byterev.l", 0o001300, 0o177770, FeatAPlus|FeatC, dreg(0)),
		op1("clr.b", 0o041000, 0o177700, ISAAUp, ea(EaDataAlt)),
		op1("clr.w", 0o041100, 0o177700, ISAAUp, ea(EaDataAlt)),
		op1("clr.l", 0o041200, 0o177700, ISAAUp, ea(EaDataAlt)),
		op1("cmp.b", 0o130000, 0o170700, ISABUp, ea(EaData), dreg(9)),
		op1("cmp.w", 0o130100, 0o170700, ISABUp, ea(EaAll), dreg(9)),
		op1("cmp.l", 0o130200, 0o170700, ISAAUp, ea(EaAll), dreg(9)),
		op1("cmpa.w", 0o130300, 0o170700, ISABUp, ea(EaAll), areg(9)),
		op1("cmpa.l", 0o130700, 0o170700, ISAAUp, ea(EaAll), areg(9)),
		op1("cmpi.b", 0o006000, 0o177770, ISABUp, imm, dreg(0)),
		op1("cmpi.w", 0o006100, 0o177770, ISABUp, imm, dreg(0)),
		op1("cmpi.l", 0o006200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("divs.w", 0o100700, 0o170700, FeatHWDiv, ea(EaData), dreg(9)),
		op2("divs.l", 0o046100, 0o004000, 0o177700, 0o107770, FeatHWDiv|RegsSame, ea(EaExtWord), dreg(28)),
		op1("divu.w", 0o100300, 0o170700, FeatHWDiv, ea(EaData), dreg(9)),
		op2("divu.l", 0o046100, 0o000000, 0o177700, 0o107770, FeatHWDiv|RegsSame, ea(EaExtWord), dreg(28)),
		op1("eor.l", 0o130600, 0o170700, ISAAUp, dreg(9), ea(EaDataAlt)),
		op1("eori.l", 0o005200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("ext.w", 0o044200, 0o177770, ISAAUp, dreg(0)),
		op1("ext.l", 0o044300, 0o177770, ISAAUp, dreg(0)),
		op1("extb.l", 0o044700, 0o177770, ISAAUp, dreg(0)),
		op1("ff1.l", 0o002300, 0o177770, FeatAPlus|FeatC, dreg(0)),
		op1("illegal", 0o045374, 0o177777, ISAAUp),
		op1("jmp", 0o047300, 0o177700, ISAAUp, ea(EaControl)),
		op1("jsr", 0o047200, 0o177700, ISAAUp, ea(EaControl)),
		op1("lea.l", 0o040700, 0o170700, ISAAUp, ea(EaControl), areg(9)),
		op1("link.w", 0o047120, 0o177770, ISAAUp, areg(0), disp16),
		op1("lsl.l", 0o160650, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("lsl.l", 0o160610, 0o170770, ISAAUp, quick3(9), dreg(0)),
		op1("lsr.l", 0o160250, 0o170770, ISAAUp, dreg(9), dreg(0)),
		op1("lsr.l", 0o160210, 0o170770, ISAAUp, quick3(9), dreg(0)),
		op1("mov3q.l", 0o120500, 0o170700, ISABUp, quick3m(9), ea(EaAlterable)),
		op1("move.b", 0o010000, 0o170000, ISAAUp, ea(EaData), eaDst(EaDataAlt)),
		op1("move.w", 0o030000, 0o170000, ISAAUp, ea(EaAll), eaDst(EaDataAlt)),
		op1("move.l", 0o020000, 0o170000, ISAAUp, ea(EaAll), eaDst(EaDataAlt)),
		op1("movea.w", 0o030100, 0o170700, ISAAUp, ea(EaAll), areg(9)),
		op1("movea.l", 0o020100, 0o170700, ISAAUp, ea(EaAll), areg(9)),
		op2("movem.l", 0o044300, 0, 0o177700, 0, ISAAUp, reglist(16), ea(EaMovem)),
		op2("movem.l", 0o046300, 0, 0o177700, 0, ISAAUp, ea(EaMovem), reglist(16)),
		op1("moveq.l", 0o070000, 0o170400, ISAAUp, quick8(0), dreg(9)),
		op1("move.w", 0o041300, 0o177770, ISAAUp, ccr, dreg(0)),
		op1("move.b", 0o042300, 0o177700, ISAAUp, ea(EaToCcr), ccr),
		op2("muls.l", 0o046000, 0o004000, 0o177700, 0o107777, ISAAUp, ea(EaExtWord), dreg(28)),
		op1("muls.w", 0o140700, 0o170700, ISAAUp, ea(EaData), dreg(9)),
		op2("mulu.l", 0o046000, 0o000000, 0o177700, 0o107777, ISAAUp, ea(EaExtWord), dreg(28)),
		op1("mulu.w", 0o140300, 0o170700, ISAAUp, ea(EaData), dreg(9)),
		op1("mvs.b", 0o070400, 0o170700, ISABUp, ea(EaData), dreg(9)),
		op1("mvs.w", 0o070500, 0o170700, ISABUp, ea(EaAll), dreg(9)),
		op1("mvz.b", 0o070600, 0o170700, ISABUp, ea(EaData), dreg(9)),
		op1("mvz.w", 0o070700, 0o170700, ISABUp, ea(EaAll), dreg(9)),
		op1("neg.l", 0o042200, 0o177770, ISAAUp, dreg(0)),
		op1("negx.l", 0o040200, 0o177770, ISAAUp, dreg(0)),
		op1("nop", 0o047161, 0o177777, ISAAUp),
		op1("not.l", 0o043200, 0o177770, ISAAUp, dreg(0)),
		op1("or.l", 0o100200, 0o170700, ISAAUp, ea(EaData), dreg(9)),
		op1("or.l", 0o100600, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op1("ori.l", 0o000200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("pea.l", 0o044100, 0o177700, ISAAUp, ea(EaControl)),
		op1("pulse", 0o045314, 0o177777, ISAAUp),
		op2("rems.l", 0o046100, 0o004000, 0o177700, 0o107770, FeatHWDiv|RegsDistinct, ea(EaExtWord), dpair(16, 28)),
		op2("remu.l", 0o046100, 0o000000, 0o177700, 0o107770, FeatHWDiv|RegsDistinct, ea(EaExtWord), dpair(16, 28)),
		op1("rts", 0o047165, 0o177777, ISAAUp),
		op1("sats.l", 0o046200, 0o177770, ISABUp, dreg(0)),
	)
	add(sets()...)
	add(
		op1("sub.l", 0o110200, 0o170700, ISAAUp, ea(EaAll), dreg(9)),
		op1("sub.l", 0o110600, 0o170700, ISAAUp, dreg(9), ea(EaMemAlt)),
		op1("suba.l", 0o110700, 0o170700, ISAAUp, ea(EaAll), areg(9)),
		op1("subi.l", 0o002200, 0o177770, ISAAUp, imm, dreg(0)),
		op1("subq.l", 0o050600, 0o170700, ISAAUp, quick3(9), ea(EaAlterable)),
		op1("subx.l", 0o110600, 0o170770, ISAAUp, dreg(0), dreg(9)),
		op1("swap.w", 0o044100, 0o177770, ISAAUp, dreg(0)),
		op1("tas.b", 0o045300, 0o177700, ISABUp, ea(EaMemAlt)),
		op1("tpf", 0o050774, 0o177777, ISAAUp),
		op1("tpf.w", 0o050772, 0o177777, ISAAUp, imm16),
		op1("tpf.l", 0o050773, 0o177777, ISAAUp, imm32),
		op1("trap", 0o047100, 0o177760, ISAAUp, quick4(0)),
		op1("tst.b", 0o045000, 0o177700, ISAAUp, ea(EaData)),
		op1("tst.w", 0o045100, 0o177700, ISAAUp, ea(EaAll)),
		op1("tst.l", 0o045200, 0o177700, ISAAUp, ea(EaAll)),
		op1("unlk", 0o047130, 0o177770, ISAAUp, areg(0)),
		op1("wddata.b", 0o175400, 0o177700, ISAAUp, ea(EaMemAlt)),
		op1("wddata.w", 0o175500, 0o177700, ISAAUp, ea(EaMemAlt)),
		op1("wddata.l", 0o175600, 0o177700, ISAAUp, ea(EaMemAlt)),
	)

	// Supervisor instructions.
	add(
		op1("cpushl", 0o172150, 0o177770, ISAAUp, cachesel(6), aind(0)),
		op1("cpushl", 0o172250, 0o177770, ISAAUp, cachesel(6), aind(0)),
		op1("cpushl", 0o172350, 0o177770, ISAAUp, cachesel(6), aind(0)),
		op1("halt", 0o045310, 0o177777, ISAAUp),
		op1("intouch", 0o172050, 0o177770, ISABUp, aind(0)),
		op1("move.w", 0o040300, 0o177770, ISAAUp, sr, dreg(0)),
		op1("move.w", 0o043300, 0o177700, ISAAUp, ea(EaToCcr), sr),
		op1("move.l", 0o047140, 0o177770, FeatUSP, areg(0), usp),
		op1("move.l", 0o047150, 0o177770, FeatUSP, usp, areg(0)),
		op2("movec.l", 0o047173, 0, 0o177777, 0, ISAAUp, reg(28), ctlreg(16)),
		op1("rte", 0o047163, 0o177777, ISAAUp),
		op1("stop", 0o047162, 0o177777, ISAAUp, imm16),
		op2("strldsr", 0o040347, 0o043374, 0o177777, 0o177777, FeatAPlus|FeatC, imm16),
		op2("wdebug.l", 0o175700, 0o000003, 0o177700, 0o177777, ISAAUp, ea(EaMovem)),
	)
	return t
}

// branches returns the Bcc, bra and bsr rows. An 8-bit displacement of 0
// or 0xff selects the word or long form instead.
func branches() []*Encoding {
	var t []*Encoding
	for c, cond := range branchConds {
		bits := uint16(0o060000 | c<<8)
		name := "b" + cond
		t = append(t,
			op1(name+".b", bits, 0o177400, ISAAUp, pcrel8(0)),
			op1(name+".w", bits, 0o177777, ISAAUp, pcrel16),
			op1(name+".l", bits|0xFF, 0o177777, ISABUp, pcrel32),
		)
	}
	return t
}

// sets returns the Scc rows, which only accept a data register.
func sets() []*Encoding {
	var t []*Encoding
	for c, cond := range setConds {
		name := fmt.Sprintf("s%s.b", cond)
		t = append(t, NewEncoding(instruction(name, Byte), uint32(0o050300|c<<8), 0o177770, 1, ISAAUp, dreg(0)))
	}
	return t
}
