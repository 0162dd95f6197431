package um

import (
	"fmt"
	"strconv"
)

// Instruction is one decoded word. The concrete type is Raw for words
// whose top four bits name no opcode, Imm for loadimm, and Regs for
// everything else.
type Instruction interface {
	// Code returns the canonical word encoding of the instruction. For a
	// non-canonical source word this differs from the original: the stray
	// bits outside the operand fields are gone.
	Code() Word
	// String returns the mnemonic (or raw hex) form of the instruction.
	String() string
}

// Raw is a word with an undefined opcode.
type Raw struct {
	Word Word
}

func (inst Raw) Code() Word {
	return inst.Word
}

func (inst Raw) String() string {
	return fmt.Sprintf("0x%08x", uint32(inst.Word))
}

// Imm is a decoded loadimm instruction.
type Imm struct {
	Reg   uint32
	Value uint32
}

func (inst Imm) Code() Word {
	return MakeCodeImm(inst.Reg, inst.Value)
}

func (inst Imm) String() string {
	return fmt.Sprintf("ldi %d 0x%02x", inst.Reg, inst.Value)
}

// Regs is a decoded register-operand instruction.
type Regs struct {
	Op  Opcode
	Reg []uint32
}

func (inst Regs) Code() Word {
	return MakeCodeReg(inst.Op, inst.Reg...)
}

func (inst Regs) String() string {
	line := inst.Op.Legacy()
	for _, reg := range inst.Reg {
		line += " " + strconv.FormatUint(uint64(reg), 10)
	}
	return line
}

// Decode extracts the instruction encoded by the word. Operand fields are
// read from the same positions MakeCodeReg and MakeCodeImm write them.
func (w Word) Decode() Instruction {
	op := w.Opcode()
	switch {
	case op == OP_LOADIMM:
		return Imm{Reg: uint32(w>>25) & 7, Value: uint32(w) & MAX_IMM}
	case op.Valid():
		argc := op.Arity()
		regs := make([]uint32, argc)
		for i := range regs {
			regs[i] = uint32(w>>regShift(argc, i)) & 7
		}
		return Regs{Op: op, Reg: regs}
	}
	return Raw{Word: w}
}

// Listing renders the word as one disassembly output line: the mnemonic
// form when the word is canonical, the raw hex annotated with the decoded
// mnemonic when not (re-assembling that mnemonic would not reproduce the
// original bytes), and bare hex for an undefined opcode.
func (w Word) Listing() string {
	switch inst := w.Decode().(type) {
	case Imm:
		if inst.Value >= 0x20 && inst.Value < 0x7f {
			return fmt.Sprintf("%v ; '%c'", inst, rune(inst.Value))
		}
		return inst.String()
	case Regs:
		if w.Canonical() {
			return inst.String()
		}
		return fmt.Sprintf("0x%08x ; %v", uint32(w), inst)
	default:
		return inst.String()
	}
}
