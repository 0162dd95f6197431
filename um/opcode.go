package um

import (
	"strings"
)

const (
	// MAX_IMM is the largest loadimm immediate (25 bits).
	MAX_IMM = uint32(1<<25 - 1)

	// MAX_WORDS is the largest number of words in a Program, fixed by the
	// width of the loadimm immediate field.
	MAX_WORDS = 1 << 25
)

// Opcode is the 4-bit operation selector in the top bits of a Word.
// Values 0 through 13 are defined; 14 and 15 name no operation.
type Opcode uint32

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_CMOV     = Opcode(0)  // cmov
	OP_AIDX     = Opcode(1)  // aidx
	OP_AUPD     = Opcode(2)  // aupd
	OP_ADD      = Opcode(3)  // add
	OP_MUL      = Opcode(4)  // mul
	OP_DIV      = Opcode(5)  // div
	OP_NAND     = Opcode(6)  // nand
	OP_HALT     = Opcode(7)  // halt
	OP_ALLOC    = Opcode(8)  // alloc
	OP_DEALLOC  = Opcode(9)  // dealloc
	OP_OUT      = Opcode(10) // out
	OP_IN       = Opcode(11) // in
	OP_LOADPROG = Opcode(12) // loadprog
	OP_LOADIMM  = Opcode(13) // loadimm
)

// opInfo pairs an opcode's two accepted spellings with its register count.
type opInfo struct {
	canonical string
	legacy    string
	arity     int
}

// opTable is the fixed ISA definition, indexed by opcode value.
var opTable = [...]opInfo{
	OP_CMOV:     {"cmov", "mov", 3},
	OP_AIDX:     {"aidx", "lda", 3},
	OP_AUPD:     {"aupd", "sta", 3},
	OP_ADD:      {"add", "add", 3},
	OP_MUL:      {"mul", "mul", 3},
	OP_DIV:      {"div", "div", 3},
	OP_NAND:     {"nand", "nan", 3},
	OP_HALT:     {"halt", "hlt", 0},
	OP_ALLOC:    {"alloc", "new", 2},
	OP_DEALLOC:  {"dealloc", "del", 1},
	OP_OUT:      {"out", "out", 1},
	OP_IN:       {"in", "inp", 1},
	OP_LOADPROG: {"loadprog", "prg", 2},
	OP_LOADIMM:  {"loadimm", "ldi", 2},
}

// opByName resolves either spelling to its opcode.
var opByName = func() map[string]Opcode {
	byName := make(map[string]Opcode, 2*len(opTable))
	for code, info := range opTable {
		byName[info.canonical] = Opcode(code)
		byName[info.legacy] = Opcode(code)
	}
	return byName
}()

// OpcodeByName resolves a canonical or legacy mnemonic spelling,
// case-insensitively.
func OpcodeByName(name string) (op Opcode, ok bool) {
	op, ok = opByName[strings.ToLower(name)]
	return
}

// Valid reports whether the opcode value is defined by the ISA.
func (op Opcode) Valid() bool {
	return int(op) < len(opTable)
}

// Arity returns the number of register operands the opcode consumes.
func (op Opcode) Arity() int {
	return opTable[op].arity
}

// Legacy returns the short mnemonic spelling.
func (op Opcode) Legacy() string {
	return opTable[op].legacy
}

// Word is a single 32-bit instruction or data word.
type Word uint32

// Opcode returns the value of the top four bits.
func (w Word) Opcode() Opcode {
	return Opcode(w >> 28)
}

// regShift is the bit position of register operand i of argc: operands
// pack into the low 3*argc bits, most significant operand first.
func regShift(argc, i int) uint {
	return uint(3 * (argc - i - 1))
}

// MakeCodeReg packs an instruction word from register operands. Register
// values are masked to 3 bits.
func MakeCodeReg(op Opcode, regs ...uint32) Word {
	w := Word(op) << 28
	for i, reg := range regs {
		w |= Word(reg&7) << regShift(len(regs), i)
	}
	return w
}

// MakeCodeImm packs a loadimm instruction word: a register at bits 27-25
// and a 25-bit immediate. Both are masked to their field widths.
func MakeCodeImm(reg, imm uint32) Word {
	return Word(OP_LOADIMM)<<28 | Word(reg&7)<<25 | Word(imm&MAX_IMM)
}

// Canonical reports whether the word is exactly what the encoder emits for
// its decoded form: no bits set below the opcode outside the operand
// fields in use. loadimm uses its entire immediate field and is always
// canonical. Words with an undefined opcode never are.
func (w Word) Canonical() bool {
	op := w.Opcode()
	switch {
	case op == OP_LOADIMM:
		return true
	case op.Valid():
		used := Word(1)<<(3*op.Arity()) - 1
		return w&0x0fffffff&^used == 0
	}
	return false
}
