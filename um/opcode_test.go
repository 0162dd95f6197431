package um

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeNames(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op        Opcode
		canonical string
		legacy    string
		arity     int
	}{
		{OP_CMOV, "cmov", "mov", 3},
		{OP_AIDX, "aidx", "lda", 3},
		{OP_AUPD, "aupd", "sta", 3},
		{OP_ADD, "add", "add", 3},
		{OP_MUL, "mul", "mul", 3},
		{OP_DIV, "div", "div", 3},
		{OP_NAND, "nand", "nan", 3},
		{OP_HALT, "halt", "hlt", 0},
		{OP_ALLOC, "alloc", "new", 2},
		{OP_DEALLOC, "dealloc", "del", 1},
		{OP_OUT, "out", "out", 1},
		{OP_IN, "in", "inp", 1},
		{OP_LOADPROG, "loadprog", "prg", 2},
		{OP_LOADIMM, "loadimm", "ldi", 2},
	}

	assert.Equal(len(table), len(opTable))

	for _, entry := range table {
		assert.Equal(entry.canonical, entry.op.String())
		assert.Equal(entry.legacy, entry.op.Legacy())
		assert.Equal(entry.arity, entry.op.Arity())

		op, ok := OpcodeByName(entry.canonical)
		assert.True(ok, entry.canonical)
		assert.Equal(entry.op, op)

		op, ok = OpcodeByName(entry.legacy)
		assert.True(ok, entry.legacy)
		assert.Equal(entry.op, op)

		op, ok = OpcodeByName(strings.ToUpper(entry.canonical))
		assert.True(ok, entry.canonical)
		assert.Equal(entry.op, op)
	}

	_, ok := OpcodeByName("bogus")
	assert.False(ok)
}

func TestOpcodeValid(t *testing.T) {
	assert := assert.New(t)

	for op := Opcode(0); op <= Opcode(13); op++ {
		assert.True(op.Valid(), op)
	}
	assert.False(Opcode(14).Valid())
	assert.False(Opcode(15).Valid())
}

func TestMakeCodeReg(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Word(0x00000053), MakeCodeReg(OP_CMOV, 1, 2, 3))
	assert.Equal(Word(0x30000053), MakeCodeReg(OP_ADD, 1, 2, 3))
	assert.Equal(Word(0x70000000), MakeCodeReg(OP_HALT))
	assert.Equal(Word(0x8000000e), MakeCodeReg(OP_ALLOC, 1, 6))
	assert.Equal(Word(0xa0000001), MakeCodeReg(OP_OUT, 1))

	// Register values mask to 3 bits.
	assert.Equal(Word(0xa0000002), MakeCodeReg(OP_OUT, 10))
	assert.Equal(Word(0x30000049), MakeCodeReg(OP_ADD, 9, 1, 1))
}

func TestMakeCodeImm(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Word(0xd4000042), MakeCodeImm(2, 0x42))
	assert.Equal(Word(0xd3ffffff), MakeCodeImm(1, MAX_IMM))

	// Both fields mask silently.
	assert.Equal(Word(0xd2000042), MakeCodeImm(9, 0x42))
	assert.Equal(Word(0xd0000000), MakeCodeImm(0, 0x2000000))
	assert.Equal(Word(0xd0000001), MakeCodeImm(0, 0x2000001))
}

func TestCodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for code := OP_CMOV; code <= OP_LOADPROG; code++ {
		regs := []uint32{5, 2, 7}[:code.Arity()]
		w := MakeCodeReg(code, regs...)
		assert.True(w.Canonical(), code.String())

		inst, ok := w.Decode().(Regs)
		assert.True(ok, code.String())
		assert.Equal(code, inst.Op)
		assert.Equal(regs, inst.Reg)
		assert.Equal(w, inst.Code())
	}

	w := MakeCodeImm(3, 0x155aa55)
	assert.True(w.Canonical())

	inst, ok := w.Decode().(Imm)
	assert.True(ok)
	assert.Equal(uint32(3), inst.Reg)
	assert.Equal(uint32(0x155aa55), inst.Value)
	assert.Equal(w, inst.Code())
}

func TestCanonical(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word      Word
		canonical bool
	}{
		{0x30000053, true},  // add 1 2 3
		{0x30000253, false}, // add with a stray bit above the operands
		{0x70000000, true},  // hlt
		{0x70000001, false}, // hlt with a stray low bit
		{0x71000000, false}, // hlt with a stray immediate-field bit
		{0x7e000000, false}, // hlt with stray bits 25-27
		{0xa0000007, true},  // out 7
		{0xa0000009, false}, // out with a stray bit
		{0xd0000000, true},  // ldi uses its full immediate field
		{0xdfffffff, true},
		{0xe0000000, false}, // no opcode defined
		{0xf0000001, false},
	}

	for _, entry := range table {
		assert.Equal(entry.canonical, entry.word.Canonical(), entry.word)
	}
}
