package um

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_WriteTo(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []Word{0x01020304, 0xdeadbeef}}

	var buf bytes.Buffer
	n, err := prog.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(8), n)
	assert.Equal([]byte{0x01, 0x02, 0x03, 0x04, 0xde, 0xad, 0xbe, 0xef}, buf.Bytes())
}

func TestReadProgram(t *testing.T) {
	assert := assert.New(t)

	data := []byte{0x01, 0x02, 0x03, 0x04, 0xde, 0xad, 0xbe, 0xef}
	prog, err := ReadProgram(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal([]Word{0x01020304, 0xdeadbeef}, prog.Words)

	prog, err = ReadProgram(bytes.NewReader(nil))
	assert.NoError(err)
	assert.Equal(0, len(prog.Words))
}

func TestReadProgram_Truncated(t *testing.T) {
	assert := assert.New(t)

	data := []byte{0x01, 0x02, 0x03, 0x04, 0xde, 0xad}
	prog, err := ReadProgram(bytes.NewReader(data))
	assert.Nil(prog)

	var trunc ErrTruncatedWord
	assert.True(errors.As(err, &trunc))
	assert.Equal(2, int(trunc))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []Word{0x70000000, 0xd0000001, 0x30000053}}

	offsets := []uint32{}
	codes := []Word{}
	for offset, code := range prog.Codes() {
		offsets = append(offsets, offset)
		codes = append(codes, code)
	}

	assert.Equal([]uint32{0, 1, 2}, offsets)
	assert.Equal(prog.Words, codes)
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Words: []Word{0x70000000, 0xd0000001}}

	count := 0
	for range prog.Codes() {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(1, count)
}

func TestProgram_Integration_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	source := strings.Join([]string{
		"ldi 1 'H'",
		"out 1",
		"ldi 0 @data",
		"hlt",
		"label @data",
		`"Hi"`,
		"0xdeadbeef",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]Word{
		0xd2000048,
		0xa0000001,
		0xd0000004,
		0x70000000,
		0x48690000,
		0xdeadbeef,
	}, prog.Words)

	var buf bytes.Buffer
	_, err = prog.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(4*len(prog.Words), buf.Len())

	again, err := ReadProgram(&buf)
	assert.NoError(err)
	assert.Equal(prog.Words, again.Words)

	lines := []string{}
	for line := range again.Listing() {
		lines = append(lines, line)
	}
	assert.Equal([]string{
		"ldi 1 0x48 ; 'H'",
		"out 1",
		"ldi 0 0x04",
		"hlt",
		"0x48690000 ; mul 0 0 0",
		"ldi 7 0xadbeef",
	}, lines)
}
