package um

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
)

// Program is the assembled word sequence, in program order. It is the only
// artifact an assembly run leaves behind; the symbol table and patch list
// are discarded once backfilling completes.
type Program struct {
	Words []Word
}

// Codes iterates the program words with their word offsets.
func (prog *Program) Codes() iter.Seq2[uint32, Word] {
	return func(yield func(offset uint32, code Word) bool) {
		for n, code := range prog.Words {
			if !yield(uint32(n), code) {
				return
			}
		}
	}
}

// Listing iterates the disassembly lines of the program.
func (prog *Program) Listing() iter.Seq[string] {
	return func(yield func(line string) bool) {
		for _, code := range prog.Words {
			if !yield(code.Listing()) {
				return
			}
		}
	}
}

// WriteTo serializes the program as flat big-endian 32-bit words, with no
// header or padding.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	var buf [4]byte
	for _, code := range prog.Words {
		binary.BigEndian.PutUint32(buf[:], uint32(code))
		wrote, err := w.Write(buf[:])
		n += int64(wrote)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadProgram deserializes a flat big-endian word stream. A trailing
// partial word is an ErrTruncatedWord.
func ReadProgram(r io.Reader) (prog *Program, err error) {
	prog = &Program{}
	var buf [4]byte
	for {
		n, err := io.ReadFull(r, buf[:])
		switch {
		case errors.Is(err, io.EOF):
			return prog, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, ErrTruncatedWord(n)
		case err != nil:
			return nil, err
		}
		prog.Words = append(prog.Words, Word(binary.BigEndian.Uint32(buf[:])))
	}
}
