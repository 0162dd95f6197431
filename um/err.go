package um

import (
	"errors"

	"github.com/ezrec/umasm/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrProgramTooLarge = errors.New(f("program exceeds 25-bit address space"))
)

// ErrInvalidLine is a line that matches no rule of the source grammar.
type ErrInvalidLine string

func (err ErrInvalidLine) Error() string {
	return f("invalid assembly line '%v'", string(err))
}

// ErrMalformedLiteral is a token that is neither a number nor a quoted
// character.
type ErrMalformedLiteral string

func (err ErrMalformedLiteral) Error() string {
	return f("'%v' is not a number or character", string(err))
}

// ErrUnknownInstruction is a mnemonic with no opcode.
type ErrUnknownInstruction string

func (err ErrUnknownInstruction) Error() string {
	return f("unknown instruction '%v'", string(err))
}

// ErrArityMismatch is an operation given the wrong number of arguments.
type ErrArityMismatch struct {
	Op   string
	Want int
	Got  int
}

func (err ErrArityMismatch) Error() string {
	return f("invalid number of arguments for %v: %v (%v expected)", err.Op, err.Got, err.Want)
}

// ErrInvalidLabel is a label declaration without the '@' prefix.
type ErrInvalidLabel string

func (err ErrInvalidLabel) Error() string {
	return f("invalid label '%v'", string(err))
}

// ErrDuplicateLabel is a label declared twice.
type ErrDuplicateLabel string

func (err ErrDuplicateLabel) Error() string {
	return f("duplicate label '@%v'", string(err))
}

// ErrUndefinedLabel is a referenced label that was never declared.
type ErrUndefinedLabel string

func (err ErrUndefinedLabel) Error() string {
	return f("undefined label '@%v'", string(err))
}

// ErrParseExpression is a $() span that did not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrTruncatedWord is a binary stream whose final word is incomplete; the
// value is the number of trailing bytes.
type ErrTruncatedWord int

func (err ErrTruncatedWord) Error() string {
	return f("truncated final word (%v bytes)", int(err))
}

// ErrSyntax wraps any per-line failure with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
