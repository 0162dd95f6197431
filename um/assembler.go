// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package um

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":  "0",
	"MAX_IMM": fmt.Sprintf("%#v", MAX_IMM),
}

// patch is one deferred forward reference: the word offset whose field
// awaits a label address, plus the position and mask of that field.
type patch struct {
	offset uint32
	shift  uint
	mask   uint32
}

// Assembler is the two-pass symbolic assembler for the UM instruction set.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Label   map[string]uint32 // Map of labels to word offsets.
	Equate  map[string]string // Map of equates.

	predefine map[string]string  // Predefines
	patches   map[string][]patch // Map of undeclared labels to patch sites.
	words     []Word             // Program under construction.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parseValue parses a numeric or quoted-character literal. A single
// character in apostrophes yields its code point; anything else parses
// with the standard radix prefixes (0x, 0o, 0b, leading-zero octal).
func parseValue(token string) (value uint32, err error) {
	if len(token) >= 3 && token[0] == '\'' && token[len(token)-1] == '\'' {
		char := []rune(token[1 : len(token)-1])
		if len(char) != 1 {
			return 0, ErrMalformedLiteral(token)
		}
		return uint32(char[0]), nil
	}
	v64, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		return 0, ErrMalformedLiteral(token)
	}
	return uint32(v64), nil
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, valueErr := parseValue(str)
		if valueErr != nil {
			// Ignore non-numeric equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// expandParens rewrites $(...) spans with their evaluated values.
func (asm *Assembler) expandParens(line string) (out string, err error) {
	out = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	return
}

// wordLike reports whether the token could be a mnemonic.
func wordLike(token string) bool {
	for _, char := range token {
		switch {
		case char >= 'a' && char <= 'z':
		case char >= 'A' && char <= 'Z':
		case char >= '0' && char <= '9':
		case char == '_':
		default:
			return false
		}
	}
	return len(token) > 0
}

// parseLine assembles one source line, appending any words it produces.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// String literals keep their comment delimiter and '$' intact.
	if strings.HasPrefix(line, "\"") {
		return asm.parseString(line)
	}

	line, _, _ = strings.Cut(line, ";")
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line, err = asm.expandParens(line)
	if err != nil {
		return
	}

	fields := strings.Fields(line)

	// .equ CONST VALUE
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			return ErrEquateSyntax
		}
		if _, ok := asm.Equate[fields[1]]; ok {
			return ErrEquateDuplicate
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	// Equate substitution
	for n, field := range fields {
		if value, ok := asm.Equate[field]; ok {
			fields[n] = value
		}
	}

	// Raw word override: a bare hex literal stands for itself.
	if strings.HasPrefix(fields[0], "0x") || strings.HasPrefix(fields[0], "0X") {
		if len(fields) != 1 {
			return ErrInvalidLine(line)
		}
		value, parseErr := strconv.ParseUint(fields[0][2:], 16, 32)
		if parseErr != nil {
			return ErrMalformedLiteral(fields[0])
		}
		asm.words = append(asm.words, Word(value))
		return
	}

	if !wordLike(fields[0]) {
		return ErrInvalidLine(line)
	}

	op := strings.ToLower(fields[0])
	args := fields[1:]

	switch op {
	case "label":
		return asm.declareLabel(args)
	case "ldi", "loadimm":
		return asm.encodeImm(op, args)
	}
	return asm.encodeReg(op, args)
}

// declareLabel records the current word offset; a label emits no words.
func (asm *Assembler) declareLabel(args []string) (err error) {
	if len(args) != 1 {
		return ErrArityMismatch{Op: "label", Want: 1, Got: len(args)}
	}
	name, ok := strings.CutPrefix(args[0], "@")
	if !ok || len(name) == 0 {
		return ErrInvalidLabel(args[0])
	}
	if _, ok := asm.Label[name]; ok {
		return ErrDuplicateLabel(name)
	}
	asm.Label[name] = uint32(len(asm.words))
	return
}

// resolve evaluates an operand token that may be a label reference. A
// reference to a not-yet-declared label registers a patch site against the
// word about to be appended and yields a zero placeholder; the resolved
// address is later masked to the field width and OR-ed into position.
func (asm *Assembler) resolve(arg string, shift uint, mask uint32) (value uint32, err error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return parseValue(arg)
	}
	if addr, ok := asm.Label[name]; ok {
		return addr, nil
	}
	asm.patches[name] = append(asm.patches[name], patch{
		offset: uint32(len(asm.words)),
		shift:  shift,
		mask:   mask,
	})
	return 0, nil
}

// encodeImm packs a loadimm word: a register and a 25-bit immediate, which
// may be a label reference.
func (asm *Assembler) encodeImm(op string, args []string) (err error) {
	if len(args) != 2 {
		return ErrArityMismatch{Op: op, Want: 2, Got: len(args)}
	}
	reg, err := parseValue(args[0])
	if err != nil {
		return
	}
	imm, err := asm.resolve(args[1], 0, MAX_IMM)
	if err != nil {
		return
	}
	asm.words = append(asm.words, MakeCodeImm(reg, imm))
	return
}

// encodeReg packs a register-operand word. Label references are allowed in
// register fields and mask to 3 bits like any other operand value.
func (asm *Assembler) encodeReg(op string, args []string) (err error) {
	code, ok := OpcodeByName(op)
	if !ok {
		return ErrUnknownInstruction(op)
	}
	if len(args) != code.Arity() {
		return ErrArityMismatch{Op: op, Want: code.Arity(), Got: len(args)}
	}
	w := Word(code) << 28
	for i, arg := range args {
		value, argErr := asm.resolve(arg, regShift(len(args), i), 7)
		if argErr != nil {
			return argErr
		}
		w |= Word(value&7) << regShift(len(args), i)
	}
	asm.words = append(asm.words, w)
	return
}

// scanString splits `"body"rest` at the closing quote.
func scanString(line string) (body, rest string, ok bool) {
	for n := 1; n < len(line); n++ {
		if line[n] == '"' {
			return line[1:n], line[n+1:], true
		}
	}
	return
}

// decodeEscapes rewrites \xHH escapes into their byte values; any other
// character passes through literally.
func decodeEscapes(body string) (data []byte) {
	data = make([]byte, 0, len(body)+1)
	for n := 0; n < len(body); n++ {
		if strings.HasPrefix(body[n:], "\\x") && n+4 <= len(body) {
			if value, err := strconv.ParseUint(body[n+2:n+4], 16, 8); err == nil {
				data = append(data, byte(value))
				n += 3
				continue
			}
		}
		data = append(data, body[n])
	}
	return
}

// parseString packs a double-quoted literal into big-endian words: escapes
// decode to bytes, a NUL terminator is appended, and the result is
// NUL-padded to a whole number of words. Labels do not resolve here.
func (asm *Assembler) parseString(line string) (err error) {
	body, rest, ok := scanString(line)
	if !ok {
		return ErrInvalidLine(line)
	}
	rest = strings.TrimSpace(rest)
	if len(rest) != 0 && !strings.HasPrefix(rest, ";") {
		return ErrInvalidLine(line)
	}

	data := append(decodeEscapes(body), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	for n := 0; n < len(data); n += 4 {
		asm.words = append(asm.words, Word(binary.BigEndian.Uint32(data[n:n+4])))
	}
	return
}

// Parse assembles an input stream into a Program.
//
// Pass 1 scans the source top to bottom, encoding each line and deferring
// forward label references as patch sites. Pass 2 backfills every patch
// site from the completed symbol table. Any failure aborts the whole
// assembly; there is no partial output.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]uint32, 16)
	}
	clear(asm.Label)
	asm.patches = make(map[string][]patch)
	asm.words = asm.words[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(text)

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(asm.words) > MAX_WORDS {
			err = ErrProgramTooLarge
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Final backfill of forward references.
	for label, sites := range asm.patches {
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrUndefinedLabel(label)
			return
		}
		for _, site := range sites {
			asm.words[site.offset] |= Word(addr&site.mask) << site.shift
		}
	}

	prog = &Program{
		Words: slices.Clone(asm.words),
	}

	return
}
