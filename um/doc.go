// Package um implements the assembler and disassembler for the Universal
// Machine instruction set.
//
// Instructions are single 32-bit words. The top four bits select one of 14
// operations and the low bits pack 3-bit register fields, except for
// loadimm, which carries a register index and a 25-bit unsigned immediate.
// Each mnemonic has a canonical long spelling and a short legacy spelling;
// both encode to the same opcode.
//
// The assembler is two-pass: labels declared after their first use are
// recorded as patch sites and backfilled once the full program length is
// known. The disassembler is the exact inverse of the encoder and flags
// words the encoder could not have produced.
package um
