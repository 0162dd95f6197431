// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ezrec/umasm/um"
)

// Exit codes: usage and file-open problems are distinct from assembly and
// disassembly failures.
const (
	exitOK    = 0
	exitUsage = 1
	exitError = 2
)

var verbose bool

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %v [-v] <command> ...\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  asm <in> <out>   Assemble code")
	fmt.Fprintln(out, "  dis <in>         Disassemble binary")
	flag.PrintDefaults()
}

func mainAsm(input, output string) int {
	inf, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", input, err)
		return exitUsage
	}
	defer inf.Close()

	asm := &um.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", input, err)
		return exitError
	}

	// The output file only appears once assembly has fully succeeded.
	ouf, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", output, err)
		return exitUsage
	}
	defer ouf.Close()

	if _, err = prog.WriteTo(ouf); err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", output, err)
		return exitUsage
	}

	return exitOK
}

func mainDis(input string) int {
	inf, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", input, err)
		return exitUsage
	}
	defer inf.Close()

	prog, err := um.ReadProgram(inf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", input, err)
		return exitError
	}

	for line := range prog.Listing() {
		fmt.Println(line)
	}

	return exitOK
}

func main() {
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	switch {
	case len(args) == 3 && args[0] == "asm":
		os.Exit(mainAsm(args[1], args[2]))
	case len(args) == 2 && args[0] == "dis":
		os.Exit(mainDis(args[1]))
	default:
		usage()
		os.Exit(exitUsage)
	}
}
