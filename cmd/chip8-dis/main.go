package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/machine"
)

func main() {
	config := parseArgs()

	program, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	if err := disassemble(w, program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes a listing of program to w, assuming it is loaded
// at machine.ProgramAddress. Every 2-byte word gets one line, data
// included. A trailing odd byte is listed as DB.
func disassemble(w io.Writer, program []byte) error {
	if len(program) > machine.ProgramCapacity {
		return errors.Wrapf(machine.ErrProgramTooLarge, "%d bytes exceeds capacity of %d", len(program), machine.ProgramCapacity)
	}

	bw := bufio.NewWriter(w)
	addr := uint16(machine.ProgramAddress)

	for len(program) >= arch.InstructionSize {
		word := uint16(program[0])<<8 | uint16(program[1])
		instr, _ := arch.Decode(addr, word)
		fmt.Fprintf(bw, "%03x  %04x  %s\n", addr, word, instr)

		program = program[arch.InstructionSize:]
		addr += arch.InstructionSize
	}

	if len(program) > 0 {
		fmt.Fprintf(bw, "%03x  %02x    DB 0x%02x\n", addr, program[0], program[0])
	}

	return errors.Wrapf(bw.Flush(), "failed to write listing")
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		err := os.MkdirAll(dir, 0744)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
