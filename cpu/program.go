package cpu

import (
	"fmt"
	"io"
	"iter"
)

// Opcode is one assembled instruction, and where it came from.
type Opcode struct {
	LineNo int    // Source line, or 0 if unknown.
	Pc     uint16 // Program counter value the instruction occupies.
	Code   Code
}

// Program is an assembled program; the index of an opcode is its program counter.
type Program struct {
	Opcodes []Opcode
	Label   map[string]uint16 // Labels, if assembled from source.
}

type Debug struct {
	*Opcode
}

// NewProgram creates a program from instruction words, with no source information.
func NewProgram(words []Word) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, len(words)),
	}
	for n, word := range words {
		prog.Opcodes[n] = Opcode{Pc: uint16(n), Code: word.Decode()}
	}

	return
}

// Debug locates the opcode at a program counter value. The Opcode is nil
// if the program counter is outside of the program.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	if int(pc) < len(prog.Opcodes) {
		dbg.Opcode = &prog.Opcodes[pc]
	}

	return
}

// Binary returns the encoded instruction words.
func (prog *Program) Binary() (words []Word) {
	for _, code := range prog.Codes() {
		words = append(words, Encode(code))
	}

	return
}

// Codes iterates over the instructions, by program counter.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(pc uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Pc, op.Code) {
				return
			}
		}
	}
}

// Listing writes a disassembly listing, one instruction per line.
func (prog *Program) Listing(w io.Writer) (err error) {
	labels := make(map[uint16][]string, len(prog.Label))
	for label, pc := range prog.Label {
		labels[pc] = append(labels[pc], label)
	}

	for pc, code := range prog.Codes() {
		for _, label := range labels[pc] {
			_, err = fmt.Fprintf(w, "%v:\n", label)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "\t%-12v ; %04x: %08x\n", code, pc, uint32(Encode(code)))
		if err != nil {
			return
		}
	}

	return
}
