// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/hv1/internal"
)

// Assembler is a two stage assembler for the HV1 machine: the lexer resolves
// every label, then a single forward pass generates the instruction words.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label map[string]uint16 // Map of jump labels to instruction indexes.
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.Assemble(string(source))
}

// Assemble assembles source text into a Program. On error, no program is returned.
func (asm *Assembler) Assemble(source string) (prog *Program, err error) {
	asm.Opcode = asm.Opcode[:0]

	lex := &Lexer{Verbose: asm.Verbose}
	tokens, err := lex.Lex(source)
	if err != nil {
		return
	}
	asm.Label = lex.Label

	err = asm.generate(tokens, strings.Split(source, "\n"))
	if err != nil {
		asm.Opcode = asm.Opcode[:0]
		return
	}

	prog = &Program{
		Opcodes: append([]Opcode(nil), asm.Opcode...),
		Label:   maps.Clone(asm.Label),
	}

	return
}

// generate walks the tokens, building one pending instruction at a time.
func (asm *Assembler) generate(tokens []Token, lines []string) (err error) {
	pending := Code{Op: opPending}
	operands := 0
	lineno := 0

	var tok Token
	defer func() {
		if err != nil {
			line := ""
			if tok.LineNo > 0 && tok.LineNo <= len(lines) {
				line = strings.TrimSpace(lines[tok.LineNo-1])
			}
			err = &ErrSyntax{LineNo: tok.LineNo, Line: line, Err: err}
		}
	}()

	ts := internal.NewStream(tokens)
	for ts.HasNext() {
		tok, _ = ts.Consume()

		if tok.Kind == TOKEN_OP || tok.Kind == TOKEN_EOP {
			if pending.Op != opPending {
				opcode := Opcode{LineNo: lineno, Pc: uint16(len(asm.Opcode)), Code: pending}
				if asm.Verbose {
					log.Printf("asm: %04x: %v", opcode.Pc, opcode.Code)
				}
				asm.Opcode = append(asm.Opcode, opcode)
			}
			pending = Code{Op: opPending}
			operands = 0
			if tok.Kind == TOKEN_OP {
				pending.Op = Op(tok.Value)
				lineno = tok.LineNo
			}
			continue
		}

		if pending.Op == opPending {
			err = ErrOpcodeMissing
			return
		}
		if operands > 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		operands++

		switch tok.Kind {
		case TOKEN_AC:
			pending.Mode = MODE_AC
		case TOKEN_MEM:
			pending.Mode = MODE_MEM
			pending.Data = tok.Value
		case TOKEN_NUMBER:
			pending.Mode = MODE_CONST
			pending.Data = tok.Value
		case TOKEN_LABEL:
			pc, ok := asm.Label[tok.Text]
			if !ok {
				err = ErrLabelMissing(tok.Text)
				return
			}
			pending.Mode = MODE_CONST
			pending.Data = pc
		}
	}

	return
}
