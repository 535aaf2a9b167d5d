package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/hv1/internal"
)

// TokenKind is the type of a lexed token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_NUMBER = TokenKind(0) // number
	TOKEN_MEM    = TokenKind(1) // mem
	TOKEN_AC     = TokenKind(2) // ac
	TOKEN_OP     = TokenKind(3) // op
	TOKEN_LABEL  = TokenKind(4) // label
	TOKEN_EOP    = TokenKind(5) // eop
)

// Token is a single lexical element of the assembler source.
type Token struct {
	Kind   TokenKind
	Text   string // Source text, or label name for TOKEN_LABEL.
	Value  uint16 // Number, address, or opcode.
	Index  uint16 // Instruction index the token belongs to.
	LineNo int    // Source line, from 1.
}

func (tok Token) String() string {
	return fmt.Sprintf("%v:%v(%v)", tok.LineNo, tok.Kind, tok.Text)
}

var _cpu_defines = map[string]int{
	"MEMORY_SIZE":  MEMORY_SIZE,
	"PROGRAM_SIZE": PROGRAM_SIZE,
	"STACK_LIMIT":  STACK_LIMIT,
}

// Defines returns the names predeclared in constant expressions.
func Defines() iter.Seq2[string, int] {
	return maps.All(_cpu_defines)
}

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, len(instructionTable))
	for op, inst := range instructionTable {
		ops[inst.Name] = Op(op)
	}
	return ops
}()

// LookupOp returns the opcode for a mnemonic.
func LookupOp(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}

// Lexer converts assembler source text into a token sequence, filling in the
// label table as label definitions are seen.
type Lexer struct {
	Verbose bool              // If set, logs every token.
	Label   map[string]uint16 // Map of labels to instruction indexes.

	stream *internal.Stream[rune]
	tokens []Token
	index  uint16 // Index of the next instruction.
	lineno int
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
}

func isIdent(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == ':'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumber(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// Lex tokenizes source. The returned sequence always ends with TOKEN_EOP.
func (lex *Lexer) Lex(source string) (tokens []Token, err error) {
	lex.stream = internal.NewStream([]rune(source))
	lex.tokens = nil
	lex.index = 0
	lex.lineno = 1
	lex.Label = make(map[string]uint16, 16)

	defer func() {
		if err != nil {
			lines := strings.Split(source, "\n")
			line := ""
			if lex.lineno <= len(lines) {
				line = strings.TrimSpace(lines[lex.lineno-1])
			}
			err = &ErrSyntax{LineNo: lex.lineno, Line: line, Err: err}
		}
	}()

	for lex.stream.HasNext() {
		r, _ := lex.stream.Peek()
		switch {
		case isIdentStart(r):
			err = lex.lexWord(string(lex.stream.ConsumeWhile(isIdent)))
		case isDigit(r):
			text := string(lex.stream.ConsumeWhile(isNumber))
			var value uint16
			value, err = parseNumber(text, 0)
			if err == nil {
				lex.emit(Token{Kind: TOKEN_NUMBER, Text: text, Value: value})
			}
		case r == '"':
			err = lex.lexString()
		case r == '(':
			err = lex.lexExpression()
		case r == ';' || r == '#':
			lex.stream.ConsumeWhile(func(r rune) bool { return r != '\n' })
		default:
			lex.stream.Consume()
			if r == '\n' {
				lex.lineno++
			}
		}
		if err != nil {
			return
		}
	}

	lex.emit(Token{Kind: TOKEN_EOP})

	tokens = lex.tokens
	return
}

// emit appends a token, stamping its location.
func (lex *Lexer) emit(tok Token) {
	tok.Index = lex.index
	tok.LineNo = lex.lineno
	if lex.Verbose {
		log.Printf("lex: %v", tok)
	}
	lex.tokens = append(lex.tokens, tok)
}

// emitOp appends an instruction token, and advances the instruction counter.
func (lex *Lexer) emitOp(text string, op Op) (err error) {
	if int(lex.index) >= PROGRAM_SIZE {
		err = ErrProgramFull
		return
	}

	lex.emit(Token{Kind: TOKEN_OP, Text: text, Value: uint16(op)})
	lex.index++
	return
}

// lexWord classifies an identifier run.
func (lex *Lexer) lexWord(word string) (err error) {
	if word == "AC" {
		lex.emit(Token{Kind: TOKEN_AC, Text: word})
		return
	}

	op, ok := LookupOp(word)
	if ok {
		return lex.emitOp(word, op)
	}

	if word[0] == '$' {
		var addr uint16
		addr, err = parseNumber(word[1:], 10)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		lex.emit(Token{Kind: TOKEN_MEM, Text: word, Value: addr})
		return
	}

	if strings.HasSuffix(word, ":") {
		label := word[:len(word)-1]
		_, ok := lex.Label[label]
		if ok {
			err = ErrLabelDuplicate(label)
			return
		}
		lex.Label[label] = lex.index
		if lex.Verbose {
			log.Printf("lex: %v: label %v = %d", lex.lineno, label, lex.index)
		}
		return
	}

	lex.emit(Token{Kind: TOKEN_LABEL, Text: word})
	return
}

// parseNumber parses a 16-bit unsigned literal. A base of 0 selects
// hexadecimal for a 0x prefix, octal for 0o, binary for 0b, and decimal
// otherwise; a leading zero alone is still decimal.
func parseNumber(text string, base int) (value uint16, err error) {
	digits := text
	if base == 0 {
		base = 10
		if len(digits) > 2 && digits[0] == '0' {
			switch digits[1] {
			case 'x', 'X':
				base = 16
			case 'o', 'O':
				base = 8
			case 'b', 'B':
				base = 2
			}
			if base != 10 {
				digits = digits[2:]
			}
		}
	}

	v64, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = uint16(v64)
	return
}

// lexString expands a quoted string into character constants, with an
// output-char instruction between each pair of characters.
func (lex *Lexer) lexString() (err error) {
	lex.stream.Consume()

	// Every token of the string is stamped with the line it starts on.
	lines := 0
	defer func() {
		if err == nil {
			lex.lineno += lines
		}
	}()

	var chars []rune
	closed := false
	for lex.stream.HasNext() && !closed {
		r, _ := lex.stream.Consume()
		switch r {
		case '"':
			closed = true
		case '\\':
			esc, ok := lex.stream.Consume()
			if !ok {
				break
			}
			switch esc {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'e':
				r = '\033'
			case '\n':
				lines++
				r = esc
			default:
				r = esc
			}
			chars = append(chars, r)
		case '\n':
			lines++
			chars = append(chars, r)
		default:
			chars = append(chars, r)
		}
	}

	if !closed {
		err = ErrStringUnterminated
		return
	}

	for n, r := range chars {
		if r > 0xffff {
			err = ErrParseNumber(string(r))
			return
		}
		if n > 0 {
			err = lex.emitOp("ouc", OP_OUC)
			if err != nil {
				return
			}
		}
		lex.emit(Token{Kind: TOKEN_NUMBER, Text: string(r), Value: uint16(r)})
	}

	return
}

// lexExpression evaluates a parenthesised constant expression.
func (lex *Lexer) lexExpression() (err error) {
	lex.stream.Consume()

	depth := 1
	expr := lex.stream.ConsumeWhile(func(r rune) bool {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		return depth > 0
	})
	_, ok := lex.stream.Consume()
	if !ok {
		err = ErrParseExpression(string(expr))
		return
	}

	name := strings.TrimSpace(string(expr))
	if isName(name) && !lex.defined(name) {
		// Not yet defined, so resolved as a label reference.
		lex.emit(Token{Kind: TOKEN_LABEL, Text: name})
		lex.lineno += strings.Count(string(expr), "\n")
		return
	}

	value, err := lex.evaluate(string(expr))
	if err != nil {
		return
	}

	lex.emit(Token{Kind: TOKEN_NUMBER, Text: "(" + string(expr) + ")", Value: value})
	lex.lineno += strings.Count(string(expr), "\n")
	return
}

// isName returns true for a plain identifier.
func isName(text string) bool {
	if text == "" || isDigit(rune(text[0])) {
		return false
	}
	for _, r := range text {
		if !isDigit(r) && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && r != '_' {
			return false
		}
	}
	return true
}

// defined returns true if name is predeclared, or a label defined so far.
func (lex *Lexer) defined(name string) bool {
	if _, ok := _cpu_defines[name]; ok {
		return true
	}
	_, ok := lex.Label[name]
	return ok
}

// evaluate does compile-time (...) evaluations, with the labels defined so far.
func (lex *Lexer) evaluate(expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range Defines() {
		pred[key] = starlark.MakeInt(val)
	}
	for key, val := range lex.Label {
		pred[key] = starlark.MakeInt(int(val))
	}

	prog := "rc=(" + expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}

	value = uint16(st_int64)
	return
}
