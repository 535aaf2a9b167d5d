package cpu

import (
	"errors"

	"github.com/ezrec/hv1/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrMachineState  = errors.New(f("machine not ready"))
	ErrProgramSize   = errors.New(f("program too large"))
	ErrPcRange       = errors.New(f("pc out of range"))
	ErrAddressRange  = errors.New(f("address out of range"))
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))
	ErrStackEmpty    = errors.New(f("stack empty"))
	ErrStackFull     = errors.New(f("stack full"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrInput         = errors.New(f("input"))
	ErrOutput        = errors.New(f("output"))

	// Assembler errors
	ErrOpcodeMissing      = errors.New(f("operand without opcode"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrProgramFull        = errors.New(f("program full"))
	ErrStringUnterminated = errors.New(f("unterminated string"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("(%v) is not a valid expression", string(err))
}

// ErrAddress is a data memory access outside of MEMORY_SIZE.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address $%d out of range", uint16(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressRange
}

// ErrOpcode is an instruction word that decodes to no known opcode.
type ErrOpcode Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x", uint32(eo))
}

func (eo ErrOpcode) Is(err error) bool {
	return err == ErrOpcodeUnknown
}

// ErrSyntax is an assembly time error, located in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrFault is a fatal execution time error, located at the faulting instruction.
type ErrFault struct {
	Pc   uint16
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc %04x '%v' %v", err.Pc, err.Code, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
