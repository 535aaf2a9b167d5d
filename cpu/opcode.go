package cpu

import (
	"fmt"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_HLT = Op(0)  // hlt
	OP_RDI = Op(1)  // rdi
	OP_RDK = Op(2)  // rdk
	OP_LDA = Op(3)  // lda
	OP_STA = Op(4)  // sta
	OP_ADD = Op(5)  // add
	OP_SUB = Op(6)  // sub
	OP_MOD = Op(7)  // mod
	OP_JNZ = Op(8)  // jnz
	OP_JEZ = Op(9)  // jez
	OP_CAL = Op(10) // cal
	OP_RET = Op(11) // ret
	OP_PSH = Op(12) // psh
	OP_POP = Op(13) // pop
	OP_OUT = Op(14) // out
	OP_OUC = Op(15) // ouc
)

// opPending marks an instruction under construction that has no opcode yet.
const opPending = 0x3f

// Valid returns true if the opcode has an entry in the instruction table.
func (op Op) Valid() bool {
	return op >= OP_HLT && op <= OP_OUC
}

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_NONE  = Mode(0) // none
	MODE_MEM   = Mode(1) // mem
	MODE_CONST = Mode(2) // const
	MODE_AC    = Mode(3) // ac
)

// Word is a single encoded instruction, the unit of program storage.
//
//	bits  0..5   opcode
//	bits  6..7   addressing mode
//	bits  8..15  reserved
//	bits 16..31  data
type Word uint32

// Code is a decoded instruction.
type Code struct {
	Op   Op     // Opcode.
	Mode Mode   // Addressing mode of Data.
	Data uint16 // Address or constant, depending on Mode.
}

// Encode packs a Code into an instruction word.
func Encode(code Code) Word {
	word := uint32(code.Op) & 0x3f
	word |= (uint32(code.Mode) & 0x3) << 6
	word |= uint32(code.Data) << 16
	return Word(word)
}

// Decode unpacks an instruction word. Reserved bits are ignored.
func Decode(word Word) (code Code) {
	code.Op = Op(word & 0x3f)
	code.Mode = Mode((word >> 6) & 0x3)
	code.Data = uint16(word >> 16)
	return
}

// Decode unpacks the instruction word.
func (word Word) Decode() Code {
	return Decode(word)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if !code.Op.Valid() {
		out = fmt.Sprintf(".word %#08x", uint32(Encode(code)))
		return
	}

	switch code.Mode {
	case MODE_MEM:
		out = fmt.Sprintf("%v $%d", code.Op, code.Data)
	case MODE_CONST:
		out = fmt.Sprintf("%v %d", code.Op, code.Data)
	case MODE_AC:
		out = fmt.Sprintf("%v AC", code.Op)
	default:
		out = code.Op.String()
	}

	return
}
