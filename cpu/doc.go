// Package cpu implements the HV1 accumulator machine and its assembler.
//
// The machine consists of a 16-bit accumulator (AC), a program counter (PC),
// a data memory of MEMORY_SIZE 16-bit cells, a write-once program store of
// PROGRAM_SIZE 32-bit instruction words, a call stack and an operand stack.
//
// Each instruction word carries a 6-bit opcode, a 2-bit addressing mode and a
// 16-bit data field. The addressing mode selects whether the data field is a
// memory address, a constant, or ignored in favour of the accumulator.
//
// The assembler lexes a line-oriented source text into tokens, resolving
// labels as it goes, and then generates one instruction word per mnemonic in a
// single forward pass.
package cpu
