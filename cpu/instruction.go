package cpu

import (
	"errors"
	"iter"
)

// Effect performs an instruction's side effect on the machine.
// A returned error is fatal to the run.
type Effect func(m *Machine, code Code) error

// Instruction describes the behaviour of one opcode.
type Instruction struct {
	Name   string // Mnemonic.
	Cycles int    // Relative latency, a scheduling hint only.
	Effect Effect
}

// instructionTable is indexed by opcode, and never modified.
var instructionTable = [...]Instruction{
	OP_HLT: {"hlt", 0, (*Machine).doHalt},
	OP_RDI: {"rdi", 2, (*Machine).doReadInput},
	OP_RDK: {"rdk", 2, (*Machine).doReadKey},
	OP_LDA: {"lda", 1, (*Machine).doLoad},
	OP_STA: {"sta", 2, (*Machine).doStore},
	OP_ADD: {"add", 1, (*Machine).doAdd},
	OP_SUB: {"sub", 1, (*Machine).doSub},
	OP_MOD: {"mod", 1, (*Machine).doMod},
	OP_JNZ: {"jnz", 1, (*Machine).doJumpNonZero},
	OP_JEZ: {"jez", 1, (*Machine).doJumpZero},
	OP_CAL: {"cal", 3, (*Machine).doCall},
	OP_RET: {"ret", 1, (*Machine).doReturn},
	OP_PSH: {"psh", 1, (*Machine).doPush},
	OP_POP: {"pop", 1, (*Machine).doPop},
	OP_OUT: {"out", 1, (*Machine).doOutNumber},
	OP_OUC: {"ouc", 1, (*Machine).doOutChar},
}

// Lookup returns the descriptor of an opcode.
func Lookup(op Op) (inst Instruction, ok bool) {
	if !op.Valid() {
		return
	}

	return instructionTable[op], true
}

// Instructions iterates over the instruction table in opcode order.
func Instructions() iter.Seq2[Op, Instruction] {
	return func(yield func(op Op, inst Instruction) bool) {
		for op, inst := range instructionTable {
			if !yield(Op(op), inst) {
				return
			}
		}
	}
}

func (m *Machine) doHalt(code Code) (err error) {
	m.Running = false
	return
}

func (m *Machine) doReadInput(code Code) (err error) {
	if !m.destination(code) {
		return
	}
	if m.Input == nil {
		return ErrInput
	}

	value, err := m.Input.ReadNumber()
	if err != nil {
		return errors.Join(ErrInput, err)
	}

	return m.WriteMem(code.Data, value)
}

func (m *Machine) doReadKey(code Code) (err error) {
	if !m.destination(code) {
		return
	}
	if m.Input == nil {
		return ErrInput
	}

	key, err := m.Input.ReadKey()
	if err != nil {
		return errors.Join(ErrInput, err)
	}

	return m.WriteMem(code.Data, uint16(key))
}

func (m *Machine) doLoad(code Code) (err error) {
	if code.Mode == MODE_AC {
		m.warn(code, f("load from accumulator has no effect"))
		return
	}

	value, ok, err := m.Operand(code)
	if ok {
		m.Ac = value
	}
	return
}

func (m *Machine) doStore(code Code) (err error) {
	if !m.destination(code) {
		return
	}

	return m.WriteMem(code.Data, m.Ac)
}

func (m *Machine) doAdd(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if ok {
		m.Ac += value
	}
	return
}

func (m *Machine) doSub(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if ok {
		m.Ac -= value
	}
	return
}

func (m *Machine) doMod(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if !ok {
		return
	}
	if value == 0 {
		return ErrDivideByZero
	}

	m.Ac %= value
	return
}

func (m *Machine) doJumpNonZero(code Code) (err error) {
	target, ok, err := m.Operand(code)
	if ok && m.Ac != 0 {
		m.Pc = target
	}
	return
}

func (m *Machine) doJumpZero(code Code) (err error) {
	target, ok, err := m.Operand(code)
	if ok && m.Ac == 0 {
		m.Pc = target
	}
	return
}

func (m *Machine) doCall(code Code) (err error) {
	target, ok, err := m.Operand(code)
	if !ok {
		return
	}
	if m.CallStack.Full() {
		return ErrStackFull
	}

	m.CallStack.Push(m.Pc)
	m.Pc = target
	return
}

func (m *Machine) doReturn(code Code) (err error) {
	pc, ok := m.CallStack.Pop()
	if !ok {
		m.report(code, ErrStackEmpty)
		return
	}

	m.Pc = pc
	return
}

func (m *Machine) doPush(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if !ok {
		return
	}
	if m.Stack.Full() {
		return ErrStackFull
	}

	m.Stack.Push(value)
	return
}

func (m *Machine) doPop(code Code) (err error) {
	if !m.destination(code) {
		return
	}

	value, ok := m.Stack.Peek()
	if !ok {
		m.report(code, ErrStackEmpty)
		return
	}

	err = m.WriteMem(code.Data, value)
	if err != nil {
		return
	}

	m.Stack.Pop()
	return
}

func (m *Machine) doOutNumber(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if !ok {
		return
	}
	if m.Output == nil {
		return ErrOutput
	}

	err = m.Output.WriteNumber(value)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}
	return
}

func (m *Machine) doOutChar(code Code) (err error) {
	value, ok, err := m.Operand(code)
	if !ok {
		return
	}
	if m.Output == nil {
		return ErrOutput
	}

	err = m.Output.WriteChar(value)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}
	return
}
