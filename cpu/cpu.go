package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/hv1/io"
)

const (
	MEMORY_SIZE  = 0x100 // Data memory cells.
	PROGRAM_SIZE = 8192  // Program store words.
	CYCLE_SPIN   = 0     // Default busy-loop iterations per declared cycle.
)

// Input is the machine's source of numbers and keypresses.
type Input io.Input

// Output is the machine's sink of numbers and characters.
type Output io.Output

// State is the lifecycle state of a machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY   = State(0) // ready
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
	STATE_FAULTED = State(3) // faulted
)

// Machine is the simulation context of a single program run.
// There is no reset; a new run requires a new Machine.
type Machine struct {
	Verbose bool        // Set to enable verbose logging.
	Logger  *log.Logger // Destination of non-fatal reports; log.Default() if nil.

	Input  Input  // Source of rdi and rdk.
	Output Output // Sink of out and ouc.

	CycleSpin int              // Busy-loop iterations per declared cycle.
	Delay     func(cycles int) // If set, replaces the busy-loop.

	Ac        uint16              // Accumulator.
	Pc        uint16              // Program counter.
	Memory    [MEMORY_SIZE]uint16 // Data memory.
	CallStack Stack               // Return addresses.
	Stack     Stack               // Operand stack.
	Running   bool                // Cleared by hlt.

	Ticks  int // Instructions executed.
	Cycles int // Declared cycles consumed.

	state   State
	ip      uint16 // Address of the executing instruction.
	length  int
	program [PROGRAM_SIZE]Word
}

// NewMachine creates a machine with the program loaded at address 0.
func NewMachine(program []Word) (m *Machine, err error) {
	if len(program) > PROGRAM_SIZE {
		err = ErrProgramSize
		return
	}

	m = &Machine{
		CycleSpin: CYCLE_SPIN,
		length:    len(program),
	}
	copy(m.program[:], program)

	return
}

// State returns the lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// Program returns a copy of the loaded program.
func (m *Machine) Program() []Word {
	return append([]Word(nil), m.program[:m.length]...)
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	var lines []string
	lines = append(lines, fmt.Sprintf("state: %v", m.state))
	lines = append(lines, fmt.Sprintf("   pc: %04X", m.Pc))
	lines = append(lines, fmt.Sprintf("   ac: %04X", m.Ac))
	for _, stack := range []struct {
		name  string
		stack *Stack
	}{{"calls", &m.CallStack}, {"stack", &m.Stack}} {
		value, ok := stack.stack.Peek()
		if ok {
			lines = append(lines, fmt.Sprintf("%5s: %04X (%d)", stack.name, value, stack.stack.Len()))
		} else {
			lines = append(lines, fmt.Sprintf("%5s: ----", stack.name))
		}
	}

	text = strings.Join(lines, "\n") + "\n"
	return
}

func (m *Machine) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.Default()
}

// warn reports an instruction that was skipped.
func (m *Machine) warn(code Code, msg string) {
	m.logger().Printf("cpu: %04x: %v: %v", m.ip, code, msg)
}

// report reports a recovered error.
func (m *Machine) report(code Code, err error) {
	m.logger().Printf("cpu: %04x: %v: %v", m.ip, code, err)
}

// ReadMem reads a data memory cell.
func (m *Machine) ReadMem(addr uint16) (value uint16, err error) {
	if int(addr) >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	value = m.Memory[addr]
	return
}

// WriteMem writes a data memory cell.
func (m *Machine) WriteMem(addr uint16, value uint16) (err error) {
	if int(addr) >= MEMORY_SIZE {
		err = ErrAddress(addr)
		return
	}

	m.Memory[addr] = value
	return
}

// Operand resolves the operand of an instruction by its addressing mode.
// If ok is false there is no operand, and the instruction has no effect.
func (m *Machine) Operand(code Code) (value uint16, ok bool, err error) {
	switch code.Mode {
	case MODE_MEM:
		value, err = m.ReadMem(code.Data)
		ok = err == nil
	case MODE_CONST:
		value = code.Data
		ok = true
	case MODE_AC:
		value = m.Ac
		ok = true
	default:
		m.warn(code, f("no operand"))
	}

	return
}

// destination returns true if the instruction names a memory destination.
func (m *Machine) destination(code Code) bool {
	if code.Mode != MODE_MEM {
		m.warn(code, f("destination must be a memory address"))
		return false
	}

	return true
}

// Fetch fetches the instruction at the program counter, and advances it.
func (m *Machine) Fetch() (code Code, err error) {
	if int(m.Pc) >= PROGRAM_SIZE {
		err = ErrPcRange
		return
	}

	word := m.program[m.Pc]
	m.ip = m.Pc
	m.Pc++

	code = word.Decode()
	if !code.Op.Valid() {
		err = ErrOpcode(word)
	}

	return
}

// spin consumes the declared cycle cost of an instruction. It never touches
// architectural state.
func (m *Machine) spin(cycles int) {
	m.Cycles += cycles

	if m.Delay != nil {
		m.Delay(cycles)
		return
	}

	var count int
	for range cycles * m.CycleSpin {
		count++
	}
	_ = count
}

// Execute executes a single decoded instruction.
func (m *Machine) Execute(code Code) (err error) {
	inst, ok := Lookup(code.Op)
	if !ok {
		err = ErrOpcode(Encode(code))
		return
	}

	if m.Verbose {
		m.logger().Printf("%04x: %v", m.ip, code)
	}

	m.spin(inst.Cycles)

	err = inst.Effect(m, code)
	if err != nil {
		return
	}

	m.Ticks++
	return
}

// Tick executes a single instruction cycle: fetch, decode, dispatch.
// A fatal error faults the machine, and is returned as an *ErrFault.
func (m *Machine) Tick() (err error) {
	switch m.state {
	case STATE_READY:
		m.state = STATE_RUNNING
		m.Running = true
	case STATE_RUNNING:
		// pass
	default:
		err = ErrMachineState
		return
	}

	pc := m.Pc
	var code Code
	defer func() {
		if err != nil {
			m.state = STATE_FAULTED
			m.Running = false
			err = &ErrFault{Pc: pc, Code: code, Err: err}
		}
	}()

	code, err = m.Fetch()
	if err != nil {
		return
	}

	err = m.Execute(code)
	if err != nil {
		return
	}

	if !m.Running {
		m.state = STATE_HALTED
		if m.Verbose {
			m.logger().Printf("cpu: halted after %d ticks, %d cycles", m.Ticks, m.Cycles)
		}
	}

	return
}

// Run executes the program until it halts, or faults.
func (m *Machine) Run() (err error) {
	if m.state != STATE_READY {
		err = ErrMachineState
		return
	}

	for {
		err = m.Tick()
		if err != nil || !m.Running {
			return
		}
	}
}
