package cpu

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	hvio "github.com/ezrec/hv1/io"
)

// doRun assembles and runs source to completion, with scripted input.
func doRun(t *testing.T, source string, script *hvio.Script) (m *Machine, logged *bytes.Buffer, err error) {
	asm := &Assembler{}
	prog, err := asm.Assemble(source)
	if err != nil {
		t.Fatal(err)
	}

	m, err = NewMachine(prog.Binary())
	if err != nil {
		t.Fatal(err)
	}

	if script == nil {
		script = &hvio.Script{}
	}

	logged = &bytes.Buffer{}
	m.Logger = log.New(logged, "", 0)
	m.Input = script
	m.Output = script

	err = m.Run()
	return
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(nil)
	assert.NoError(err)
	assert.Equal(STATE_READY, m.State())
	assert.False(m.Running)
	assert.Equal(uint16(0), m.Pc)
	assert.Empty(m.Program())
}

func TestMachineProgramSize(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMachine(make([]Word, PROGRAM_SIZE+1))
	assert.ErrorIs(err, ErrProgramSize)

	m, err := NewMachine(make([]Word, PROGRAM_SIZE))
	assert.NoError(err)
	assert.Equal(PROGRAM_SIZE, len(m.Program()))
}

func TestMachineArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		source string
		output string
	}{
		{"add", "lda 5\nadd 3\nout AC\nhlt", "8\n"},
		{"decimal", "lda 010\nadd 09\nout AC\nhlt", "19\n"},
		{"sub_wrap", "lda 2\nsub 3\nout AC\nhlt", "65535\n"},
		{"add_wrap", "lda 0xffff\nadd 2\nout AC\nhlt", "1\n"},
		{"mod", "lda 17\nmod 5\nout AC\nhlt", "2\n"},
		{"mem", "lda 6\nsta $9\nlda 4\nadd $9\nmod $9\nout AC\nhlt", "4\n"},
		{"ac", "lda 21\nadd AC\nout AC\nsub AC\nout AC\nhlt", "42\n0\n"},
	}

	for _, entry := range table {
		script := &hvio.Script{}
		m, _, err := doRun(t, entry.source, script)
		assert.NoError(err, entry.name)
		assert.Equal(entry.output, script.String(), entry.name)
		assert.Equal(STATE_HALTED, m.State(), entry.name)
	}
}

func TestMachineStack(t *testing.T) {
	assert := assert.New(t)

	m, logged, err := doRun(t, "psh 7\npsh 9\npop $4\nhlt", nil)
	assert.NoError(err)
	assert.Equal(uint16(9), m.Memory[4])
	assert.Equal([]uint16{7}, m.Stack.Data)
	assert.Empty(logged.String())

	script := &hvio.Script{}
	m, logged, err = doRun(t, "lda 3\nsta $0\npop $0\nout $0\nhlt", script)
	assert.NoError(err)
	assert.Equal(uint16(3), m.Memory[0])
	assert.Equal("3\n", script.String())
	assert.Contains(logged.String(), ErrStackEmpty.Error())
	assert.Equal(STATE_HALTED, m.State())
}

func TestMachineStackFull(t *testing.T) {
	assert := assert.New(t)

	m, _, err := doRun(t, "lda 1\ntop: psh 1\njnz top", nil)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(STACK_LIMIT, m.Stack.Len())
	assert.Equal(STATE_FAULTED, m.State())

	m, _, err = doRun(t, "f: cal f", nil)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(STACK_LIMIT, m.CallStack.Len())
}

func TestMachineCall(t *testing.T) {
	assert := assert.New(t)

	source := `
        cal one
        out 100
        hlt
one:    out 1
        cal two
        out 3
        ret
two:    out 2
        ret
`

	script := &hvio.Script{}
	m, logged, err := doRun(t, source, script)
	assert.NoError(err)
	assert.Equal("1\n2\n3\n100\n", script.String())
	assert.True(m.CallStack.Empty())
	assert.Empty(logged.String())
}

func TestMachineReturnEmpty(t *testing.T) {
	assert := assert.New(t)

	script := &hvio.Script{}
	m, logged, err := doRun(t, "ret\nout 5\nhlt", script)
	assert.NoError(err)
	assert.Equal("5\n", script.String())
	assert.Contains(logged.String(), ErrStackEmpty.Error())
	assert.Equal(uint16(3), m.Pc)
}

func TestMachineBranch(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op    string
		ac    string
		taken bool
	}{
		{"jez", "0", true},
		{"jez", "1", false},
		{"jez", "0xffff", false},
		{"jnz", "0", false},
		{"jnz", "1", true},
		{"jnz", "0xffff", true},
	}

	for _, entry := range table {
		source := "lda " + entry.ac + "\n" + entry.op + " yes\nouc \"N\"\nhlt\nyes: ouc \"Y\"\nhlt"
		script := &hvio.Script{}
		m, _, err := doRun(t, source, script)
		assert.NoError(err, source)

		expected := "N"
		if entry.taken {
			expected = "Y"
		}
		assert.Equal(expected, script.String(), source)

		ac, _ := parseNumber(entry.ac, 0)
		assert.Equal(ac, m.Ac, source)
	}
}

func TestMachineIndirectJump(t *testing.T) {
	assert := assert.New(t)

	script := &hvio.Script{}
	_, _, err := doRun(t, "lda 4\nsta $0\njnz $0\nhlt\nout 7\nhlt", script)
	assert.NoError(err)
	assert.Equal("7\n", script.String())
}

func TestMachineHalt(t *testing.T) {
	assert := assert.New(t)

	script := &hvio.Script{}
	m, _, err := doRun(t, "hlt\nout 1", script)
	assert.NoError(err)
	assert.Empty(script.String())
	assert.Equal(1, m.Ticks)
	assert.Equal(uint16(1), m.Pc)
	assert.False(m.Running)
	assert.Equal(STATE_HALTED, m.State())

	assert.ErrorIs(m.Run(), ErrMachineState)
	assert.ErrorIs(m.Tick(), ErrMachineState)
	assert.Equal(uint16(1), m.Pc)
}

func TestMachineRunOff(t *testing.T) {
	assert := assert.New(t)

	m, _, err := doRun(t, "lda 1", nil)
	assert.NoError(err)
	assert.Equal(2, m.Ticks)
	assert.Equal(STATE_HALTED, m.State())
}

func TestMachineFaults(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		source string
		pc     uint16
		err    error
	}{
		{"read_range", "lda 1\nlda $256", 1, ErrAddressRange},
		{"write_range", "sta $255\nsta $300", 1, ErrAddressRange},
		{"pop_range", "psh 1\npop $65535", 1, ErrAddressRange},
		{"mod_zero", "lda 5\nmod 0", 1, ErrDivideByZero},
		{"pc_range", "lda 1\njnz 9000", 9000, ErrPcRange},
		{"input_eof", "rdi $0", 0, io.EOF},
		{"input", "rdk $0", 0, ErrInput},
	}

	for _, entry := range table {
		m, _, err := doRun(t, entry.source, nil)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(STATE_FAULTED, m.State(), entry.name)
		assert.False(m.Running, entry.name)

		var fault *ErrFault
		if assert.True(errors.As(err, &fault), entry.name) {
			assert.Equal(entry.pc, fault.Pc, entry.name)
		}
	}
}

func TestMachineUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine([]Word{Encode(Code{OP_LDA, MODE_CONST, 1}), 0x0000_0014})
	assert.NoError(err)

	err = m.Run()
	assert.ErrorIs(err, ErrOpcodeUnknown)
	assert.Equal(ErrOpcode(0x14), errors.Unwrap(err))
	assert.Equal(STATE_FAULTED, m.State())
	assert.Equal(uint16(1), m.Ac)
}

func TestMachineInput(t *testing.T) {
	assert := assert.New(t)

	script := &hvio.Script{
		Numbers: []uint16{42},
		Keys:    []rune{'k'},
	}
	m, _, err := doRun(t, "rdi $0\nout $0\nrdk $1\nouc $1\nhlt", script)
	assert.NoError(err)
	assert.Equal("42\nk", script.String())
	assert.Equal(uint16('k'), m.Memory[1])
}

func TestMachineNoOperand(t *testing.T) {
	assert := assert.New(t)

	program := []Word{
		Encode(Code{OP_LDA, MODE_CONST, 4}),
		Encode(Code{OP_ADD, MODE_NONE, 5}),
		Encode(Code{OP_MOD, MODE_NONE, 0}),
		Encode(Code{OP_LDA, MODE_AC, 0}),
		Encode(Code{OP_STA, MODE_CONST, 2}),
		Encode(Code{OP_OUT, MODE_AC, 0}),
		Encode(Code{OP_HLT, MODE_NONE, 0}),
	}

	m, err := NewMachine(program)
	assert.NoError(err)

	logged := &bytes.Buffer{}
	m.Logger = log.New(logged, "", 0)
	script := &hvio.Script{}
	m.Output = script

	assert.NoError(m.Run())
	assert.Equal("4\n", script.String())
	assert.Equal([MEMORY_SIZE]uint16{}, m.Memory)
	assert.Equal(STATE_HALTED, m.State())

	assert.Contains(logged.String(), "no operand")
	assert.Contains(logged.String(), "load from accumulator has no effect")
	assert.Contains(logged.String(), "destination must be a memory address")
}

func TestMachineNoOutput(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine([]Word{Encode(Code{OP_OUT, MODE_CONST, 1})})
	assert.NoError(err)
	assert.ErrorIs(m.Run(), ErrOutput)
}

func TestMachineCycles(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble("lda 1\nsta $0\ncal f\nf: hlt")
	assert.NoError(err)

	m, err := NewMachine(prog.Binary())
	assert.NoError(err)

	var delays []int
	m.Delay = func(cycles int) { delays = append(delays, cycles) }

	assert.NoError(m.Run())
	assert.Equal([]int{1, 2, 3, 0}, delays)
	assert.Equal(6, m.Cycles)
	assert.Equal(4, m.Ticks)

	spun, err := NewMachine(prog.Binary())
	assert.NoError(err)
	spun.CycleSpin = 1000

	assert.NoError(spun.Run())
	assert.Equal(m.Memory, spun.Memory)
	assert.Equal(m.Ac, spun.Ac)
	assert.Equal(m.Pc, spun.Pc)
	assert.Equal(m.Cycles, spun.Cycles)
}

func TestMachineTick(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble("lda 3\nsub 1\njnz 1\nhlt")
	assert.NoError(err)

	m, err := NewMachine(prog.Binary())
	assert.NoError(err)

	for m.State() != STATE_HALTED {
		assert.NoError(m.Tick())
		assert.NotEqual(STATE_READY, m.State())
	}

	assert.Equal(uint16(0), m.Ac)
	assert.Equal(1+3*2+1, m.Ticks)
	assert.Contains(m.String(), "state: halted")
	assert.Contains(m.String(), "   pc: 0004")
}

func TestMachineVerbose(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble("lda 1\nhlt")
	assert.NoError(err)

	m, err := NewMachine(prog.Binary())
	assert.NoError(err)

	logged := &bytes.Buffer{}
	m.Logger = log.New(logged, "", 0)
	m.Verbose = true

	assert.NoError(m.Run())
	assert.Equal("0000: lda 1\n0001: hlt\ncpu: halted after 2 ticks, 1 cycles\n", logged.String())
}
