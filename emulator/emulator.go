// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/hv1/cpu"
	"github.com/ezrec/hv1/io"
)

// Emulator state. Program + Machine + Console.
type Emulator struct {
	Verbose      bool         // If set, enables verbose logging.
	*cpu.Machine              // Reference to the machine simulation, nil until Reset.
	Program      *cpu.Program // Reference to the currently loaded program listing.

	Console   io.Console // Console IO, wired to the machine on Reset.
	CycleSpin int        // Busy-loop iterations per declared cycle.
}

// NewEmulator creates a new emulator, with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program:   &cpu.Program{},
		CycleSpin: cpu.CYCLE_SPIN,
	}

	return
}

// Load replaces the current program. The machine must be Reset before use.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Machine = nil
}

// Assemble assembles source text, and loads the result.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Assemble(source)
	if err != nil {
		return
	}

	emu.Load(prog)
	return
}

// LoadRom loads an assembled program image. The listing has no line numbers.
func (emu *Emulator) LoadRom(fileName string) (err error) {
	rom, err := io.LoadRom(fileName)
	if err != nil {
		return
	}

	words := make([]cpu.Word, len(rom.Data))
	for n, word := range rom.Data {
		words[n] = cpu.Word(word)
	}

	if len(words) > cpu.PROGRAM_SIZE {
		err = cpu.ErrProgramSize
		return
	}

	emu.Load(cpu.NewProgram(words))
	return
}

// SaveRom saves the current program as a program image.
func (emu *Emulator) SaveRom(fileName string) (err error) {
	rom := &io.Rom{}
	for _, word := range emu.Program.Binary() {
		rom.Data = append(rom.Data, uint32(word))
	}

	return rom.Save(fileName)
}

// Reset creates a fresh machine for the current program.
func (emu *Emulator) Reset() (err error) {
	m, err := cpu.NewMachine(emu.Program.Binary())
	if err != nil {
		return
	}

	m.Verbose = emu.Verbose
	m.CycleSpin = emu.CycleSpin
	m.Input = &emu.Console
	m.Output = &emu.Console

	emu.Machine = m

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", len(emu.Program.Opcodes))
	}

	return
}

// LineNo returns the source line number of the next instruction, or 0 if
// unknown.
func (emu *Emulator) LineNo() int {
	if emu.Machine == nil {
		return 0
	}

	return emu.lineNo(emu.Machine.Pc)
}

func (emu *Emulator) lineNo(pc uint16) int {
	dbg := emu.Program.Debug(pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Code returns the next instruction code.
func (emu *Emulator) Code() cpu.Code {
	if emu.Machine == nil {
		return cpu.Code{}
	}

	dbg := emu.Program.Debug(emu.Machine.Pc)
	if dbg.Opcode == nil {
		return cpu.Code{}
	}

	return dbg.Code
}

// Tick performs a single tick of the emulator. The machine is Reset first if
// needed.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Machine == nil {
		err = emu.Reset()
		if err != nil {
			return
		}
	}

	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			lineno := emu.LineNo()
			var fault *cpu.ErrFault
			if errors.As(err, &fault) {
				lineno = emu.lineNo(fault.Pc)
			}
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Machine.Tick()
	if err != nil {
		return
	}

	done = !emu.Machine.Running
	return
}

// Run ticks the emulator until the program halts, or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
