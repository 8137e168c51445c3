// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	SCREEN_WIDTH  = display.WIDTH  // Display width, in pixels.
	SCREEN_HEIGHT = display.HEIGHT // Display height, in pixels.
)

var _emulator_defines = map[string]string{
	"SCREEN_WIDTH":  fmt.Sprintf("%v", SCREEN_WIDTH),
	"SCREEN_HEIGHT": fmt.Sprintf("%v", SCREEN_HEIGHT),
}

// Emulator state. CPU + display + keypad + ROM.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Rom io.Rom // Program image loaded on reset.
}

// NewEmulator creates a new emulator, with the given compatibility quirks.
func NewEmulator(quirks cpu.Quirks) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Quirks = quirks

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assembler returns an assembler, predefined with the emulator defines.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// LoadRom reads a program image, and resets the emulator to run it.
func (emu *Emulator) LoadRom(r goio.Reader) (err error) {
	_, err = emu.Rom.ReadFrom(r)
	if err != nil {
		return
	}

	emu.Program = &cpu.Program{}

	err = emu.Reset()
	return
}

// LoadProgram sets an assembled program, and resets the emulator to run it.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.Rom.Data = prog.Binary()
	emu.Program = prog

	err = emu.Reset()
	return
}

// Reset the emulator state, and reload the ROM image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d byte image", emu.Rom.Len())
	}

	return
}

// Opcode returns the opcode at the program counter, or 0 if it
// cannot be fetched.
func (emu *Emulator) Opcode() (word uint16) {
	word, _ = emu.Cpu.Fetch()
	return
}

// LineNo returns the current line number for the executing opcode, or 0
// if the program has no listing for it.
func (emu *Emulator) LineNo() int {
	line, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return line.LineNo
}

// Step performs a single instruction cycle of the emulator.
func (emu *Emulator) Step() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	opcode := emu.Opcode()
	lineno := emu.LineNo()

	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Address: pc, Opcode: opcode, LineNo: lineno, Err: err}
		return
	}

	return
}

// Tick advances both timers by one period.
func (emu *Emulator) Tick() {
	emu.Cpu.Tick()
}

// SetKey replaces the latched key.
func (emu *Emulator) SetKey(key uint8) (err error) {
	err = emu.Cpu.Keypad.Set(key)
	return
}

// ClearKey empties the key latch.
func (emu *Emulator) ClearKey() {
	emu.Cpu.Keypad.Clear()
}

// Beeping returns true while the sound timer is running.
func (emu *Emulator) Beeping() bool {
	return emu.Cpu.Sound > 0
}

// Render drains the pixels changed since the last Render.
func (emu *Emulator) Render() (pixels []display.Pixel) {
	pixels = emu.Cpu.Display.Drain()
	return
}
