// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/io"
)

var _cpu_defines = map[string]string{
	"PROGRAM_START":   fmt.Sprintf("%#x", uint16(PROGRAM_START)),
	"FONT_BASE":       fmt.Sprintf("%#x", uint16(FONT_BASE)),
	"FONT_GLYPH_SIZE": fmt.Sprintf("%d", FONT_GLYPH_SIZE),
	"MEMORY_SIZE":     fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_LIMIT":     fmt.Sprintf("%d", STACK_LIMIT),
}

// Cpu is the simulation context of the CHIP-8 processor, its memory, and
// the devices it drives.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Quirks  Quirks // Compatibility mode.

	Pc       Address                // Program counter.
	Index    Address                // Index register, I.
	Delay    uint8                  // Delay timer.
	Sound    uint8                  // Sound timer.
	Register [REGISTER_COUNT]uint8 // V0-VF.
	Stack    Stack                  // Return address stack.
	Memory   Memory                 // Address space.

	Display *display.Framebuffer // Framebuffer driven by CLS and DRW.
	Keypad  *io.Keypad           // Key latch tested by SKP, SKNP and LD Vx, K.
	Rand    *rand.Rand           // Source for RND.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU, in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Display: &display.Framebuffer{},
		Keypad:  &io.Keypad{},
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, timers, stack and display.
// - Reloads the font into otherwise empty memory.
// - Empties the key latch.
// - Sets the program counter to the program start.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = PROGRAM_START
	cpu.Index = 0
	cpu.Delay = 0
	cpu.Sound = 0
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Display.Clear()
	cpu.Keypad.Clear()
	cpu.Ticks = 0
}

// Load copies a program image to the program start address.
func (cpu *Cpu) Load(program []byte) (err error) {
	err = cpu.Memory.Load(PROGRAM_START, program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at %v", len(program), PROGRAM_START)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "i", "sp", "dt", "st",
		"v0-v7", "v8-vf",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = cpu.Pc.String()
		case "i":
			strval = cpu.Index.String()
		case "sp":
			strval = fmt.Sprintf("%d", cpu.Stack.Pointer)
			if top, ok := cpu.Stack.Peek(); ok {
				strval += fmt.Sprintf(" (%v)", top)
			}
		case "dt":
			strval = fmt.Sprintf("%02X", cpu.Delay)
		case "st":
			strval = fmt.Sprintf("%02X", cpu.Sound)
		case "v0-v7":
			strval = fmt.Sprintf("% X", cpu.Register[0:8])
		case "v8-vf":
			strval = fmt.Sprintf("% X", cpu.Register[8:16])
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Fetch reads the big-endian opcode at the program counter.
func (cpu *Cpu) Fetch() (word uint16, err error) {
	next, err := cpu.Pc.Add(1)
	if err != nil {
		return
	}

	word = uint16(cpu.Memory.Read(cpu.Pc))<<8 | uint16(cpu.Memory.Read(next))
	return
}

// Step executes a single fetch, decode, and execute cycle.
// The program counter is advanced past the instruction before it executes.
func (cpu *Cpu) Step() (err error) {
	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	inst, err := Decode(word)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: %v", uint16(cpu.Pc), inst)
	}

	pc := cpu.Pc
	next, err := pc.Add(2)
	if err != nil {
		return
	}
	cpu.Pc = next

	err = cpu.Execute(inst)
	if err != nil {
		cpu.Pc = pc
		return
	}

	cpu.Ticks += 1

	return
}

// Tick counts both timers down by one, stopping at zero.
func (cpu *Cpu) Tick() {
	if cpu.Delay > 0 {
		cpu.Delay -= 1
	}
	if cpu.Sound > 0 {
		cpu.Sound -= 1
	}
}

// setFlag sets VF to 1 or 0.
func (cpu *Cpu) setFlag(flag bool) {
	if flag {
		cpu.Register[REG_FLAG] = 1
	} else {
		cpu.Register[REG_FLAG] = 0
	}
}

// skipIf skips the next instruction when cond holds.
func (cpu *Cpu) skipIf(cond bool) (err error) {
	if !cond {
		return
	}

	next, err := cpu.Pc.Add(2)
	if err != nil {
		return
	}
	cpu.Pc = next

	return
}

// shiftSource returns the register value shifted by SHR and SHL.
func (cpu *Cpu) shiftSource(inst Instruction) uint8 {
	if cpu.Quirks.ShiftSourceY {
		return cpu.Register[inst.Y]
	}
	return cpu.Register[inst.X]
}

// Execute a single decoded instruction, against an already advanced
// program counter. On error, no state is modified.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	v := &cpu.Register
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OP_SYS:
		// Machine code routines are not emulated.
	case OP_CLS:
		cpu.Display.Clear()
	case OP_RET:
		var ret Address
		ret, err = cpu.Stack.Pop()
		if err != nil {
			return
		}
		cpu.Pc = ret
	case OP_JP:
		cpu.Pc = inst.Address
	case OP_JPV0:
		var target Address
		target, err = inst.Address.Add(uint16(v[0]))
		if err != nil {
			return
		}
		cpu.Pc = target
	case OP_CALL:
		err = cpu.Stack.Push(cpu.Pc)
		if err != nil {
			return
		}
		cpu.Pc = inst.Address
	case OP_SEC:
		err = cpu.skipIf(v[x] == inst.Byte)
	case OP_SNEC:
		err = cpu.skipIf(v[x] != inst.Byte)
	case OP_SER:
		err = cpu.skipIf(v[x] == v[y])
	case OP_SNER:
		err = cpu.skipIf(v[x] != v[y])
	case OP_LDC:
		v[x] = inst.Byte
	case OP_ADDC:
		v[x] += inst.Byte
	case OP_LDR:
		v[x] = v[y]
	case OP_OR:
		v[x] |= v[y]
	case OP_AND:
		v[x] &= v[y]
	case OP_XOR:
		v[x] ^= v[y]
	case OP_ADDR:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		cpu.setFlag(sum > 0xff)
	case OP_SUB:
		a, b := v[x], v[y]
		v[x] = a - b
		cpu.setFlag(a > b)
	case OP_SUBN:
		a, b := v[x], v[y]
		v[x] = b - a
		cpu.setFlag(b > a)
	case OP_SHR:
		src := cpu.shiftSource(inst)
		v[x] = src >> 1
		cpu.setFlag((src & 0x01) != 0)
	case OP_SHL:
		src := cpu.shiftSource(inst)
		v[x] = src << 1
		cpu.setFlag((src & 0x80) != 0)
	case OP_LDI:
		cpu.Index = inst.Address
	case OP_RND:
		v[x] = uint8(cpu.Rand.UintN(256)) & inst.Byte
	case OP_DRW:
		var rows []byte
		rows, err = cpu.Memory.Slice(cpu.Index, int(inst.Nibble))
		if err != nil {
			return
		}
		col, row := uint(v[x]), uint(v[y])
		cpu.setFlag(cpu.Display.Sprite(col, row, rows))
	case OP_SKP, OP_SKNP:
		pressed := cpu.Keypad.Pressed(v[x])
		if inst.Op == OP_SKP {
			err = cpu.skipIf(pressed)
		} else {
			err = cpu.skipIf(!pressed)
		}
		if err != nil {
			return
		}
		if cpu.Quirks.KeyLatch == KEY_LATCH_CONSUME_ALL {
			cpu.Keypad.Clear()
		}
	case OP_LDTR:
		v[x] = cpu.Delay
	case OP_LDK:
		key, ok := cpu.Keypad.Get()
		if !ok {
			// Spin on this instruction until a key is latched.
			var again Address
			again, err = cpu.Pc.Sub(2)
			if err != nil {
				return
			}
			cpu.Pc = again
			return
		}
		v[x] = key
		if cpu.Quirks.KeyLatch != KEY_LATCH_PERSIST {
			cpu.Keypad.Clear()
		}
	case OP_LDRT:
		cpu.Delay = v[x]
	case OP_LDRS:
		cpu.Sound = v[x]
	case OP_ADDI:
		var index Address
		index, err = cpu.Index.Add(uint16(v[x]))
		if err != nil {
			return
		}
		cpu.Index = index
	case OP_LDS:
		cpu.Index = GlyphAddress(v[x])
	case OP_LDB:
		var bcd []byte
		bcd, err = cpu.Memory.Slice(cpu.Index, 3)
		if err != nil {
			return
		}
		value := v[x]
		bcd[0] = value / 100
		bcd[1] = (value / 10) % 10
		bcd[2] = value % 10
	case OP_WR, OP_RD:
		count := int(x) + 1
		var block []byte
		block, err = cpu.Memory.Slice(cpu.Index, count)
		if err != nil {
			return
		}
		index := cpu.Index
		if !cpu.Quirks.IndexStatic {
			index, err = cpu.Index.Add(uint16(count))
			if err != nil {
				return
			}
		}
		if inst.Op == OP_WR {
			copy(block, v[:count])
		} else {
			copy(v[:count], block)
		}
		cpu.Index = index
	default:
		err = ErrOpcodeInvalid
	}

	return
}
