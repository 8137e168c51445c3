// Package cpu implements the processor, assembler and disassembler for the
// CHIP-8 virtual machine.
//
// The CPU consists of a 12-bit program counter, a 12-bit index register (I),
// sixteen 8-bit general-purpose registers (V0-VF, with VF doubling as the
// carry, borrow and collision flag), a sixteen-entry call stack, and two 8-bit
// countdown timers. Programs live in 4KB of memory, starting at 0x200, above
// the built-in hexadecimal font.
//
// The assembler accepts the mnemonics produced by Instruction.String, plus
// labels, equates, data directives, and compile-time expression evaluation.
package cpu
