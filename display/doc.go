// Package display implements the 64x32 monochrome framebuffer of the CHIP-8
// virtual machine.
//
// Pixels are packed one row per uint64, most significant bit at column 0.
// Every pixel change is recorded in a dirty set that a renderer drains at its
// own cadence, so painting is decoupled from instruction execution.
package display
