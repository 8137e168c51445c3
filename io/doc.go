// Package io provides the CHIP-8 input and program image collaborators:
// the single-slot keypad latch, and the ROM image reader.
package io
