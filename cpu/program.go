package cpu

import (
	"fmt"
	"iter"
)

// Line is a line of assembled source with its address and generated bytes.
type Line struct {
	LineNo  int
	Address Address
	Words   []string
	Data    []byte
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// Debug returns the line that generated the byte at addr.
func (prog *Program) Debug(addr Address) (line *Line, ok bool) {
	for n, ln := range prog.Lines {
		if addr >= ln.Address && int(addr) < int(ln.Address)+len(ln.Data) {
			return &prog.Lines[n], true
		}
	}

	return
}

// Binary returns the program image, to be loaded at PROGRAM_START.
func (prog *Program) Binary() (image []byte) {
	for _, ln := range prog.Lines {
		image = append(image, ln.Data...)
	}

	return
}

// Codes returns the address and opcode of every instruction line.
func (prog *Program) Codes() iter.Seq2[Address, uint16] {
	return func(yield func(addr Address, word uint16) bool) {
		for _, ln := range prog.Lines {
			if len(ln.Data) != 2 || len(ln.Words) == 0 || ln.Words[0][0] == '.' {
				continue
			}
			word := uint16(ln.Data[0])<<8 | uint16(ln.Data[1])
			if !yield(ln.Address, word) {
				return
			}
		}
	}
}

// Disassemble returns the address and assembly text of each opcode in a
// program image loaded at base. Words that do not decode are emitted as
// .word directives, and a trailing odd byte as a .byte directive, so the
// listing reassembles to the same image.
func Disassemble(image []byte, base Address) iter.Seq2[Address, string] {
	return func(yield func(addr Address, text string) bool) {
		for offset := 0; offset < len(image); offset += 2 {
			addr := MakeAddress(uint16(base) + uint16(offset))

			var text string
			if offset+1 == len(image) {
				text = fmt.Sprintf(".byte 0x%02X", image[offset])
			} else {
				word := uint16(image[offset])<<8 | uint16(image[offset+1])
				inst, err := Decode(word)
				if err != nil {
					text = fmt.Sprintf(".word 0x%04X", word)
				} else {
					text = inst.String()
				}
			}

			if !yield(addr, text) {
				return
			}
		}
	}
}
