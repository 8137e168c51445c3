package emulator

import (
	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address cpu.Address // Address of the faulting instruction.
	Opcode  uint16      // Opcode at the address.
	LineNo  int         // Source line, if the program was assembled.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("line %d %v: %04X %v", err.LineNo, err.Address, err.Opcode, err.Err)
	}
	return f("%v: %04X %v", err.Address, err.Opcode, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
