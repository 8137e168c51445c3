package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackOverflow   = errors.New(f("stack overflow"))
	ErrStackUnderflow  = errors.New(f("stack underflow"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrKeyLatchInvalid = errors.New(f("key latch mode invalid"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrEquateRecursive  = errors.New(f(".equ recursive"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrLabelInvalid     = errors.New(f("label invalid"))
	ErrDirectiveInvalid = errors.New(f("directive invalid"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOperandCount     = errors.New(f("operand count"))
	ErrOperandInvalid   = errors.New(f("operand invalid"))
	ErrValueRange       = errors.New(f("value out of range"))
)

// ErrDecode is an opcode that matches no instruction.
type ErrDecode uint16

func (ed ErrDecode) Error() string {
	return f("bad opcode 0x%04X", uint16(ed))
}

func (ed ErrDecode) Is(err error) (ok bool) {
	_, ok = err.(ErrDecode)
	return
}

// ErrAddressRange is address arithmetic that left the 12-bit address space.
type ErrAddressRange struct {
	Base  Address
	Delta int
}

func (err ErrAddressRange) Error() string {
	return f("address %v%+d out of range", err.Base, err.Delta)
}

func (err ErrAddressRange) Is(target error) (ok bool) {
	_, ok = target.(ErrAddressRange)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
