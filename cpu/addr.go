package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE  = 0x1000 // Bytes of addressable memory.
	ADDRESS_MASK = 0x0fff // Mask of the 12 address bits.

	PROGRAM_START = Address(0x200) // Load and entry address of programs.

	REGISTER_COUNT = 16            // General-purpose registers V0-VF.
	REG_FLAG       = Register(0xf) // Carry, borrow and collision flag.
)

// Address is a 12-bit memory address.
type Address uint16

// MakeAddress masks a value into the addressable range.
func MakeAddress(value uint16) Address {
	return Address(value & ADDRESS_MASK)
}

// Add returns the address plus delta, failing if the result leaves memory.
func (addr Address) Add(delta uint16) (out Address, err error) {
	sum := uint32(addr) + uint32(delta)
	if sum > ADDRESS_MASK {
		err = ErrAddressRange{Base: addr, Delta: int(delta)}
		return
	}

	out = Address(sum)
	return
}

// Sub returns the address minus delta, failing if the result leaves memory.
func (addr Address) Sub(delta uint16) (out Address, err error) {
	if delta > uint16(addr) {
		err = ErrAddressRange{Base: addr, Delta: -int(delta)}
		return
	}

	out = addr - Address(delta)
	return
}

func (addr Address) String() string {
	return fmt.Sprintf("0x%03X", uint16(addr))
}

// Register selects one of V0-VF.
type Register uint8

// MakeRegister checks a register index.
func MakeRegister(index uint8) (reg Register, err error) {
	if index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	reg = Register(index)
	return
}

func (reg Register) String() string {
	return fmt.Sprintf("V%X", uint8(reg))
}
