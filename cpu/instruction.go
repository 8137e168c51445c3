package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SYS  = Op(0)  // SYS
	OP_CLS  = Op(1)  // CLS
	OP_RET  = Op(2)  // RET
	OP_JP   = Op(3)  // JP
	OP_CALL = Op(4)  // CALL
	OP_SEC  = Op(5)  // SEC
	OP_SNEC = Op(6)  // SNEC
	OP_SER  = Op(7)  // SER
	OP_LDC  = Op(8)  // LDC
	OP_ADDC = Op(9)  // ADDC
	OP_LDR  = Op(10) // LDR
	OP_OR   = Op(11) // OR
	OP_AND  = Op(12) // AND
	OP_XOR  = Op(13) // XOR
	OP_ADDR = Op(14) // ADDR
	OP_SUB  = Op(15) // SUB
	OP_SHR  = Op(16) // SHR
	OP_SUBN = Op(17) // SUBN
	OP_SHL  = Op(18) // SHL
	OP_SNER = Op(19) // SNER
	OP_LDI  = Op(20) // LDI
	OP_JPV0 = Op(21) // JPV0
	OP_RND  = Op(22) // RND
	OP_DRW  = Op(23) // DRW
	OP_SKP  = Op(24) // SKP
	OP_SKNP = Op(25) // SKNP
	OP_LDTR = Op(26) // LDTR
	OP_LDK  = Op(27) // LDK
	OP_LDRT = Op(28) // LDRT
	OP_LDRS = Op(29) // LDRS
	OP_ADDI = Op(30) // ADDI
	OP_LDS  = Op(31) // LDS
	OP_LDB  = Op(32) // LDB
	OP_WR   = Op(33) // WR
	OP_RD   = Op(34) // RD
)

// Instruction is a decoded opcode. Only the operands used by Op are set.
type Instruction struct {
	Op      Op
	X       Register // Vx
	Y       Register // Vy
	Address Address  // nnn
	Byte    uint8    // kk
	Nibble  uint8    // n
}

// Decode a big-endian 16-bit opcode.
func Decode(word uint16) (inst Instruction, err error) {
	x := Register((word >> 8) & 0xf)
	y := Register((word >> 4) & 0xf)
	n := uint8(word & 0xf)
	kk := uint8(word & 0xff)
	nnn := MakeAddress(word)

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			inst = Instruction{Op: OP_CLS}
		case 0x00EE:
			inst = Instruction{Op: OP_RET}
		default:
			inst = Instruction{Op: OP_SYS, Address: nnn}
		}
	case 0x1:
		inst = Instruction{Op: OP_JP, Address: nnn}
	case 0x2:
		inst = Instruction{Op: OP_CALL, Address: nnn}
	case 0x3:
		inst = Instruction{Op: OP_SEC, X: x, Byte: kk}
	case 0x4:
		inst = Instruction{Op: OP_SNEC, X: x, Byte: kk}
	case 0x5:
		if n != 0x0 {
			err = ErrDecode(word)
			return
		}
		inst = Instruction{Op: OP_SER, X: x, Y: y}
	case 0x6:
		inst = Instruction{Op: OP_LDC, X: x, Byte: kk}
	case 0x7:
		inst = Instruction{Op: OP_ADDC, X: x, Byte: kk}
	case 0x8:
		var op Op
		switch n {
		case 0x0:
			op = OP_LDR
		case 0x1:
			op = OP_OR
		case 0x2:
			op = OP_AND
		case 0x3:
			op = OP_XOR
		case 0x4:
			op = OP_ADDR
		case 0x5:
			op = OP_SUB
		case 0x6:
			op = OP_SHR
		case 0x7:
			op = OP_SUBN
		case 0xE:
			op = OP_SHL
		default:
			err = ErrDecode(word)
			return
		}
		inst = Instruction{Op: op, X: x, Y: y}
	case 0x9:
		if n != 0x0 {
			err = ErrDecode(word)
			return
		}
		inst = Instruction{Op: OP_SNER, X: x, Y: y}
	case 0xA:
		inst = Instruction{Op: OP_LDI, Address: nnn}
	case 0xB:
		inst = Instruction{Op: OP_JPV0, Address: nnn}
	case 0xC:
		inst = Instruction{Op: OP_RND, X: x, Byte: kk}
	case 0xD:
		inst = Instruction{Op: OP_DRW, X: x, Y: y, Nibble: n}
	case 0xE:
		switch kk {
		case 0x9E:
			inst = Instruction{Op: OP_SKP, X: x}
		case 0xA1:
			inst = Instruction{Op: OP_SKNP, X: x}
		default:
			err = ErrDecode(word)
			return
		}
	case 0xF:
		var op Op
		switch kk {
		case 0x07:
			op = OP_LDTR
		case 0x0A:
			op = OP_LDK
		case 0x15:
			op = OP_LDRT
		case 0x18:
			op = OP_LDRS
		case 0x1E:
			op = OP_ADDI
		case 0x29:
			op = OP_LDS
		case 0x33:
			op = OP_LDB
		case 0x55:
			op = OP_WR
		case 0x65:
			op = OP_RD
		default:
			err = ErrDecode(word)
			return
		}
		inst = Instruction{Op: op, X: x}
	}

	return
}

func encodeNnn(family uint16, addr Address) uint16 {
	return family<<12 | uint16(addr)&ADDRESS_MASK
}

func encodeXkk(family uint16, x Register, kk uint8) uint16 {
	return family<<12 | uint16(x&0xf)<<8 | uint16(kk)
}

func encodeXyn(family uint16, x, y Register, n uint8) uint16 {
	return family<<12 | uint16(x&0xf)<<8 | uint16(y&0xf)<<4 | uint16(n&0xf)
}

// Encode the instruction as a 16-bit opcode.
func (inst Instruction) Encode() (word uint16) {
	switch inst.Op {
	case OP_SYS:
		word = encodeNnn(0x0, inst.Address)
	case OP_CLS:
		word = 0x00E0
	case OP_RET:
		word = 0x00EE
	case OP_JP:
		word = encodeNnn(0x1, inst.Address)
	case OP_CALL:
		word = encodeNnn(0x2, inst.Address)
	case OP_SEC:
		word = encodeXkk(0x3, inst.X, inst.Byte)
	case OP_SNEC:
		word = encodeXkk(0x4, inst.X, inst.Byte)
	case OP_SER:
		word = encodeXyn(0x5, inst.X, inst.Y, 0x0)
	case OP_LDC:
		word = encodeXkk(0x6, inst.X, inst.Byte)
	case OP_ADDC:
		word = encodeXkk(0x7, inst.X, inst.Byte)
	case OP_LDR:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x0)
	case OP_OR:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x1)
	case OP_AND:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x2)
	case OP_XOR:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x3)
	case OP_ADDR:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x4)
	case OP_SUB:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x5)
	case OP_SHR:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x6)
	case OP_SUBN:
		word = encodeXyn(0x8, inst.X, inst.Y, 0x7)
	case OP_SHL:
		word = encodeXyn(0x8, inst.X, inst.Y, 0xE)
	case OP_SNER:
		word = encodeXyn(0x9, inst.X, inst.Y, 0x0)
	case OP_LDI:
		word = encodeNnn(0xA, inst.Address)
	case OP_JPV0:
		word = encodeNnn(0xB, inst.Address)
	case OP_RND:
		word = encodeXkk(0xC, inst.X, inst.Byte)
	case OP_DRW:
		word = encodeXyn(0xD, inst.X, inst.Y, inst.Nibble)
	case OP_SKP:
		word = encodeXkk(0xE, inst.X, 0x9E)
	case OP_SKNP:
		word = encodeXkk(0xE, inst.X, 0xA1)
	case OP_LDTR:
		word = encodeXkk(0xF, inst.X, 0x07)
	case OP_LDK:
		word = encodeXkk(0xF, inst.X, 0x0A)
	case OP_LDRT:
		word = encodeXkk(0xF, inst.X, 0x15)
	case OP_LDRS:
		word = encodeXkk(0xF, inst.X, 0x18)
	case OP_ADDI:
		word = encodeXkk(0xF, inst.X, 0x1E)
	case OP_LDS:
		word = encodeXkk(0xF, inst.X, 0x29)
	case OP_LDB:
		word = encodeXkk(0xF, inst.X, 0x33)
	case OP_WR:
		word = encodeXkk(0xF, inst.X, 0x55)
	case OP_RD:
		word = encodeXkk(0xF, inst.X, 0x65)
	default:
		panic(fmt.Sprintf("cpu: unknown op %v", inst.Op))
	}

	return
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OP_SYS:
		out = fmt.Sprintf("SYS %v", inst.Address)
	case OP_CLS:
		out = "CLS"
	case OP_RET:
		out = "RET"
	case OP_JP:
		out = fmt.Sprintf("JP %v", inst.Address)
	case OP_CALL:
		out = fmt.Sprintf("CALL %v", inst.Address)
	case OP_SEC:
		out = fmt.Sprintf("SE %v, 0x%02X", x, inst.Byte)
	case OP_SNEC:
		out = fmt.Sprintf("SNE %v, 0x%02X", x, inst.Byte)
	case OP_SER:
		out = fmt.Sprintf("SE %v, %v", x, y)
	case OP_LDC:
		out = fmt.Sprintf("LD %v, 0x%02X", x, inst.Byte)
	case OP_ADDC:
		out = fmt.Sprintf("ADD %v, 0x%02X", x, inst.Byte)
	case OP_LDR:
		out = fmt.Sprintf("LD %v, %v", x, y)
	case OP_OR:
		out = fmt.Sprintf("OR %v, %v", x, y)
	case OP_AND:
		out = fmt.Sprintf("AND %v, %v", x, y)
	case OP_XOR:
		out = fmt.Sprintf("XOR %v, %v", x, y)
	case OP_ADDR:
		out = fmt.Sprintf("ADD %v, %v", x, y)
	case OP_SUB:
		out = fmt.Sprintf("SUB %v, %v", x, y)
	case OP_SHR, OP_SHL:
		mnemonic := "SHR"
		if inst.Op == OP_SHL {
			mnemonic = "SHL"
		}
		if x == y {
			out = fmt.Sprintf("%v %v", mnemonic, x)
		} else {
			out = fmt.Sprintf("%v %v, %v", mnemonic, x, y)
		}
	case OP_SUBN:
		out = fmt.Sprintf("SUBN %v, %v", x, y)
	case OP_SNER:
		out = fmt.Sprintf("SNE %v, %v", x, y)
	case OP_LDI:
		out = fmt.Sprintf("LD I, %v", inst.Address)
	case OP_JPV0:
		out = fmt.Sprintf("JP V0, %v", inst.Address)
	case OP_RND:
		out = fmt.Sprintf("RND %v, 0x%02X", x, inst.Byte)
	case OP_DRW:
		out = fmt.Sprintf("DRW %v, %v, %d", x, y, inst.Nibble)
	case OP_SKP:
		out = fmt.Sprintf("SKP %v", x)
	case OP_SKNP:
		out = fmt.Sprintf("SKNP %v", x)
	case OP_LDTR:
		out = fmt.Sprintf("LD %v, DT", x)
	case OP_LDK:
		out = fmt.Sprintf("LD %v, K", x)
	case OP_LDRT:
		out = fmt.Sprintf("LD DT, %v", x)
	case OP_LDRS:
		out = fmt.Sprintf("LD ST, %v", x)
	case OP_ADDI:
		out = fmt.Sprintf("ADD I, %v", x)
	case OP_LDS:
		out = fmt.Sprintf("LD F, %v", x)
	case OP_LDB:
		out = fmt.Sprintf("LD B, %v", x)
	case OP_WR:
		out = fmt.Sprintf("LD [I], %v", x)
	case OP_RD:
		out = fmt.Sprintf("LD %v, [I]", x)
	default:
		out = inst.Op.String()
	}

	return
}
