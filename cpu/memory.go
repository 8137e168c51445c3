package cpu

const (
	FONT_BASE       = Address(0x000) // Address of the glyph for digit 0.
	FONT_GLYPH_SIZE = 5              // Bytes (rows) per glyph.
	FONT_GLYPHS     = 16             // Glyphs for digits 0-F.
)

// FONT is the built-in hexadecimal font, 4 pixels wide and 5 rows tall.
var FONT = [FONT_GLYPHS * FONT_GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the font glyph address for the low nibble of digit.
func GlyphAddress(digit uint8) Address {
	return FONT_BASE + Address(digit&0xf)*FONT_GLYPH_SIZE
}

// Memory is the 4KB address space.
type Memory [MEMORY_SIZE]byte

// Reset zeroes memory and installs the font.
func (mem *Memory) Reset() {
	clear(mem[:])
	copy(mem[FONT_BASE:], FONT[:])
}

// Read a single byte.
func (mem *Memory) Read(addr Address) byte {
	return mem[addr]
}

// Write a single byte.
func (mem *Memory) Write(addr Address, value byte) {
	mem[addr] = value
}

// Slice returns a writable view of count bytes starting at addr.
func (mem *Memory) Slice(addr Address, count int) (data []byte, err error) {
	if count == 0 {
		data = mem[addr:addr]
		return
	}

	last, err := addr.Add(uint16(count - 1))
	if err != nil {
		return
	}

	data = mem[addr : last+1]
	return
}

// Load copies data into memory starting at base.
func (mem *Memory) Load(base Address, data []byte) (err error) {
	block, err := mem.Slice(base, len(data))
	if err != nil {
		return
	}

	copy(block, data)
	return
}
