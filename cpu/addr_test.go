package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Address(0x234), MakeAddress(0x1234))
	assert.Equal("0x200", PROGRAM_START.String())
	assert.Equal("0x00A", Address(0xa).String())

	addr, err := Address(0xffd).Add(2)
	assert.NoError(err)
	assert.Equal(Address(0xfff), addr)

	addr, err = Address(0xffe).Add(2)
	assert.ErrorIs(err, ErrAddressRange{})
	assert.Equal(Address(0), addr)
	assert.Equal(ErrAddressRange{Base: 0xffe, Delta: 2}, err)

	addr, err = Address(0x202).Sub(2)
	assert.NoError(err)
	assert.Equal(PROGRAM_START, addr)

	_, err = Address(0x001).Sub(2)
	assert.ErrorIs(err, ErrAddressRange{})
	assert.Equal(ErrAddressRange{Base: 0x001, Delta: -2}, err)
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	reg, err := MakeRegister(0xf)
	assert.NoError(err)
	assert.Equal(REG_FLAG, reg)
	assert.Equal("VF", reg.String())
	assert.Equal("V3", Register(3).String())

	_, err = MakeRegister(16)
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0x300, 0xaa)
	mem.Reset()

	assert.Equal(byte(0), mem.Read(0x300))
	assert.Equal(FONT[:], mem[FONT_BASE:FONT_BASE+FONT_GLYPHS*FONT_GLYPH_SIZE])

	// Glyph for 'A'
	glyph, err := mem.Slice(GlyphAddress(0xa), FONT_GLYPH_SIZE)
	assert.NoError(err)
	assert.Equal([]byte{0xF0, 0x90, 0xF0, 0x90, 0x90}, glyph)
	assert.Equal(GlyphAddress(0xa), GlyphAddress(0x1a))

	assert.NoError(mem.Load(0xffe, []byte{0x12, 0x34}))
	assert.Equal(byte(0x34), mem.Read(0xfff))

	err = mem.Load(0xfff, []byte{0x12, 0x34})
	assert.ErrorIs(err, ErrAddressRange{})
	assert.Equal(byte(0x34), mem.Read(0xfff))

	empty, err := mem.Slice(0xfff, 0)
	assert.NoError(err)
	assert.Equal(0, len(empty))
}
