package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Lines: []Line{
			{LineNo: 1, Address: 0x200, Words: []string{"LD", "V0", "5"}, Data: []byte{0x60, 0x05}},
			{LineNo: 3, Address: 0x202, Words: []string{".byte", "1", "2", "3"}, Data: []byte{1, 2, 3}},
			{LineNo: 4, Address: 0x205, Words: []string{"ADD", "V0", "3"}, Data: []byte{0x70, 0x03}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	line, ok := prog.Debug(0x200)
	assert.True(ok)
	assert.Equal(1, line.LineNo)

	line, ok = prog.Debug(0x204)
	assert.True(ok)
	assert.Equal(3, line.LineNo)

	line, ok = prog.Debug(0x206)
	assert.True(ok)
	assert.Equal(4, line.LineNo)

	_, ok = prog.Debug(0x207)
	assert.False(ok)

	_, ok = prog.Debug(0x100)
	assert.False(ok)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x60, 0x05, 1, 2, 3, 0x70, 0x03}, prog.Binary())

	empty := &Program{}
	assert.Equal(0, len(empty.Binary()))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	codes := map[Address]uint16{}
	for addr, word := range prog.Codes() {
		codes[addr] = word
	}

	assert.Equal(map[Address]uint16{
		0x200: 0x6005,
		0x205: 0x7003,
	}, codes)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	image := []byte{0x60, 0x05, 0x70, 0x03, 0x50, 0x01, 0xAB}

	var addrs []Address
	var texts []string
	for addr, text := range Disassemble(image, PROGRAM_START) {
		addrs = append(addrs, addr)
		texts = append(texts, text)
	}

	assert.Equal([]Address{0x200, 0x202, 0x204, 0x206}, addrs)
	assert.Equal([]string{
		"LD V0, 0x05",
		"ADD V0, 0x03",
		".word 0x5001",
		".byte 0xAB",
	}, texts)
}

func TestDisassemble_Break(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for range Disassemble([]byte{0x00, 0xE0, 0x00, 0xE0, 0x00, 0xE0}, PROGRAM_START) {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
}
