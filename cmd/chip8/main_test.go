package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

func TestAssembleFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "prog.s")
	assert.NoError(os.WriteFile(source, []byte("ld v0, $(SCREEN_WIDTH - 1)\nadd v0, 1\n"), 0644))

	emu := emulator.NewEmulator(cpu.Quirks{})
	prog, err := assembleFile(emu, source)
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x3f, 0x70, 0x01}, prog.Binary())

	_, err = assembleFile(emu, filepath.Join(dir, "missing.s"))
	assert.ErrorIs(err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.s")
	assert.NoError(os.WriteFile(bad, []byte("bogus v0\n"), 0644))
	_, err = assembleFile(emu, bad)
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
}

func TestLoadRomFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	rom := filepath.Join(dir, "prog.ch8")
	assert.NoError(os.WriteFile(rom, []byte{0x60, 0x05, 0x70, 0x03}, 0644))

	emu := emulator.NewEmulator(cpu.Quirks{})
	assert.NoError(loadRomFile(emu, rom))
	assert.NoError(emu.Step())
	assert.NoError(emu.Step())
	assert.Equal(uint8(8), emu.Cpu.Register[0])

	empty := filepath.Join(dir, "empty.ch8")
	assert.NoError(os.WriteFile(empty, nil, 0644))
	assert.ErrorIs(loadRomFile(emu, empty), io.ErrRomEmpty)

	assert.ErrorIs(loadRomFile(emu, filepath.Join(dir, "missing.ch8")), os.ErrNotExist)
}
