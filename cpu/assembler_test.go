package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) (prog *Program) {
	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal(fmt.Sprintf("%#x", uint16(PROGRAM_START)), asm.Equate["PROGRAM_START"])
	assert.Equal(fmt.Sprintf("%#x", uint16(FONT_BASE)), asm.Equate["FONT_BASE"])
	assert.Equal(fmt.Sprintf("%d", FONT_GLYPH_SIZE), asm.Equate["FONT_GLYPH_SIZE"])
	assert.Equal(fmt.Sprintf("%d", STACK_LIMIT), asm.Equate["STACK_LIMIT"])
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"cls",
		"ret",
		"sys 0x123",
		"jp 0xabc",
		"call 0x345",
		"se va, 0x12",
		"sne vb, 0x34",
		"se v1, v2",
		"ld v0, 5",
		"add v0, 3",
		"ld v1, v2",
		"or v1, v2",
		"and v1, v2",
		"xor v1, v2",
		"add v1, v2",
		"sub v1, v2",
		"shr v1",
		"shr v1, v2",
		"subn v1, v2",
		"shl v1",
		"sne v1, v2",
		"ld i, 0x200",
		"jp v0, 0x300",
		"rnd v4, 0x0f",
		"drw v1, v2, 5",
		"skp v5",
		"sknp v5",
		"ld v6, dt",
		"ld v6, k",
		"ld dt, v6",
		"ld st, v6",
		"add i, v6",
		"ld f, v6",
		"ld b, v6",
		"ld [i], v6",
		"ld v6, [i]",
	}

	expected := []uint16{
		0x00E0, 0x00EE, 0x0123, 0x1ABC, 0x2345,
		0x3A12, 0x4B34, 0x5120, 0x6005, 0x7003,
		0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125,
		0x8116, 0x8126, 0x8127, 0x811E, 0x9120,
		0xA200, 0xB300, 0xC40F, 0xD125, 0xE59E, 0xE5A1,
		0xF607, 0xF60A, 0xF615, 0xF618, 0xF61E, 0xF629, 0xF633, 0xF655, 0xF665,
	}

	prog := assemble(t, program...)

	var words []uint16
	for addr, word := range prog.Codes() {
		assert.Equal(PROGRAM_START+Address(2*len(words)), addr)
		words = append(words, word)
	}

	assert.Equal(expected, words)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; count to ten",
		"start:  ld v0, 0",
		"loop:   add v0, 1     ; increment",
		"        sne v0, LIMIT",
		"        jp done",
		"        jp loop",
		"done:   jp done",
		"        .equ LIMIT 10",
		"table:  .byte 1, 0x02, $(LIMIT * 2)",
		"        .word table, $(done + 2)",
	}

	prog := assemble(t, program...)

	assert.Equal([]byte{
		0x60, 0x00,
		0x70, 0x01,
		0x40, 0x0a,
		0x12, 0x0a,
		0x12, 0x02,
		0x12, 0x0a,
		0x01, 0x02, 0x14,
		0x02, 0x0c, 0x02, 0x0c,
	}, prog.Binary())

	line, ok := prog.Debug(0x20a)
	assert.True(ok)
	assert.Equal(7, line.LineNo)
	assert.Equal([]string{"jp", "done"}, line.Words)

	line, ok = prog.Debug(0x20d)
	assert.True(ok)
	assert.Equal(9, line.LineNo)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SPRITE", "$(FONT_BASE + 3 * FONT_GLYPH_SIZE)")

	prog, err := asm.Parse(strings.NewReader("ld i, SPRITE"))
	assert.NoError(err)
	assert.Equal([]byte{0xA0, 0x0f}, prog.Binary())
}

func TestAssemblerIdentifiers(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("not-an-ident", "7")
	asm.Predefine("_Base2", "0x10")

	prog, err := asm.Parse(strings.NewReader("ld v0, $(_Base2 + 1)"))
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x11}, prog.Binary())

	_, err = asm.Parse(strings.NewReader("ld v0, _missing9"))
	assert.ErrorIs(err, ErrLabelMissing("_missing9"))

	_, err = asm.Parse(strings.NewReader("ld v0, 9lives"))
	assert.ErrorIs(err, ErrParseNumber("9lives"))

	_, err = asm.Parse(strings.NewReader("ld v0, a-b"))
	assert.ErrorIs(err, ErrParseNumber("a-b"))
}

func TestAssemblerErrors(t *testing.T) {
	table := map[string]error{
		"bogus v0":                     ErrOpcodeInvalid,
		".org 0x300":                   ErrDirectiveInvalid,
		".byte":                        ErrOperandCount,
		".byte 0x100":                  ErrValueRange,
		".equ X":                       ErrEquateSyntax,
		".equ A 1\n.equ A 2":           ErrEquateDuplicate,
		".equ A B\n.equ B A\nld v0, A": ErrEquateRecursive,
		"a: cls\na: cls":               ErrLabelDuplicate,
		"v0: cls":                      ErrLabelInvalid,
		"ld v0, 0x100":                 ErrValueRange,
		"jp 0x1000":                    ErrValueRange,
		"drw v0, v1, 16":               ErrValueRange,
		"cls v0":                       ErrOperandCount,
		"jp v1, 0x200":                 ErrOperandInvalid,
		"ld dt, 5":                     ErrOperandInvalid,
		"ld v0, nowhere":               ErrLabelMissing("nowhere"),
		"ld v0, 12z":                   ErrParseNumber("12z"),
		"ld v0, $(1 +)":                nil,
	}

	for source, expected := range table {
		t.Run(source, func(t *testing.T) {
			assert := assert.New(t)

			asm := &Assembler{}
			_, err := asm.Parse(strings.NewReader(source))
			assert.Error(err)

			var syntax ErrSyntax
			assert.True(errors.As(err, &syntax))
			assert.NotZero(syntax.LineNo)

			if expected != nil {
				assert.ErrorIs(err, expected)
			}
		})
	}
}

func TestAssemblerTooLarge(t *testing.T) {
	assert := assert.New(t)

	program := strings.Repeat("cls\n", (MEMORY_SIZE-int(PROGRAM_START))/2)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)
	assert.Equal(MEMORY_SIZE-int(PROGRAM_START), len(prog.Binary()))

	_, err = asm.Parse(strings.NewReader(program + "cls\n"))
	assert.ErrorIs(err, ErrAddressRange{})
}

func TestAssemblerDisassembly(t *testing.T) {
	assert := assert.New(t)

	image := []byte{
		0x00, 0xE0, 0xA2, 0x0A, 0x60, 0x0C, 0x61, 0x08,
		0xD0, 0x15, 0x81, 0x0E, 0x12, 0x00, 0xFF, 0xFF, 0x42,
	}

	var source []string
	for _, text := range Disassemble(image, PROGRAM_START) {
		source = append(source, text)
	}

	prog := assemble(t, source...)
	assert.Equal(image, prog.Binary())
}
