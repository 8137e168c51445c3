// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = _cpu_defines

// Assembler is a two pass assembler for CHIP-8 programs.
//
// Source lines have the form:
//
//	[label:] [mnemonic [operand[, operand...]]] [; comment]
//
// Operands may be registers (V0-VF), the special operands I, [I], DT, ST,
// K, F and B, numbers, labels, equates, or $(...) expressions evaluated at
// assembly time.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string  // Predefines
	Label     map[string]Address // Map of labels to addresses.
	Equate    map[string]string  // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// statement is a source line after the first pass.
type statement struct {
	lineNo  int
	line    string
	address Address
	words   []string // Mnemonic, then operands.
	size    int
}

var reLabel = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):`)
var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// splitLine splits a line into its label, mnemonic and operands.
func splitLine(line string) (label string, words []string) {
	if semi := strings.IndexByte(line, ';'); semi >= 0 {
		line = line[:semi]
	}
	line = strings.TrimSpace(line)

	if match := reLabel.FindStringSubmatch(line); match != nil {
		label = match[1]
		line = strings.TrimSpace(line[len(match[0]):])
	}

	if len(line) == 0 {
		return
	}

	mnemonic, rest := line, ""
	if sp := strings.IndexAny(line, " \t"); sp >= 0 {
		mnemonic, rest = line[:sp], strings.TrimSpace(line[sp:])
	}
	words = append(words, mnemonic)

	if len(rest) == 0 {
		return
	}

	for _, arg := range strings.Split(rest, ",") {
		words = append(words, strings.TrimSpace(arg))
	}

	return
}

// Parse assembles a program from the reader.
func (asm *Assembler) Parse(r io.Reader) (prog *Program, err error) {
	asm.Label = map[string]Address{}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	var stmts []statement

	// First pass: equates, labels and sizes.
	addr := PROGRAM_START
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		stmt := statement{lineNo: lineNo, line: line, address: addr}
		fail := func(err error) error {
			return ErrSyntax{LineNo: lineNo, Line: line, Err: err}
		}

		var label string
		label, stmt.words = splitLine(line)
		if len(label) != 0 {
			if reserved(label) {
				err = fail(ErrLabelInvalid)
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = fail(ErrLabelDuplicate)
				return
			}
			_, ok = asm.Equate[label]
			if ok {
				err = fail(ErrLabelDuplicate)
				return
			}
			asm.Label[label] = addr
			if asm.Verbose {
				log.Printf("asm: %v = %v", label, addr)
			}
		}

		if len(stmt.words) == 0 {
			continue
		}

		switch strings.ToLower(stmt.words[0]) {
		case ".equ":
			// .equ NAME VALUE
			fields := strings.Fields(strings.Join(stmt.words, " "))
			if len(fields) != 3 {
				err = fail(ErrEquateSyntax)
				return
			}
			_, ok := asm.Equate[fields[1]]
			if ok {
				err = fail(ErrEquateDuplicate)
				return
			}
			asm.Equate[fields[1]] = fields[2]
			continue
		case ".byte":
			stmt.size = len(stmt.words) - 1
		case ".word":
			stmt.size = 2 * (len(stmt.words) - 1)
		default:
			if stmt.words[0][0] == '.' {
				err = fail(ErrDirectiveInvalid)
				return
			}
			stmt.size = 2
		}

		if stmt.size == 0 {
			err = fail(ErrOperandCount)
			return
		}

		if int(addr)+stmt.size > MEMORY_SIZE {
			err = fail(ErrAddressRange{Base: addr, Delta: stmt.size})
			return
		}
		addr += Address(stmt.size)

		stmts = append(stmts, stmt)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: generate code.
	prog = &Program{}
	for _, stmt := range stmts {
		var data []byte
		data, err = asm.generate(stmt.words)
		if err != nil {
			err = ErrSyntax{LineNo: stmt.lineNo, Line: stmt.line, Err: err}
			return
		}
		if asm.Verbose {
			log.Printf("asm: %v: % X %v", stmt.address, data, stmt.words)
		}
		prog.Lines = append(prog.Lines, Line{
			LineNo:  stmt.lineNo,
			Address: stmt.address,
			Words:   stmt.words,
			Data:    data,
		})
	}

	return
}

// generate the bytes for a single statement.
func (asm *Assembler) generate(words []string) (data []byte, err error) {
	args := make([]operand, 0, len(words)-1)
	for _, word := range words[1:] {
		var arg operand
		arg, err = asm.parseOperand(word)
		if err != nil {
			return
		}
		args = append(args, arg)
	}

	mnemonic := strings.ToUpper(words[0])
	switch mnemonic {
	case ".BYTE", ".WORD":
		limit := 0xff
		if mnemonic == ".WORD" {
			limit = 0xffff
		}
		for _, arg := range args {
			var value int
			value, err = arg.number(limit)
			if err != nil {
				return
			}
			if limit == 0xffff {
				data = append(data, byte(value>>8))
			}
			data = append(data, byte(value))
		}
		return
	}

	inst, err := encodeStatement(mnemonic, args)
	if err != nil {
		return
	}

	word := inst.Encode()
	data = []byte{byte(word >> 8), byte(word)}

	return
}

// operandKind classifies an assembler operand.
type operandKind int

const (
	OPERAND_VALUE = operandKind(iota)
	OPERAND_REGISTER
	OPERAND_I
	OPERAND_I_INDIRECT
	OPERAND_DT
	OPERAND_ST
	OPERAND_K
	OPERAND_F
	OPERAND_B
)

var specialOperand = map[string]operandKind{
	"I":   OPERAND_I,
	"[I]": OPERAND_I_INDIRECT,
	"DT":  OPERAND_DT,
	"ST":  OPERAND_ST,
	"K":   OPERAND_K,
	"F":   OPERAND_F,
	"B":   OPERAND_B,
}

// reserved returns true for names that parse as register or special operands.
func reserved(name string) bool {
	upper := strings.ToUpper(name)
	if _, ok := specialOperand[upper]; ok {
		return true
	}
	return len(upper) == 2 && upper[0] == 'V' && strings.ContainsRune("0123456789ABCDEF", rune(upper[1]))
}

type operand struct {
	kind  operandKind
	reg   Register
	value int
}

// number returns a value operand, checked against [0, limit].
func (arg operand) number(limit int) (value int, err error) {
	if arg.kind != OPERAND_VALUE {
		err = ErrOperandInvalid
		return
	}
	if arg.value < 0 || arg.value > limit {
		err = ErrValueRange
		return
	}

	value = arg.value
	return
}

func (arg operand) address() (addr Address, err error) {
	value, err := arg.number(ADDRESS_MASK)
	addr = Address(value)
	return
}

// parseOperand parses a single operand word.
func (asm *Assembler) parseOperand(word string) (arg operand, err error) {
	if len(word) == 0 {
		err = ErrOperandInvalid
		return
	}

	upper := strings.ToUpper(word)

	kind, ok := specialOperand[upper]
	if ok {
		arg.kind = kind
		return
	}

	if len(upper) == 2 && upper[0] == 'V' {
		index, perr := strconv.ParseUint(upper[1:], 16, 4)
		if perr == nil {
			arg.kind = OPERAND_REGISTER
			arg.reg = Register(index)
			return
		}
	}

	arg.kind = OPERAND_VALUE
	arg.value, err = asm.valueOf(word, 0)
	return
}

// valueOf returns the value of a number, label, equate or $() expression.
func (asm *Assembler) valueOf(word string, depth int) (value int, err error) {
	if depth > len(asm.Equate) {
		err = ErrEquateRecursive
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	addr, ok := asm.Label[word]
	if ok {
		value = int(addr)
		return
	}

	equ, ok := asm.Equate[word]
	if ok {
		return asm.valueOf(equ, depth+1)
	}

	v64, perr := strconv.ParseInt(word, 0, 32)
	if perr != nil {
		if reIdent.MatchString(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, equ := range asm.Equate {
		if !reIdent.MatchString(key) || strings.HasPrefix(equ, "$(") {
			continue
		}
		v, verr := asm.valueOf(key, 0)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// kinds returns true if the operands have exactly the listed kinds.
func kinds(args []operand, want ...operandKind) bool {
	return slices.EqualFunc(args, want, func(arg operand, kind operandKind) bool {
		return arg.kind == kind
	})
}

// encodeStatement maps a mnemonic and its operands to an instruction.
func encodeStatement(mnemonic string, args []operand) (inst Instruction, err error) {
	const (
		V   = OPERAND_REGISTER
		VAL = OPERAND_VALUE
	)

	var x, y Register
	if len(args) > 0 {
		x = args[0].reg
	}
	if len(args) > 1 {
		y = args[1].reg
	}

	switch mnemonic {
	case "CLS", "RET":
		if len(args) != 0 {
			err = ErrOperandCount
			return
		}
		inst.Op = OP_CLS
		if mnemonic == "RET" {
			inst.Op = OP_RET
		}
	case "SYS", "CALL":
		if !kinds(args, VAL) {
			err = ErrOperandInvalid
			return
		}
		inst.Op = OP_SYS
		if mnemonic == "CALL" {
			inst.Op = OP_CALL
		}
		inst.Address, err = args[0].address()
	case "JP":
		switch {
		case kinds(args, VAL):
			inst.Op = OP_JP
			inst.Address, err = args[0].address()
		case kinds(args, V, VAL) && x == 0:
			inst.Op = OP_JPV0
			inst.Address, err = args[1].address()
		default:
			err = ErrOperandInvalid
		}
	case "SE", "SNE":
		switch {
		case kinds(args, V, V):
			inst = Instruction{Op: OP_SER, X: x, Y: y}
			if mnemonic == "SNE" {
				inst.Op = OP_SNER
			}
		case kinds(args, V, VAL):
			inst = Instruction{Op: OP_SEC, X: x}
			if mnemonic == "SNE" {
				inst.Op = OP_SNEC
			}
			var kk int
			kk, err = args[1].number(0xff)
			inst.Byte = uint8(kk)
		default:
			err = ErrOperandInvalid
		}
	case "LD":
		switch {
		case kinds(args, V, V):
			inst = Instruction{Op: OP_LDR, X: x, Y: y}
		case kinds(args, V, VAL):
			inst = Instruction{Op: OP_LDC, X: x}
			var kk int
			kk, err = args[1].number(0xff)
			inst.Byte = uint8(kk)
		case kinds(args, OPERAND_I, VAL):
			inst.Op = OP_LDI
			inst.Address, err = args[1].address()
		case kinds(args, V, OPERAND_DT):
			inst = Instruction{Op: OP_LDTR, X: x}
		case kinds(args, V, OPERAND_K):
			inst = Instruction{Op: OP_LDK, X: x}
		case kinds(args, V, OPERAND_I_INDIRECT):
			inst = Instruction{Op: OP_RD, X: x}
		case kinds(args, OPERAND_DT, V):
			inst = Instruction{Op: OP_LDRT, X: y}
		case kinds(args, OPERAND_ST, V):
			inst = Instruction{Op: OP_LDRS, X: y}
		case kinds(args, OPERAND_F, V):
			inst = Instruction{Op: OP_LDS, X: y}
		case kinds(args, OPERAND_B, V):
			inst = Instruction{Op: OP_LDB, X: y}
		case kinds(args, OPERAND_I_INDIRECT, V):
			inst = Instruction{Op: OP_WR, X: y}
		default:
			err = ErrOperandInvalid
		}
	case "ADD":
		switch {
		case kinds(args, V, V):
			inst = Instruction{Op: OP_ADDR, X: x, Y: y}
		case kinds(args, V, VAL):
			inst = Instruction{Op: OP_ADDC, X: x}
			var kk int
			kk, err = args[1].number(0xff)
			inst.Byte = uint8(kk)
		case kinds(args, OPERAND_I, V):
			inst = Instruction{Op: OP_ADDI, X: y}
		default:
			err = ErrOperandInvalid
		}
	case "OR", "AND", "XOR", "SUB", "SUBN":
		if !kinds(args, V, V) {
			err = ErrOperandInvalid
			return
		}
		op := map[string]Op{
			"OR":   OP_OR,
			"AND":  OP_AND,
			"XOR":  OP_XOR,
			"SUB":  OP_SUB,
			"SUBN": OP_SUBN,
		}[mnemonic]
		inst = Instruction{Op: op, X: x, Y: y}
	case "SHR", "SHL":
		op := OP_SHR
		if mnemonic == "SHL" {
			op = OP_SHL
		}
		switch {
		case kinds(args, V):
			// Shifting Vx in place, whatever the shift source.
			inst = Instruction{Op: op, X: x, Y: x}
		case kinds(args, V, V):
			inst = Instruction{Op: op, X: x, Y: y}
		default:
			err = ErrOperandInvalid
		}
	case "RND":
		if !kinds(args, V, VAL) {
			err = ErrOperandInvalid
			return
		}
		inst = Instruction{Op: OP_RND, X: x}
		var kk int
		kk, err = args[1].number(0xff)
		inst.Byte = uint8(kk)
	case "DRW":
		if !kinds(args, V, V, VAL) {
			err = ErrOperandInvalid
			return
		}
		inst = Instruction{Op: OP_DRW, X: x, Y: y}
		var n int
		n, err = args[2].number(0xf)
		inst.Nibble = uint8(n)
	case "SKP", "SKNP":
		if !kinds(args, V) {
			err = ErrOperandInvalid
			return
		}
		inst = Instruction{Op: OP_SKP, X: x}
		if mnemonic == "SKNP" {
			inst.Op = OP_SKNP
		}
	default:
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, mnemonic)
	}

	return
}
