// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/ezrec/chip8/console"
	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/logger"
)

// assembleFile assembles a source file with the emulator defines.
func assembleFile(emu *emulator.Emulator, path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = emu.Assembler().Parse(inf)
	return
}

// loadRomFile loads a ROM image file, and resets the emulator to run it.
func loadRomFile(emu *emulator.Emulator, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.LoadRom(inf)
	return
}

func main() {
	var compile string
	var output string
	var disasm bool
	var hz int
	var shiftVy bool
	var noIndexInc bool
	var keyLatch string
	var logPath string
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly source file to compile")
	flag.StringVar(&output, "o", "", "ROM file to write the compiled program to, do not execute")
	flag.BoolVar(&disasm, "d", false, "Disassemble the ROM, do not execute")
	flag.IntVar(&hz, "hz", emulator.CYCLE_RATE, "Instructions per second")
	flag.BoolVar(&shiftVy, "shift-vy", false, "SHR and SHL shift Vy into Vx")
	flag.BoolVar(&noIndexInc, "no-index-inc", false, "LD [I], Vx and LD Vx, [I] leave I unchanged")
	flag.StringVar(&keyLatch, "key-latch", cpu.KEY_LATCH_CONSUME_WAIT.String(), "Key latch mode: wait, persist or all")
	flag.StringVar(&logPath, "log", "", "Log file, when running in the terminal")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	latch, err := cpu.ParseKeyLatch(keyLatch)
	if err != nil {
		log.Fatalf("-key-latch %v: %v", keyLatch, err)
	}

	emu := emulator.NewEmulator(cpu.Quirks{
		ShiftSourceY: shiftVy,
		IndexStatic:  noIndexInc,
		KeyLatch:     latch,
	})
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		prog, err := assembleFile(emu, compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			err = os.WriteFile(output, prog.Binary(), 0644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}

		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		path := flag.Arg(0)
		err := loadRomFile(emu, path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	default:
		log.Fatalf("usage: %v [flags] (-c source.s | rom.ch8)", os.Args[0])
	}

	if disasm {
		for addr, text := range cpu.Disassemble(emu.Rom.Data, cpu.PROGRAM_START) {
			fmt.Printf("%v: %v\n", addr, text)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := emulator.NewRunner(emu)
	runner.CycleRate = hz

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Headless; show the final display on exit.
		err = runner.Run(ctx)
		fmt.Print(emu.Cpu.Display.String())
		if err != nil {
			stop()
			log.Fatalf("%v\n%v", err, emu.Cpu.String())
		}
		return
	}

	l, err := logger.New(logPath)
	if err != nil {
		log.Fatalf("%v: %v", logPath, err)
	}
	log.SetOutput(l.Writer())
	log.SetFlags(l.Flags())
	log.SetPrefix(l.Prefix())

	err = console.New(runner).Run(ctx)
	if err != nil {
		stop()
		log.SetOutput(os.Stderr)
		log.Fatalf("%v\n%v", err, emu.Cpu.String())
	}
}
