// Package console is an interactive terminal front-end for the emulator.
package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode"

	"github.com/jroimartin/gocui"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
)

// Console paints the emulator display, registers and status in a terminal,
// and feeds keyboard input to the runner.
type Console struct {
	Runner *emulator.Runner

	canvas [display.HEIGHT][display.WIDTH]bool
	regs   string
	status string
}

// New returns a console for the runner.
func New(runner *emulator.Runner) (con *Console) {
	con = &Console{
		Runner: runner,
		status: "Ctrl-C to quit",
	}

	return
}

// apply drained pixels to the canvas.
func (con *Console) apply(pixels []display.Pixel) {
	for _, px := range pixels {
		con.canvas[px.Y][px.X] = px.Set
	}
}

// text renders the canvas, two columns per pixel.
func (con *Console) text() string {
	var sb strings.Builder
	for _, row := range con.canvas {
		for _, set := range row {
			if set {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// layout of the display, registers and status views.
func (con *Console) layout(g *gocui.Gui) error {
	width := 2*display.WIDTH + 1
	height := display.HEIGHT + 1

	if v, err := g.SetView("display", 0, 0, width, height); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "CHIP-8"
		fmt.Fprint(v, con.text())
	}

	if v, err := g.SetView("registers", 0, height+1, 24, height+9); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
		fmt.Fprint(v, con.regs)
	}

	if v, err := g.SetView("status", 25, height+1, width, height+9); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Wrap = true
		fmt.Fprintln(v, con.status)
	}

	return nil
}

// paint the canvas and registers.
func (con *Console) paint(g *gocui.Gui) error {
	v, err := g.View("display")
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprint(v, con.text())

	v, err = g.View("registers")
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprint(v, con.regs)

	return nil
}

// report a message on the status view.
func (con *Console) report(g *gocui.Gui, msg string) error {
	con.status = msg

	v, err := g.View("status")
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprintln(v, msg)

	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// keybindings sends mapped keys to the runner.
func (con *Console) keybindings(g *gocui.Gui) (err error) {
	err = g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit)
	if err != nil {
		return
	}

	for ch := range KeyMap {
		runes := []rune{ch}
		if upper := unicode.ToUpper(ch); upper != ch {
			runes = append(runes, upper)
		}
		for _, r := range runes {
			err = g.SetKeybinding("", r, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
				key, _ := Key(r)
				select {
				case con.Runner.Keys <- emulator.KeyEvent{Key: key}:
				default:
					// Runner is behind; drop the key.
				}
				return nil
			})
			if err != nil {
				return
			}
		}
	}

	return
}

// Run the console until the user quits, or the context is done.
// Returns the runner error, if any.
func (con *Console) Run(ctx context.Context) (err error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return
	}
	defer g.Close()

	g.SetManagerFunc(con.layout)

	err = con.keybindings(g)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	up := &updater{update: g.Update}

	runner := con.Runner
	runner.OnFrame = func(pixels []display.Pixel) {
		regs := runner.Cpu.String()
		up.Update(func(g *gocui.Gui) error {
			con.apply(pixels)
			con.regs = regs
			return con.paint(g)
		})
	}

	var runErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = runner.Run(ctx)
		if runErr != nil {
			msg := runErr.Error()
			up.Update(func(g *gocui.Gui) error {
				return con.report(g, msg+"\nCtrl-C to quit")
			})
			return
		}
		// Context done; leave the main loop, unless it already has.
		up.Update(quitLoop)
	}()

	err = g.MainLoop()
	up.Close()
	if errors.Is(err, gocui.ErrQuit) {
		err = nil
	}
	if err != nil {
		log.Printf("console: %v", err)
	}

	cancel()
	wg.Wait()

	if runErr != nil {
		err = runErr
	}

	return
}

// updater forwards view updates to the gui until its main loop has exited.
type updater struct {
	mutex  sync.Mutex
	closed bool
	update func(f func(*gocui.Gui) error)
}

// Update queues f, returning false once the main loop has exited.
func (up *updater) Update(f func(*gocui.Gui) error) bool {
	up.mutex.Lock()
	defer up.mutex.Unlock()

	if up.closed {
		return false
	}

	up.update(f)
	return true
}

// Close drops all later updates.
func (up *updater) Close() {
	up.mutex.Lock()
	up.closed = true
	up.mutex.Unlock()
}

func quitLoop(g *gocui.Gui) error {
	return gocui.ErrQuit
}
