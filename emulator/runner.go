package emulator

import (
	"context"
	"log"
	"time"

	"github.com/ezrec/chip8/display"
)

const (
	CYCLE_RATE = 500                    // Default instructions per second.
	TIMER_RATE = 60                     // Timer decrements per second.
	FRAME_RATE = 60                     // Default frames per second.
	KEY_HOLD   = 100 * time.Millisecond // Default key hold time.
)

// KeyEvent is a key press from a front-end.
type KeyEvent struct {
	Key uint8
}

// Runner drives an emulator in real time.
type Runner struct {
	*Emulator

	CycleRate int           // Instructions per second.
	TimerRate int           // Timer ticks per second.
	FrameRate int           // Frames per second.
	KeyHold   time.Duration // Time a key stays latched after its press.

	Keys chan KeyEvent // Key presses, applied between cycles.

	// OnFrame is called with the pixels changed since the last frame,
	// if any changed.
	OnFrame func(pixels []display.Pixel)
}

// NewRunner creates a runner for the emulator, at the default rates.
func NewRunner(emu *Emulator) (runner *Runner) {
	runner = &Runner{
		Emulator:  emu,
		CycleRate: CYCLE_RATE,
		TimerRate: TIMER_RATE,
		FrameRate: FRAME_RATE,
		KeyHold:   KEY_HOLD,
		Keys:      make(chan KeyEvent, 16),
	}

	return
}

func period(rate int) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}

// Run the emulator until the context is done, or a runtime error occurs.
// A done context returns nil.
func (runner *Runner) Run(ctx context.Context) (err error) {
	cycle := time.NewTicker(period(runner.CycleRate))
	defer cycle.Stop()

	timer := time.NewTicker(period(runner.TimerRate))
	defer timer.Stop()

	frame := time.NewTicker(period(runner.FrameRate))
	defer frame.Stop()

	release := time.NewTimer(runner.KeyHold)
	release.Stop()
	defer release.Stop()

	for {
		select {
		case <-ctx.Done():
			if runner.Verbose {
				log.Printf("runner: %v", context.Cause(ctx))
			}
			return
		case ev := <-runner.Keys:
			err = runner.SetKey(ev.Key)
			if err != nil {
				return
			}
			release.Reset(runner.KeyHold)
		case <-release.C:
			runner.ClearKey()
		case <-cycle.C:
			err = runner.Step()
			if err != nil {
				return
			}
		case <-timer.C:
			runner.Tick()
		case <-frame.C:
			if runner.OnFrame == nil {
				continue
			}
			pixels := runner.Render()
			if len(pixels) != 0 {
				runner.OnFrame(pixels)
			}
		}
	}
}
