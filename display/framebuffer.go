package display

import (
	"math/bits"
	"strings"
)

const (
	WIDTH  = 64 // Display width in pixels.
	HEIGHT = 32 // Display height in pixels.
)

// Column 0 of a row.
const msb = uint64(1) << (WIDTH - 1)

// Pixel is a single drained display coordinate and its resulting state.
type Pixel struct {
	X   uint8
	Y   uint8
	Set bool
}

// Framebuffer of the CHIP-8 display.
type Framebuffer struct {
	Row   [HEIGHT]uint64 // Pixel rows, MSB is column 0.
	dirty [HEIGHT]uint64 // Pixels changed since the last Drain.
}

// Clear zeroes all pixels. Every pixel that was set is marked dirty, so a
// renderer knows to blank it.
func (fb *Framebuffer) Clear() {
	for y := range fb.Row {
		fb.dirty[y] |= fb.Row[y]
		fb.Row[y] = 0
	}
}

// Toggle flips a single pixel. Coordinates wrap around the display edges.
// Returns true if the pixel was set before the toggle.
func (fb *Framebuffer) Toggle(x, y uint) (hit bool) {
	x %= WIDTH
	y %= HEIGHT

	bit := msb >> x
	hit = (fb.Row[y] & bit) != 0
	fb.Row[y] ^= bit
	fb.dirty[y] |= bit

	return
}

// Sprite XORs an 8-pixel wide sprite onto the display, one byte per row,
// most significant bit leftmost. Only set sprite bits toggle a pixel.
// Returns true if any set pixel was turned off.
func (fb *Framebuffer) Sprite(x, y uint, rows []byte) (collision bool) {
	for j, row := range rows {
		for i := range uint(8) {
			if (row>>(7-i))&1 == 0 {
				continue
			}
			if fb.Toggle(x+i, y+uint(j)) {
				collision = true
			}
		}
	}

	return
}

// Get returns the state of a single pixel. Coordinates wrap.
func (fb *Framebuffer) Get(x, y uint) bool {
	return (fb.Row[y%HEIGHT] & (msb >> (x % WIDTH))) != 0
}

// Dirty returns true if any pixel changed since the last Drain.
func (fb *Framebuffer) Dirty() bool {
	for _, d := range fb.dirty {
		if d != 0 {
			return true
		}
	}
	return false
}

// Invalidate marks every pixel as dirty, forcing a full repaint.
func (fb *Framebuffer) Invalidate() {
	for y := range fb.dirty {
		fb.dirty[y] = ^uint64(0)
	}
}

// Drain returns the dirty pixels in row-major order, each coordinate once,
// and empties the dirty set.
func (fb *Framebuffer) Drain() (pixels []Pixel) {
	for y, d := range fb.dirty {
		for d != 0 {
			x := bits.LeadingZeros64(d)
			bit := msb >> x
			pixels = append(pixels, Pixel{
				X:   uint8(x),
				Y:   uint8(y),
				Set: (fb.Row[y] & bit) != 0,
			})
			d &^= bit
		}
		fb.dirty[y] = 0
	}

	return
}

// String renders the display as text, one line per row.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	for _, row := range fb.Row {
		for x := range WIDTH {
			if (row & (msb >> x)) != 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
