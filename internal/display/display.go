// Package display implements a headless CHIP-8 framebuffer.
package display

import "strings"

const (
	// Width is the number of horizontal pixels.
	Width = 64
	// Height is the number of vertical pixels.
	Height = 32
)

// Framebuffer is a monochrome 64x32 pixel buffer. Sprites are XORed onto it
// and wrap around at the screen edges.
type Framebuffer struct {
	pixels [Height][Width]bool
	dirty  bool
}

// New returns a cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = [Height][Width]bool{}
	f.dirty = true
}

// Draw XORs the sprite onto the framebuffer with its top left corner at x, y.
// Each sprite byte is one row of 8 pixels, most significant bit first.
// It returns true if any pixel that was set got erased.
func (f *Framebuffer) Draw(x, y uint8, sprite []byte) bool {
	var collision bool
	for row, data := range sprite {
		py := (int(y) + row) % Height
		for bit := range 8 {
			if data&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % Width
			if f.pixels[py][px] {
				collision = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}
	f.dirty = true
	return collision
}

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the screen edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[y%Height][x%Width]
}

// Dirty returns whether the framebuffer changed since the last call and
// resets the flag.
func (f *Framebuffer) Dirty() bool {
	dirty := f.dirty
	f.dirty = false
	return dirty
}

// String renders the framebuffer as text, one line per pixel row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range Height {
		for x := range Width {
			if f.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
