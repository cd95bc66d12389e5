// Package odometer rolls digits vertically into place, one row per step.
package odometer

import "github.com/coreman2200/funtimes-marquee/internal/model"

// State enumerates slot states.
type State string

const (
	Idle          State = "idle"
	Transitioning State = "transitioning"
)

// Blank is what every slot shows before its first request.
const Blank = ' '

// Drawer is the surface a slot rasterizes onto.
type Drawer interface {
	DrawGlyph(r rune, x, y, rowStart, rowCount, shift int, col model.Color) error
	GlyphHeight() int
}

// Hooks are optional observers of a Bank.
type Hooks struct {
	// Requested fires when a slot accepts a new target.
	Requested func(slot int, from, to rune)
	// Settled fires when a slot finishes rolling.
	Settled func(slot int, r rune)
}
