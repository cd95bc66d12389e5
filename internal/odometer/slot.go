package odometer

import "github.com/coreman2200/funtimes-marquee/internal/model"

// Slot is one digit position. progress is -1 while idle, otherwise the
// number of rows the incoming character has already rolled down.
type Slot struct {
	old, new rune
	progress int
}

// NewSlot returns an idle slot showing r.
func NewSlot(r rune) *Slot {
	return &Slot{old: r, new: r, progress: -1}
}

// State reports whether a roll is in flight.
func (s *Slot) State() State {
	if s.progress < 0 {
		return Idle
	}
	return Transitioning
}

// Current is the settled character, or the incoming one mid roll.
func (s *Slot) Current() rune { return s.new }

// Request starts a roll to r. It is ignored while rolling or when r is
// already shown.
func (s *Slot) Request(r rune) bool {
	if s.progress >= 0 || s.old == r {
		return false
	}
	s.old, s.new = s.new, r
	s.progress = 0
	return true
}

// Draw renders the slot at x,y and advances an in-flight roll by one row.
// It reports true once the slot is settled. The incoming character drops in
// from the top while the outgoing one is pushed down below y. A roll keeps
// advancing even when a character fails to draw.
func (s *Slot) Draw(d Drawer, x, y int, col model.Color) (bool, error) {
	h := d.GlyphHeight()
	if s.progress < 0 {
		return true, d.DrawGlyph(s.new, x, y, 0, h, 0, col)
	}

	err := d.DrawGlyph(s.new, x, y, h-s.progress, h, 0, col)
	if oerr := d.DrawGlyph(s.old, x, y+s.progress, 0, h, 0, col); err == nil {
		err = oerr
	}

	s.progress++
	if s.progress >= h {
		s.old = s.new
		s.progress = -1
		return true, err
	}
	return false, err
}
