package odometer

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-marquee/internal/model"
)

// Bank is a fixed row of slots fed from one string, one rune per slot.
type Bank struct {
	// Spacing is the horizontal distance between slot origins.
	Spacing int

	slots  []*Slot
	target []rune
	hooks  Hooks
}

// NewBank returns n blank slots spaced apart by spacing pixels.
func NewBank(n, spacing int, h Hooks) *Bank {
	b := &Bank{
		Spacing: spacing,
		slots:   make([]*Slot, n),
		target:  make([]rune, n),
		hooks:   h,
	}
	for i := range b.slots {
		b.slots[i] = NewSlot(Blank)
		b.target[i] = Blank
	}
	return b
}

// Len is the number of slots.
func (b *Bank) Len() int { return len(b.slots) }

// Slot returns slot i.
func (b *Bank) Slot(i int) *Slot { return b.slots[i] }

// Text is what the bank is rolling towards.
func (b *Bank) Text() string { return string(b.target) }

// Update sets a new target. Only positions whose target changed are asked
// to roll; extra runes are dropped and missing ones read as Blank. It
// returns how many slots started rolling.
func (b *Bank) Update(text string) int {
	rs := []rune(text)
	started := 0
	for i := range b.slots {
		r := Blank
		if i < len(rs) {
			r = rs[i]
		}
		if r == b.target[i] {
			continue
		}
		b.target[i] = r
		if b.request(i, r) {
			started++
		}
	}
	return started
}

// Resync asks idle slots that ended up off target to roll again. Targets
// that changed while a slot was rolling are picked up here.
func (b *Bank) Resync() int {
	started := 0
	for i, s := range b.slots {
		if s.State() == Idle && s.Current() != b.target[i] && b.request(i, b.target[i]) {
			started++
		}
	}
	return started
}

func (b *Bank) request(i int, r rune) bool {
	from := b.slots[i].Current()
	if !b.slots[i].Request(r) {
		return false
	}
	if b.hooks.Requested != nil {
		b.hooks.Requested(i, from, r)
	}
	return true
}

// Draw renders every slot left to right starting at x,y, advancing any roll
// in flight. colors[i] paints slot i, wrapping when shorter than the bank.
// It reports whether every slot is settled; draw errors are joined and the
// remaining slots still drawn.
func (b *Bank) Draw(d Drawer, x, y int, colors []model.Color) (bool, error) {
	all := true
	var errs []error
	for i, s := range b.slots {
		col := model.White
		if len(colors) > 0 {
			col = colors[i%len(colors)]
		}
		was := s.State()
		settled, err := s.Draw(d, x+i*b.Spacing, y, col)
		if err != nil {
			errs = append(errs, fmt.Errorf("slot %d: %w", i, err))
		}
		if !settled {
			all = false
			continue
		}
		if was == Transitioning && b.hooks.Settled != nil {
			b.hooks.Settled(i, s.Current())
		}
	}
	return all, errors.Join(errs...)
}
