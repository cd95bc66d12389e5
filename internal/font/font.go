// Package font holds fixed-cell bitmap fonts for the LED panels.
//
// Every glyph is a stack of row bitmasks, right aligned: bit 0 is the
// glyph's rightmost column. Glyphs may be narrower than the cell; Shift
// tells the rasterizer how far to move a row left so it starts one column
// inside the cell.
package font

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedGlyph = errors.New("undefined glyph")
	ErrRowRange       = errors.New("glyph row out of range")
	ErrFormat         = errors.New("bad font format")
)

// MaxWidth is the widest cell a row mask can hold.
const MaxWidth = 16

type Glyph struct {
	Rows  []uint16
	Width int
}

// Font is immutable once built and safe to share.
type Font struct {
	Width  int
	Height int
	First  rune
	glyphs []Glyph
}

// New validates the table and wraps it. glyphs[i] is rune first+i; a glyph
// with no rows is left undefined.
func New(width, height int, first rune, glyphs []Glyph) (*Font, error) {
	if width < 2 || width > MaxWidth {
		return nil, fmt.Errorf("cell width %d: %w", width, ErrFormat)
	}
	if height < 1 {
		return nil, fmt.Errorf("cell height %d: %w", height, ErrFormat)
	}
	out := make([]Glyph, len(glyphs))
	for i, g := range glyphs {
		if g.Rows == nil {
			continue
		}
		if len(g.Rows) != height {
			return nil, fmt.Errorf("glyph %q has %d rows, want %d: %w", first+rune(i), len(g.Rows), height, ErrFormat)
		}
		if g.Width < 0 || g.Width > width-1 {
			return nil, fmt.Errorf("glyph %q width %d does not fit cell %d: %w", first+rune(i), g.Width, width, ErrFormat)
		}
		rows := make([]uint16, height)
		copy(rows, g.Rows)
		out[i] = Glyph{Rows: rows, Width: g.Width}
	}
	return &Font{Width: width, Height: height, First: first, glyphs: out}, nil
}

func (f *Font) lookup(r rune) (*Glyph, error) {
	i := int(r - f.First)
	if r < f.First || i >= len(f.glyphs) || f.glyphs[i].Rows == nil {
		return nil, fmt.Errorf("%q: %w", r, ErrUndefinedGlyph)
	}
	return &f.glyphs[i], nil
}

// Has reports whether r can be drawn.
func (f *Font) Has(r rune) bool {
	_, err := f.lookup(r)
	return err == nil
}

// GlyphWidth is the inked width of r in pixels.
func (f *Font) GlyphWidth(r rune) (int, error) {
	g, err := f.lookup(r)
	if err != nil {
		return 0, err
	}
	return g.Width, nil
}

// Shift is how far rows of r move left to sit one column inside the cell.
func (f *Font) Shift(r rune) (int, error) {
	w, err := f.GlyphWidth(r)
	if err != nil {
		return 0, err
	}
	return max(f.Width-w-1, 0), nil
}

// Row returns the bitmask of one row of r.
func (f *Font) Row(r rune, row int) (uint16, error) {
	g, err := f.lookup(r)
	if err != nil {
		return 0, err
	}
	if row < 0 || row >= f.Height {
		return 0, fmt.Errorf("%q row %d of %d: %w", r, row, f.Height, ErrRowRange)
	}
	return g.Rows[row], nil
}
