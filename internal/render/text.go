package render

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

const (
	// Spacing is the blank run after every character.
	Spacing = 3
	// DefaultTextRow puts the blank top row of a 14-high cell just above
	// the display.
	DefaultTextRow = -1
	escapeChar     = '\\'
)

var ErrEscape = errors.New("malformed color escape")

// ParseText splits a message into drawable tokens. A backslash and a digit
// switch the color to TextPalette[digit]. On error the tokens before the
// fault are returned along with it.
func ParseText(s string, f *font.Font) ([]Token, error) {
	rs := []rune(s)
	toks := make([]Token, 0, len(rs))
	col := model.Green
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == escapeChar {
			if i+1 >= len(rs) {
				return toks, fmt.Errorf("trailing backslash at %d: %w", i, ErrEscape)
			}
			d := int(rs[i+1] - '0')
			if d < 0 || d >= len(model.TextPalette) {
				return toks, fmt.Errorf("escape %q at %d: %w", rs[i+1], i, ErrEscape)
			}
			col = model.TextPalette[d]
			i++
			continue
		}
		if !f.Has(r) {
			return toks, fmt.Errorf("character %q at %d: %w", r, i, font.ErrUndefinedGlyph)
		}
		toks = append(toks, Token{R: r, Color: col})
	}
	return toks, nil
}

// DrawText draws the part of a message visible at scroll offset scroll and
// returns how many characters were rasterized. Offsets below the display
// width slide the message in from the right edge; past that it moves left
// one pixel per offset. Zero means the message has left the display.
func (c *Canvas) DrawText(toks []Token, scroll, row int) (int, error) {
	w := c.Layout.Width()
	scroll = max(scroll, 0)

	startX, skip := 0, scroll-w
	if scroll < w {
		startX, skip = w-scroll, 0
	}

	pos, drawn := 0, 0
	for _, t := range toks {
		if pos >= w {
			break
		}
		gw, err := c.Font.GlyphWidth(t.R)
		if err != nil {
			return drawn, err
		}
		cw := gw + Spacing

		if skip >= cw {
			skip -= cw
			continue
		}
		if skip > 0 {
			pos = -skip
			skip = 0
		}

		shift, _ := c.Font.Shift(t.R)
		if err := c.DrawGlyph(t.R, pos+startX, row, 0, c.Font.Height, shift, t.Color); err != nil {
			return drawn, err
		}
		drawn++
		pos += cw
	}
	return drawn, nil
}

// DrawString parses and draws s in one go. An empty string draws nothing.
func (c *Canvas) DrawString(s string, scroll, row int) (int, error) {
	toks, perr := ParseText(s, c.Font)
	n, err := c.DrawText(toks, scroll, row)
	if err != nil {
		return n, err
	}
	return n, perr
}
