package render

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

var ErrShift = errors.New("glyph shift out of range")

// DrawGlyph draws rows [rowStart, rowStart+rowCount) of r with its top-left
// cell corner at x,y. Rows are moved left by shift bits first. Pixels that
// land off the display are dropped, so glyphs may hang over any edge.
func (c *Canvas) DrawGlyph(r rune, x, y, rowStart, rowCount, shift int, col model.Color) error {
	f := c.Font
	if !f.Has(r) {
		return fmt.Errorf("draw %q: %w", r, font.ErrUndefinedGlyph)
	}
	if rowStart < 0 || rowStart > f.Height || rowCount < 0 {
		return fmt.Errorf("draw %q rows %d+%d of %d: %w", r, rowStart, rowCount, f.Height, font.ErrRowRange)
	}

	if shift < 0 || shift >= font.MaxWidth {
		return fmt.Errorf("draw %q shift %d: %w", r, shift, ErrShift)
	}

	rowCount = min(rowCount, f.Height-rowStart)
	rowCount = min(rowCount, c.Layout.Height()-y)
	if rowCount <= 0 {
		return nil
	}

	for i := 0; i < rowCount; i++ {
		bits, err := f.Row(r, rowStart+i)
		if err != nil {
			return err
		}
		line := uint32(bits) << shift
		for j := 0; j < f.Width; j++ {
			if line&(1<<(f.Width-j-1)) == 0 {
				continue
			}
			px, py := x+j, y+i
			if !c.Layout.Contains(px, py) {
				continue
			}
			if err := c.Buf.Set(c.Layout.Index(px, py), col); err != nil {
				return err
			}
		}
	}
	return nil
}
