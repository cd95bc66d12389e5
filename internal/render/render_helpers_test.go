package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/model"
)

// blockFont is a 4x3 cell: 'a' is a solid 3x3 block, 'b' a single dot in
// the middle row, 'c' is undefined.
func blockFont(t *testing.T) *font.Font {
	t.Helper()
	f, err := font.New(4, 3, 'a', []font.Glyph{
		{Rows: []uint16{0b111, 0b111, 0b111}, Width: 3},
		{Rows: []uint16{0, 1, 0}, Width: 1},
		{},
	})
	require.NoError(t, err)
	return f
}

func pixelAt(t *testing.T, c *Canvas, x, y int) model.Pixel {
	t.Helper()
	p, err := c.Buf.At(c.Layout.Index(x, y))
	require.NoError(t, err)
	return p
}

// lit lists every inked logical coordinate.
func lit(t *testing.T, c *Canvas) map[[2]int]model.Pixel {
	t.Helper()
	out := map[[2]int]model.Pixel{}
	for x := 0; x < c.Layout.Width(); x++ {
		for y := 0; y < c.Layout.Height(); y++ {
			if p := pixelAt(t, c, x, y); p != (model.Pixel{}) {
				out[[2]int{x, y}] = p
			}
		}
	}
	return out
}

func oneCanvas(t *testing.T) *Canvas {
	return NewCanvas(layout.New(1), blockFont(t))
}
